package service

import (
	"context"
	"fmt"

	"cafe-assistant/booking-svc/internal/domain"
)

// AvailabilityResolver answers against live reservation rows on every call.
type AvailabilityResolver struct {
	reservations ReservationRepository
}

func NewAvailabilityResolver(reservations ReservationRepository) *AvailabilityResolver {
	return &AvailabilityResolver{reservations: reservations}
}

func (a *AvailabilityResolver) IsAvailable(ctx context.Context, tableID int64, window domain.Window) (bool, error) {
	overlap, err := a.reservations.HasOverlap(ctx, tableID, window)
	if err != nil {
		return false, fmt.Errorf("failed to check availability of table %d: %w", tableID, err)
	}
	return !overlap, nil
}

// Annotate marks each table with its availability for window.
func (a *AvailabilityResolver) Annotate(ctx context.Context, tables []domain.Table, window domain.Window) ([]domain.TableOption, error) {
	options := make([]domain.TableOption, 0, len(tables))
	for _, table := range tables {
		ok, err := a.IsAvailable(ctx, table.ID, window)
		if err != nil {
			return nil, err
		}
		options = append(options, domain.TableOption{Table: table, Available: ok})
	}
	return options, nil
}
