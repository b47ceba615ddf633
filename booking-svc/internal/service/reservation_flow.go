package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cafe-assistant/booking-svc/internal/domain"
)

func (a *Assistant) advanceReservation(ctx context.Context, in domain.Intent, flow domain.ReservationFlow) (transition, error) {
	switch flow.Step {
	case domain.AwaitingDate:
		raw, ok := textInput(in, domain.ActionDate)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		date, ok := ParseDate(raw, a.now())
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidDate), nil
		}
		flow.Draft.Date = date
		flow.Step = domain.AwaitingTime
		return moveTo(flow, nil), nil

	case domain.AwaitingTime:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		clock, ok := ParseTime(raw)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidTime), nil
		}
		flow.Draft.StartAt = CombineDateTime(flow.Draft.Date, clock)
		flow.Step = domain.AwaitingPartySize
		return moveTo(flow, nil), nil

	case domain.AwaitingPartySize:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		guests, ok := ParsePartySize(raw)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidPartySize), nil
		}
		flow.Draft.Guests = guests
		return a.offerTables(ctx, flow)

	case domain.AwaitingTableChoice:
		return a.chooseTable(ctx, in, flow)

	case domain.AwaitingResName:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		name := clip(raw, maxNameLen)
		if !validName(name) {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidName), nil
		}
		flow.Draft.Name = name
		flow.Step = domain.AwaitingResPhone
		return moveTo(flow, nil), nil

	case domain.AwaitingResPhone:
		phone, ok := phoneInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidPhone), nil
		}
		flow.Draft.Phone = phone
		return a.commitReservation(ctx, in.UserID, flow)
	}

	return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
}

// offerTables lists tables seating the party, each marked with availability.
// With no table large enough the flow ends.
func (a *Assistant) offerTables(ctx context.Context, flow domain.ReservationFlow) (transition, error) {
	options, err := a.tableOptions(ctx, flow.Draft)
	if err != nil {
		return transition{}, err
	}
	if len(options) == 0 {
		return moveTo(domain.Idle{}, &domain.Result{Outcome: domain.OutcomeEmpty, Reason: domain.ReasonNoTables}), nil
	}
	flow.Step = domain.AwaitingTableChoice
	return moveTo(flow, &domain.Result{Outcome: domain.OutcomePrompt, Tables: options}), nil
}

func (a *Assistant) tableOptions(ctx context.Context, draft domain.ReservationDraft) ([]domain.TableOption, error) {
	tables, err := a.store.ListTables(ctx, draft.Guests)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return a.availability.Annotate(ctx, tables, draft.Window())
}

func (a *Assistant) chooseTable(ctx context.Context, in domain.Intent, flow domain.ReservationFlow) (transition, error) {
	raw, ok := textInput(in, domain.ActionChooseTable)
	if !ok || raw == "" {
		return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidTable), nil
	}

	retry := func(outcome domain.Outcome, reason domain.Reason) (transition, error) {
		options, err := a.tableOptions(ctx, flow.Draft)
		if err != nil {
			return transition{}, err
		}
		return moveTo(flow, &domain.Result{Outcome: outcome, Reason: reason, Tables: options}), nil
	}

	table, err := a.lookupTable(ctx, raw)
	if errors.Is(err, domain.ErrNotFound) {
		return retry(domain.OutcomeUnavailable, domain.ReasonTableUnavailable)
	}
	if err != nil {
		return transition{}, err
	}
	if !table.IsActive {
		return retry(domain.OutcomeUnavailable, domain.ReasonTableUnavailable)
	}
	if table.Seats < flow.Draft.Guests {
		return retry(domain.OutcomeInvalid, domain.ReasonTableTooSmall)
	}

	free, err := a.availability.IsAvailable(ctx, table.ID, flow.Draft.Window())
	if err != nil {
		return transition{}, err
	}
	if !free {
		return retry(domain.OutcomeConflict, domain.ReasonTableTaken)
	}

	flow.Draft.TableID = table.ID
	flow.Draft.TableCode = table.Code
	if flow.Draft.Name != "" && flow.Draft.Phone != "" {
		return a.commitReservation(ctx, in.UserID, flow)
	}
	flow.Step = domain.AwaitingResName
	return moveTo(flow, nil), nil
}

// lookupTable accepts a numeric id or a table code such as "T4".
func (a *Assistant) lookupTable(ctx context.Context, raw string) (*domain.Table, error) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return a.store.GetTable(ctx, id)
	}
	tables, err := a.store.ListTables(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	for i := range tables {
		if strings.EqualFold(tables[i].Code, raw) {
			return &tables[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// commitReservation keeps the draft on a lost race so the user can pick
// another table without re-entering contact details.
func (a *Assistant) commitReservation(ctx context.Context, userID int64, flow domain.ReservationFlow) (transition, error) {
	reservation, err := a.checkout.CommitReservation(ctx, userID, flow.Draft)
	if errors.Is(err, domain.ErrSlotTaken) {
		flow.Draft.TableID = 0
		flow.Draft.TableCode = ""
		flow.Step = domain.AwaitingTableChoice
		options, err := a.tableOptions(ctx, flow.Draft)
		if err != nil {
			return transition{}, err
		}
		return moveTo(flow, &domain.Result{Outcome: domain.OutcomeConflict, Reason: domain.ReasonSlotTaken, Tables: options}), nil
	}
	if err != nil {
		return transition{}, err
	}
	return transition{
		result:    &domain.Result{Outcome: domain.OutcomeCommitted, Reservation: reservation},
		next:      domain.Idle{},
		committed: true,
	}, nil
}
