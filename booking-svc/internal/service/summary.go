package service

import (
	"fmt"
	"strings"

	"cafe-assistant/booking-svc/internal/domain"
)

const dateTimeLayout = "2006-01-02 15:04"

func ReservationSummary(r *domain.Reservation) string {
	table := r.TableCode
	if table == "" {
		table = fmt.Sprintf("id=%d", r.TableID)
	}
	lines := []string{
		fmt.Sprintf("🪑 New reservation #%d", r.ID),
		"Date/time: " + r.StartAt.Format(dateTimeLayout),
		fmt.Sprintf("Guests: %d", r.Guests),
		"Table: " + table,
		"Name: " + r.Name,
		"Phone: " + r.Phone,
	}
	return strings.Join(lines, "\n")
}

func OrderSummary(o *domain.Order) string {
	when := "asap"
	if o.ScheduledFor != nil {
		when = o.ScheduledFor.Format(dateTimeLayout)
	}
	address := o.Address
	if address == "" {
		address = "-"
	}
	comment := o.Comment
	if comment == "" {
		comment = "-"
	}

	lines := []string{
		fmt.Sprintf("🆕 New order #%d", o.ID),
		"Type: " + string(o.Type),
		"When: " + when,
		"Name: " + o.Name,
		"Phone: " + o.Phone,
		"Address: " + address,
		"",
	}
	for _, l := range o.Lines {
		lines = append(lines, fmt.Sprintf("• %s × %d = %s", l.Title, l.Qty, FormatPrice(l.TotalCents())))
	}
	lines = append(lines, "", "Total: "+FormatPrice(o.TotalCents), "Comment: "+comment)
	return strings.Join(lines, "\n")
}
