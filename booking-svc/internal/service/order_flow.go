package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cafe-assistant/booking-svc/internal/domain"
)

func isBrowseAction(action domain.Action) bool {
	switch action {
	case domain.ActionCategory, domain.ActionCartInc, domain.ActionCartDec, domain.ActionCartView:
		return true
	}
	return false
}

func (a *Assistant) advanceOrder(ctx context.Context, in domain.Intent, flow domain.OrderFlow) (transition, error) {
	flow.Draft.Cart = flow.Draft.Cart.Clone()

	if in.Kind == domain.IntentSelect && isBrowseAction(in.Selection.Action) &&
		(flow.Step == domain.Browsing || flow.Step == domain.ChoosingWhen) {
		return a.browse(ctx, *in.Selection, flow)
	}

	switch flow.Step {
	case domain.ChoosingType:
		raw, ok := textInput(in, domain.ActionOrderType)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		orderType := domain.OrderType(strings.ToLower(raw))
		if !orderType.Valid() {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidOrderType), nil
		}
		flow.Draft.Type = orderType
		flow.Step = domain.Browsing
		return a.showBrowsing(ctx, flow)

	case domain.ChoosingWhen:
		raw, ok := textInput(in, domain.ActionDate)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		switch {
		case isNowAnswer(raw):
			flow.Draft.WhenSet = true
			flow.Draft.ScheduledFor = nil
			return a.advanceCheckout(ctx, in.UserID, flow)
		case isLaterAnswer(raw):
			flow.Step = domain.SchedulingDate
			return moveTo(flow, nil), nil
		}
		date, ok := ParseDate(raw, a.now())
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidWhen), nil
		}
		flow.Draft.ScheduleDate = date
		flow.Step = domain.SchedulingTime
		return moveTo(flow, nil), nil

	case domain.SchedulingDate:
		raw, ok := textInput(in, domain.ActionDate)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		date, ok := ParseDate(raw, a.now())
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidDate), nil
		}
		flow.Draft.ScheduleDate = date
		flow.Step = domain.SchedulingTime
		return moveTo(flow, nil), nil

	case domain.SchedulingTime:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		clock, ok := ParseTime(raw)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidTime), nil
		}
		at := CombineDateTime(flow.Draft.ScheduleDate, clock)
		flow.Draft.ScheduledFor = &at
		flow.Draft.WhenSet = true
		return a.advanceCheckout(ctx, in.UserID, flow)

	case domain.AwaitingName:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		name := clip(raw, maxNameLen)
		if !validName(name) {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidName), nil
		}
		flow.Draft.Name = name
		return a.advanceCheckout(ctx, in.UserID, flow)

	case domain.AwaitingPhone:
		phone, ok := phoneInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidPhone), nil
		}
		flow.Draft.Phone = phone
		return a.advanceCheckout(ctx, in.UserID, flow)

	case domain.AwaitingAddress:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		address := clip(raw, maxAddressLen)
		if !validAddress(address) {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidAddress), nil
		}
		flow.Draft.Address = address
		return a.advanceCheckout(ctx, in.UserID, flow)

	case domain.AwaitingComment:
		raw, ok := textInput(in)
		if !ok {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		flow.Draft.Comment = commentText(raw)
		flow.Draft.CommentSet = true
		return a.advanceCheckout(ctx, in.UserID, flow)
	}

	return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
}

func (a *Assistant) showBrowsing(ctx context.Context, flow domain.OrderFlow) (transition, error) {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return transition{}, fmt.Errorf("failed to list categories: %w", err)
	}
	result := &domain.Result{Outcome: domain.OutcomePrompt, Categories: categories}
	if len(categories) == 0 {
		result.Outcome = domain.OutcomeEmpty
		result.Reason = domain.ReasonEmptyMenu
	}
	if !flow.Draft.Cart.IsEmpty() {
		view, err := PriceCart(ctx, a.store, flow.Draft.Cart)
		if err != nil {
			return transition{}, err
		}
		result.Cart = view
	}
	return moveTo(flow, result), nil
}

// browse handles category and cart actions. Any of them returns the flow to
// browsing except a cart view with a positive total, which moves on to
// choosing when the order is wanted.
func (a *Assistant) browse(ctx context.Context, sel domain.Selection, flow domain.OrderFlow) (transition, error) {
	switch sel.Action {
	case domain.ActionCategory:
		category := strings.TrimSpace(sel.Value)
		items, err := a.catalog.Items(ctx, category)
		if err != nil {
			return transition{}, fmt.Errorf("failed to list menu items: %w", err)
		}
		if len(items) == 0 {
			return stay(flow, domain.OutcomeEmpty, domain.ReasonEmptyCategory), nil
		}
		flow.Draft.LastCategory = category
		flow.Step = domain.Browsing
		return moveTo(flow, &domain.Result{Outcome: domain.OutcomePrompt, Items: items}), nil

	case domain.ActionCartInc:
		id, err := strconv.ParseInt(strings.TrimSpace(sel.Value), 10, 64)
		if err != nil {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidItem), nil
		}
		item, err := a.store.GetMenuItem(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return transition{}, fmt.Errorf("failed to load menu item %d: %w", id, err)
		}
		if err != nil || !item.IsActive {
			delete(flow.Draft.Cart, id)
			return stay(flow, domain.OutcomeUnavailable, domain.ReasonItemUnavailable), nil
		}
		flow.Draft.Cart.Inc(id)
		flow.Step = domain.Browsing
		return a.cartPrompt(ctx, flow)

	case domain.ActionCartDec:
		id, err := strconv.ParseInt(strings.TrimSpace(sel.Value), 10, 64)
		if err != nil {
			return stay(flow, domain.OutcomeInvalid, domain.ReasonInvalidItem), nil
		}
		flow.Draft.Cart.Dec(id)
		flow.Step = domain.Browsing
		return a.cartPrompt(ctx, flow)

	case domain.ActionCartView:
		view, err := PriceCart(ctx, a.store, flow.Draft.Cart)
		if err != nil {
			return transition{}, err
		}
		for _, id := range view.Missing {
			delete(flow.Draft.Cart, id)
		}
		if view.TotalCents <= 0 {
			flow.Step = domain.Browsing
			return moveTo(flow, &domain.Result{Outcome: domain.OutcomeEmpty, Reason: domain.ReasonCartEmpty, Cart: view}), nil
		}
		flow.Step = domain.ChoosingWhen
		return moveTo(flow, &domain.Result{Outcome: domain.OutcomePrompt, Cart: view}), nil
	}
	return stay(flow, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
}

func (a *Assistant) cartPrompt(ctx context.Context, flow domain.OrderFlow) (transition, error) {
	view, err := PriceCart(ctx, a.store, flow.Draft.Cart)
	if err != nil {
		return transition{}, err
	}
	return moveTo(flow, &domain.Result{Outcome: domain.OutcomePrompt, Cart: view}), nil
}

// nextOrderStep names the first checkout field still missing, or "" when the
// draft is ready to commit.
func nextOrderStep(d domain.OrderDraft) domain.OrderStep {
	switch {
	case !d.Type.Valid():
		return domain.ChoosingType
	case !d.WhenSet:
		return domain.ChoosingWhen
	case d.Name == "":
		return domain.AwaitingName
	case d.Phone == "":
		return domain.AwaitingPhone
	case d.Type == domain.OrderDelivery && d.Address == "":
		return domain.AwaitingAddress
	case !d.CommentSet:
		return domain.AwaitingComment
	}
	return ""
}

func (a *Assistant) advanceCheckout(ctx context.Context, userID int64, flow domain.OrderFlow) (transition, error) {
	if next := nextOrderStep(flow.Draft); next != "" {
		flow.Step = next
		return moveTo(flow, nil), nil
	}
	return a.commitOrder(ctx, userID, flow)
}

func (a *Assistant) commitOrder(ctx context.Context, userID int64, flow domain.OrderFlow) (transition, error) {
	order, err := a.checkout.CommitOrder(ctx, userID, flow.Draft)
	if errors.Is(err, domain.ErrEmptyCart) {
		return moveTo(domain.Idle{}, &domain.Result{Outcome: domain.OutcomeEmpty, Reason: domain.ReasonCartEmpty}), nil
	}
	if err != nil {
		return transition{}, err
	}
	return transition{
		result:    &domain.Result{Outcome: domain.OutcomeCommitted, Order: order},
		next:      domain.Idle{},
		committed: true,
	}, nil
}
