package service

import (
	"context"
	"errors"
	"fmt"

	"cafe-assistant/booking-svc/internal/domain"
)

// handleSubmission turns a pre-filled order into either a committed order or
// an order flow seeded with whatever was valid. Unknown items are dropped; a
// submission with nothing resolvable changes no state.
func (a *Assistant) handleSubmission(ctx context.Context, in domain.Intent, current domain.Session) (transition, error) {
	sub := in.Submission
	if sub == nil {
		return stay(current, domain.OutcomeInvalid, domain.ReasonBadSubmission), nil
	}

	orderType := sub.Type
	if orderType == "" {
		orderType = domain.OrderDelivery
	}
	if !orderType.Valid() {
		return stay(current, domain.OutcomeInvalid, domain.ReasonInvalidOrderType), nil
	}

	cart, err := a.resolveSubmissionItems(ctx, sub.Items)
	if err != nil {
		return transition{}, err
	}
	if cart.IsEmpty() {
		return stay(current, domain.OutcomeEmpty, domain.ReasonUnresolvableCart), nil
	}

	draft := domain.OrderDraft{Type: orderType, Cart: cart}
	if name := clip(sub.Name, maxNameLen); validName(name) {
		draft.Name = name
	}
	if phone := clip(sub.Phone, maxPhoneLen); validPhone(phone) {
		draft.Phone = phone
	}
	if address := clip(sub.Address, maxAddressLen); orderType == domain.OrderDelivery && validAddress(address) {
		draft.Address = address
	}
	if clip(sub.Comment, maxCommentLen) != "" {
		draft.Comment = commentText(sub.Comment)
		draft.CommentSet = true
	}

	complete := draft.Name != "" && draft.Phone != "" &&
		(orderType == domain.OrderPickup || draft.Address != "")
	if complete {
		draft.WhenSet = true
		draft.CommentSet = true
		return a.commitOrder(ctx, in.UserID, domain.OrderFlow{Draft: draft})
	}

	flow := domain.OrderFlow{Step: domain.ChoosingWhen, Draft: draft}
	if sub.Type == "" {
		flow.Draft.Type = ""
		flow.Step = domain.ChoosingType
	}
	view, err := PriceCart(ctx, a.store, flow.Draft.Cart)
	if err != nil {
		return transition{}, err
	}
	return moveTo(flow, &domain.Result{Outcome: domain.OutcomePrompt, Cart: view}), nil
}

func (a *Assistant) resolveSubmissionItems(ctx context.Context, items []domain.SubmissionItem) (domain.Cart, error) {
	cart := domain.Cart{}
	for _, it := range items {
		category := clip(it.Category, maxCategoryLen)
		title := clip(it.Title, maxTitleLen)
		if category == "" || title == "" || it.Qty <= 0 || it.Qty > maxLineQty {
			continue
		}
		item, err := a.store.FindMenuItem(ctx, category, title)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q/%q: %w", category, title, err)
		}
		if !item.IsActive {
			continue
		}
		cart.Add(item.ID, it.Qty)
	}
	return cart, nil
}
