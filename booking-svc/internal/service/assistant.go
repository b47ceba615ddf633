package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/keylock"
)

// Assistant is the per-user conversation state machine. Intents of one user
// are handled strictly one at a time; different users proceed concurrently.
type Assistant struct {
	store        Store
	sessions     SessionStore
	catalog      *Catalog
	availability *AvailabilityResolver
	checkout     *Checkout
	now          func() time.Time
	userLocks    *keylock.Locker
}

func NewAssistant(store Store, sessions SessionStore, checkout *Checkout, now func() time.Time) *Assistant {
	if now == nil {
		now = time.Now
	}
	return &Assistant{
		store:        store,
		sessions:     sessions,
		catalog:      NewCatalog(store),
		availability: NewAvailabilityResolver(store),
		checkout:     checkout,
		now:          now,
		userLocks:    keylock.New(),
	}
}

type transition struct {
	result    *domain.Result
	next      domain.Session
	committed bool
}

func stay(current domain.Session, outcome domain.Outcome, reason domain.Reason) transition {
	return transition{result: &domain.Result{Outcome: outcome, Reason: reason}, next: current}
}

func moveTo(next domain.Session, result *domain.Result) transition {
	if result == nil {
		result = &domain.Result{Outcome: domain.OutcomePrompt}
	}
	return transition{result: result, next: next}
}

// Handle applies one intent. A returned error means the store could not be
// reached; the stored session is then left as it was.
func (a *Assistant) Handle(ctx context.Context, intent domain.Intent) (*domain.Result, error) {
	unlock := a.userLocks.Lock(intent.UserID)
	defer unlock()

	current, err := a.sessions.Load(ctx, intent.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	t, err := a.route(ctx, intent, current)
	if err != nil {
		return nil, err
	}

	if err := a.persist(ctx, intent.UserID, t.next); err != nil {
		if !t.committed {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		log.Printf("Warning: committed for user %d but failed to reset session: %v", intent.UserID, err)
	}

	t.result.Flow = t.next.Flow()
	t.result.Step = t.next.StepName()
	return t.result, nil
}

func (a *Assistant) persist(ctx context.Context, userID int64, next domain.Session) error {
	if next.Flow() == domain.FlowIdle {
		return a.sessions.Clear(ctx, userID)
	}
	return a.sessions.Save(ctx, userID, next)
}

func (a *Assistant) route(ctx context.Context, in domain.Intent, current domain.Session) (transition, error) {
	switch in.Kind {
	case domain.IntentCancel:
		return moveTo(domain.Idle{}, &domain.Result{Outcome: domain.OutcomeCanceled}), nil
	case domain.IntentSubmit:
		return a.handleSubmission(ctx, in, current)
	case domain.IntentSelect:
		if in.Selection == nil {
			return stay(current, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
		}
		switch in.Selection.Action {
		case domain.ActionStartReservation:
			return moveTo(domain.ReservationFlow{Step: domain.AwaitingDate}, nil), nil
		case domain.ActionStartOrder:
			return moveTo(domain.OrderFlow{Step: domain.ChoosingType, Draft: domain.OrderDraft{Cart: domain.Cart{}}}, nil), nil
		case domain.ActionMenu:
			return a.showCategories(ctx, current)
		}
	case domain.IntentText:
	default:
		return stay(current, domain.OutcomeInvalid, domain.ReasonUnexpectedInput), nil
	}

	switch s := current.(type) {
	case domain.ReservationFlow:
		return a.advanceReservation(ctx, in, s)
	case domain.OrderFlow:
		return a.advanceOrder(ctx, in, s)
	default:
		return a.handleIdle(ctx, in, current)
	}
}

func (a *Assistant) handleIdle(ctx context.Context, in domain.Intent, current domain.Session) (transition, error) {
	if sel := in.Selection; sel != nil && sel.Action == domain.ActionCategory {
		return a.showCategory(ctx, sel.Value, current)
	}
	return stay(current, domain.OutcomeIdle, domain.ReasonNoActiveFlow), nil
}

func (a *Assistant) showCategories(ctx context.Context, current domain.Session) (transition, error) {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return transition{}, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return stay(current, domain.OutcomeEmpty, domain.ReasonEmptyMenu), nil
	}
	return moveTo(current, &domain.Result{Outcome: domain.OutcomePrompt, Categories: categories}), nil
}

func (a *Assistant) showCategory(ctx context.Context, category string, current domain.Session) (transition, error) {
	items, err := a.catalog.Items(ctx, category)
	if err != nil {
		return transition{}, fmt.Errorf("failed to list menu items: %w", err)
	}
	if len(items) == 0 {
		return stay(current, domain.OutcomeEmpty, domain.ReasonEmptyCategory), nil
	}
	return moveTo(current, &domain.Result{Outcome: domain.OutcomePrompt, Items: items}), nil
}

// textInput returns the free text of an intent, or the value of a selection
// whose action is one of accepted.
func textInput(in domain.Intent, accepted ...domain.Action) (string, bool) {
	if in.Kind == domain.IntentText {
		return strings.TrimSpace(in.Text), true
	}
	if in.Kind == domain.IntentSelect && in.Selection != nil {
		for _, action := range accepted {
			if in.Selection.Action == action {
				return strings.TrimSpace(in.Selection.Value), true
			}
		}
	}
	return "", false
}

// phoneInput accepts typed text of sufficient length or a shared contact.
func phoneInput(in domain.Intent) (string, bool) {
	if in.Kind == domain.IntentSelect && in.Selection != nil && in.Selection.Action == domain.ActionShareContact {
		phone := clip(in.Selection.Value, maxPhoneLen)
		return phone, phone != ""
	}
	if in.Kind != domain.IntentText {
		return "", false
	}
	phone := clip(in.Text, maxPhoneLen)
	return phone, validPhone(phone)
}
