package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type FlowKind string

const (
	FlowIdle        FlowKind = "idle"
	FlowReservation FlowKind = "reservation"
	FlowOrder       FlowKind = "order"
)

// Session is the per-user conversation state: exactly one of Idle,
// ReservationFlow or OrderFlow.
type Session interface {
	Flow() FlowKind
	StepName() string
}

type Idle struct{}

func (Idle) Flow() FlowKind   { return FlowIdle }
func (Idle) StepName() string { return "" }

type ReservationStep string

const (
	AwaitingDate        ReservationStep = "awaiting_date"
	AwaitingTime        ReservationStep = "awaiting_time"
	AwaitingPartySize   ReservationStep = "awaiting_party_size"
	AwaitingTableChoice ReservationStep = "awaiting_table_choice"
	AwaitingResName     ReservationStep = "awaiting_contact_name"
	AwaitingResPhone    ReservationStep = "awaiting_contact_phone"
)

type ReservationDraft struct {
	Date      time.Time `json:"date,omitempty"`
	StartAt   time.Time `json:"start_at,omitempty"`
	Guests    int       `json:"guests,omitempty"`
	TableID   int64     `json:"table_id,omitempty"`
	TableCode string    `json:"table_code,omitempty"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

func (d ReservationDraft) Window() Window {
	return NewWindow(d.StartAt)
}

type ReservationFlow struct {
	Step  ReservationStep  `json:"step"`
	Draft ReservationDraft `json:"draft"`
}

func (ReservationFlow) Flow() FlowKind     { return FlowReservation }
func (f ReservationFlow) StepName() string { return string(f.Step) }

type OrderStep string

const (
	ChoosingType    OrderStep = "choosing_type"
	Browsing        OrderStep = "browsing"
	ChoosingWhen    OrderStep = "choosing_when"
	SchedulingDate  OrderStep = "scheduling_date"
	SchedulingTime  OrderStep = "scheduling_time"
	AwaitingName    OrderStep = "awaiting_contact_name"
	AwaitingPhone   OrderStep = "awaiting_contact_phone"
	AwaitingAddress OrderStep = "awaiting_delivery_address"
	AwaitingComment OrderStep = "awaiting_comment"
)

type OrderDraft struct {
	Type         OrderType  `json:"type,omitempty"`
	Cart         Cart       `json:"cart,omitempty"`
	LastCategory string     `json:"last_category,omitempty"`
	WhenSet      bool       `json:"when_set,omitempty"`
	ScheduleDate time.Time  `json:"schedule_date,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Name         string     `json:"name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	CommentSet   bool       `json:"comment_set,omitempty"`
}

type OrderFlow struct {
	Step  OrderStep  `json:"step"`
	Draft OrderDraft `json:"draft"`
}

func (OrderFlow) Flow() FlowKind     { return FlowOrder }
func (f OrderFlow) StepName() string { return string(f.Step) }

type sessionEnvelope struct {
	Flow        FlowKind         `json:"flow"`
	Reservation *ReservationFlow `json:"reservation,omitempty"`
	Order       *OrderFlow       `json:"order,omitempty"`
}

// MarshalSession encodes a session with its variant tag.
func MarshalSession(s Session) ([]byte, error) {
	env := sessionEnvelope{Flow: FlowIdle}
	switch v := s.(type) {
	case nil, Idle:
	case ReservationFlow:
		env.Flow = FlowReservation
		env.Reservation = &v
	case OrderFlow:
		env.Flow = FlowOrder
		env.Order = &v
	default:
		return nil, fmt.Errorf("unknown session variant %T", s)
	}
	return json.Marshal(env)
}

func UnmarshalSession(data []byte) (Session, error) {
	var env sessionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Flow {
	case FlowIdle, "":
		return Idle{}, nil
	case FlowReservation:
		if env.Reservation == nil {
			return nil, fmt.Errorf("reservation session without payload")
		}
		return *env.Reservation, nil
	case FlowOrder:
		if env.Order == nil {
			return nil, fmt.Errorf("order session without payload")
		}
		if env.Order.Draft.Cart == nil {
			env.Order.Draft.Cart = Cart{}
		}
		return *env.Order, nil
	}
	return nil, fmt.Errorf("unknown session flow %q", env.Flow)
}
