package domain

type Outcome string

const (
	OutcomePrompt      Outcome = "prompt"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeConflict    Outcome = "conflict"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeEmpty       Outcome = "empty"
	OutcomeCommitted   Outcome = "committed"
	OutcomeCanceled    Outcome = "canceled"
	OutcomeIdle        Outcome = "idle"
)

type Reason string

const (
	ReasonInvalidDate      Reason = "invalid_date"
	ReasonInvalidTime      Reason = "invalid_time"
	ReasonInvalidPartySize Reason = "invalid_party_size"
	ReasonInvalidTable     Reason = "invalid_table"
	ReasonTableTooSmall    Reason = "table_too_small"
	ReasonTableTaken       Reason = "table_taken"
	ReasonSlotTaken        Reason = "slot_taken"
	ReasonTableUnavailable Reason = "table_unavailable"
	ReasonNoTables         Reason = "no_tables"
	ReasonInvalidName      Reason = "invalid_name"
	ReasonInvalidPhone     Reason = "invalid_phone"
	ReasonInvalidAddress   Reason = "invalid_address"
	ReasonInvalidOrderType Reason = "invalid_order_type"
	ReasonInvalidWhen      Reason = "invalid_when"
	ReasonInvalidItem      Reason = "invalid_item"
	ReasonItemUnavailable  Reason = "item_unavailable"
	ReasonCartEmpty        Reason = "cart_empty"
	ReasonUnresolvableCart Reason = "unresolvable_cart"
	ReasonBadSubmission    Reason = "bad_submission"
	ReasonEmptyCategory    Reason = "empty_category"
	ReasonEmptyMenu        Reason = "empty_menu"
	ReasonUnexpectedInput  Reason = "unexpected_input"
	ReasonNoActiveFlow     Reason = "no_active_flow"
)

// Result is the presentation-neutral answer to one intent.
type Result struct {
	Outcome     Outcome       `json:"outcome"`
	Reason      Reason        `json:"reason,omitempty"`
	Flow        FlowKind      `json:"flow"`
	Step        string        `json:"step,omitempty"`
	Tables      []TableOption `json:"tables,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	Items       []MenuItem    `json:"items,omitempty"`
	Cart        *CartView     `json:"cart,omitempty"`
	Order       *Order        `json:"order,omitempty"`
	Reservation *Reservation  `json:"reservation,omitempty"`
}

type TableOption struct {
	Table     Table `json:"table"`
	Available bool  `json:"available"`
}

type CartLine struct {
	Item           MenuItem `json:"item"`
	Qty            int      `json:"qty"`
	LineTotalCents int64    `json:"line_total_cents"`
}

// CartView is a cart priced against current menu data. Missing lists ids
// that no longer resolve to an active item.
type CartView struct {
	Lines      []CartLine `json:"lines"`
	TotalCents int64      `json:"total_cents"`
	Missing    []int64    `json:"missing,omitempty"`
}
