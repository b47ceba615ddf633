package domain

type IntentKind string

const (
	IntentText   IntentKind = "text"
	IntentSelect IntentKind = "select"
	IntentSubmit IntentKind = "submit"
	IntentCancel IntentKind = "cancel"
)

type Action string

const (
	ActionStartReservation Action = "start_reservation"
	ActionStartOrder       Action = "start_order"
	ActionMenu             Action = "menu"
	ActionCategory         Action = "category"
	ActionOrderType        Action = "order_type"
	ActionCartInc          Action = "cart_inc"
	ActionCartDec          Action = "cart_dec"
	ActionCartView         Action = "cart_view"
	ActionChooseTable      Action = "choose_table"
	ActionDate             Action = "date"
	ActionShareContact     Action = "share_contact"
)

// Intent is one classified user input attributed to a user.
type Intent struct {
	UserID     int64            `json:"user_id"`
	ChatID     int64            `json:"chat_id"`
	Kind       IntentKind       `json:"kind"`
	Text       string           `json:"text,omitempty"`
	Selection  *Selection       `json:"selection,omitempty"`
	Submission *OrderSubmission `json:"submission,omitempty"`
}

type Selection struct {
	Action Action `json:"action"`
	Value  string `json:"value,omitempty"`
}

// OrderSubmission is a pre-filled order from an external form.
type OrderSubmission struct {
	Type    OrderType        `json:"type,omitempty"`
	Name    string           `json:"name"`
	Phone   string           `json:"phone"`
	Address string           `json:"address"`
	Comment string           `json:"comment"`
	Items   []SubmissionItem `json:"items"`
}

type SubmissionItem struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Qty      int    `json:"qty"`
}

func TextIntent(userID int64, text string) Intent {
	return Intent{UserID: userID, Kind: IntentText, Text: text}
}

func SelectIntent(userID int64, action Action, value string) Intent {
	return Intent{UserID: userID, Kind: IntentSelect, Selection: &Selection{Action: action, Value: value}}
}

func CancelIntent(userID int64) Intent {
	return Intent{UserID: userID, Kind: IntentCancel}
}

func SubmitIntent(userID int64, sub OrderSubmission) Intent {
	return Intent{UserID: userID, Kind: IntentSubmit, Submission: &sub}
}
