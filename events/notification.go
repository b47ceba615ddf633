package events

import "time"

// Notification is the Kafka payload published after a successful commit and
// delivered to operator chats by notify-svc.
type Notification struct {
	ID         string    `json:"id"`
	Recipients []int64   `json:"recipients"`
	Summary    string    `json:"summary"`
	Timestamp  time.Time `json:"timestamp"`
}
