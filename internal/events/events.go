package events

import "time"

// Event types emitted after successful account mutations
const (
	AccountCreated          = "account.created"
	AccountPasswordUpdated  = "account.passwordUpdated"
	AccountConfirmed        = "account.confirmed"
	AccountTwoFactorUpdated = "account.twoFactorUpdated"
	AccountDeleted          = "account.deleted"
)

// Stream names
const (
	AccountEventsStream = "account.events"
)

// Event is the envelope every published event is wrapped in
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
