package entities

import (
	"fmt"
	"time"
)

type SenderRole string

const (
	SenderCustomer SenderRole = "customer" // grocery
	SenderGuest    SenderRole = "guest"    // property
	SenderBot      SenderRole = "bot"
	SenderStaff    SenderRole = "staff" // property
)

var senderRoles = map[TenantKind][]SenderRole{
	TenantGrocery:  {SenderCustomer, SenderBot},
	TenantProperty: {SenderGuest, SenderBot, SenderStaff},
}

type Message struct {
	ID             string     `json:"id" validate:"required"`
	ConversationID string     `json:"conversation_id" validate:"required"`
	Sender         SenderRole `json:"sender" validate:"required"`
	Text           string     `json:"message_text"`
	Timestamp      time.Time  `json:"timestamp"`
}

// CheckFor validates the message against the sender roles of a tenant kind.
func (m Message) CheckFor(kind TenantKind) error {
	if err := Validate(m); err != nil {
		return fmt.Errorf("message %s: %w", m.ID, err)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("message %s: %w", m.ID, ErrMissingTimestamp)
	}
	for _, r := range senderRoles[kind] {
		if r == m.Sender {
			return nil
		}
	}
	return fmt.Errorf("message %s: sender %q is not used by %s tenants", m.ID, m.Sender, kind)
}
