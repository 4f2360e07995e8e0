package entities

import (
	"fmt"
	"time"
)

type ConversationStatus string

const (
	// grocery tenant
	ConversationActive    ConversationStatus = "active"
	ConversationCompleted ConversationStatus = "completed"
	ConversationAbandoned ConversationStatus = "abandoned"

	// property tenant (shares "active")
	ConversationViewingBooked ConversationStatus = "viewing_booked"
	ConversationClosed        ConversationStatus = "closed"
	ConversationNoResponse    ConversationStatus = "no_response"
)

var conversationStatuses = map[TenantKind][]ConversationStatus{
	TenantGrocery:  {ConversationActive, ConversationCompleted, ConversationAbandoned},
	TenantProperty: {ConversationActive, ConversationViewingBooked, ConversationClosed, ConversationNoResponse},
}

// ConversationStatuses lists the statuses a tenant kind uses, in display order.
func ConversationStatuses(kind TenantKind) []ConversationStatus {
	return append([]ConversationStatus(nil), conversationStatuses[kind]...)
}

// Conversation is a WhatsApp thread between an end customer and the business.
type Conversation struct {
	ID            string             `json:"id" validate:"required"`
	TenantID      string             `json:"tenant_id" validate:"required"`
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone string             `json:"customer_phone" validate:"required"`
	Status        ConversationStatus `json:"status" validate:"required"`
	StartedAt     time.Time          `json:"started_at"`
	LastMessageAt time.Time          `json:"last_message_at"`
	MessageCount  *int               `json:"message_count,omitempty" validate:"omitempty,gte=0"`
	ResponseTimeS *int               `json:"response_time_seconds,omitempty" validate:"omitempty,gte=0"`
	BotHandled    *bool              `json:"bot_handled,omitempty"`
	PropertyID    string             `json:"property_id,omitempty"`   // property tenant only
	PropertyName  string             `json:"property_name,omitempty"` // property tenant only
}

// CheckFor validates the conversation against the status set of a tenant kind.
func (c Conversation) CheckFor(kind TenantKind) error {
	if err := Validate(c); err != nil {
		return fmt.Errorf("conversation %s: %w", c.ID, err)
	}
	if c.StartedAt.IsZero() || c.LastMessageAt.IsZero() {
		return fmt.Errorf("conversation %s: %w", c.ID, ErrMissingTimestamp)
	}
	for _, s := range conversationStatuses[kind] {
		if s == c.Status {
			return nil
		}
	}
	return fmt.Errorf("conversation %s: status %q is not used by %s tenants", c.ID, c.Status, kind)
}

// IsBotHandled treats an unset flag as bot-handled.
func (c Conversation) IsBotHandled() bool {
	return c.BotHandled == nil || *c.BotHandled
}
