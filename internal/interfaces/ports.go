package interfaces

import (
	"errors"

	"botdash/internal/entities"
)

// ErrNotFound is returned by stores for unknown tenants or records.
var ErrNotFound = errors.New("not found")

// TenantStore is the tenant-scoped dataset the dashboard reads and mutates.
// Reads return copies; updates run apply on a copy and commit it only when
// apply succeeds.
type TenantStore interface {
	Tenants() []entities.Tenant
	TenantBySlug(slug string) (entities.Tenant, error)
	Users(tenantID string) ([]entities.User, error)

	Conversations(tenantID string) ([]entities.Conversation, error)
	Conversation(tenantID, id string) (entities.Conversation, error)
	Messages(tenantID, conversationID string) ([]entities.Message, error)

	Orders(tenantID string) ([]entities.Order, error)
	UpdateOrder(tenantID, id string, apply func(*entities.Order) error) (entities.Order, error)

	Viewings(tenantID string) ([]entities.Viewing, error)
	UpdateViewing(tenantID, id string, apply func(*entities.Viewing) error) (entities.Viewing, error)

	Settings(tenantID string) (entities.Settings, error)
	SaveSettings(tenantID string, s entities.Settings) error
}
