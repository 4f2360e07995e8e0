package entities

import (
	"time"
	_ "time/tzdata"
)

// TenantKind tags which business schema a tenant's records follow.
type TenantKind string

const (
	TenantGrocery  TenantKind = "grocery"  // orders + payment status
	TenantProperty TenantKind = "property" // viewings + lead sources
)

type Tenant struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Slug      string     `json:"slug" validate:"required"`
	Kind      TenantKind `json:"kind" validate:"oneof=grocery property"`
	Phone     string     `json:"phone" validate:"required"`
	Location  string     `json:"location"`
	Timezone  string     `json:"timezone,omitempty"` // IANA name, defaults to UTC
	LogoURL   string     `json:"logo_url,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time  `json:"created_at"`
}

// HasOrders reports whether the tenant sells through orders.
func (t Tenant) HasOrders() bool {
	return t.Kind == TenantGrocery
}

// HasViewings reports whether the tenant books property viewings.
func (t Tenant) HasViewings() bool {
	return t.Kind == TenantProperty
}

// Loc returns the tenant's time zone, falling back to UTC when the name
// is empty or unknown.
func (t Tenant) Loc() *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
