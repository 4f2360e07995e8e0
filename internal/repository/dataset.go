package repository

import (
	"errors"
	"fmt"

	"botdash/internal/entities"
)

// Dataset is everything one tenant ships with: the fixture file shape.
type Dataset struct {
	Tenant        entities.Tenant         `json:"tenant"`
	Users         []entities.User         `json:"users"`
	Settings      entities.Settings       `json:"settings"`
	Conversations []entities.Conversation `json:"conversations"`
	Messages      []entities.Message      `json:"messages"`
	Orders        []entities.Order        `json:"orders,omitempty"`
	Viewings      []entities.Viewing      `json:"viewings,omitempty"`
}

// Validate checks every record, that all of them belong to the tenant, that
// ids are unique per collection and that the tenant kind matches the
// collections it carries. All problems are reported together.
func (d Dataset) Validate() error {
	t := d.Tenant
	var errs []error
	if err := entities.Validate(t); err != nil {
		errs = append(errs, fmt.Errorf("tenant: %w", err))
	}
	if err := entities.Validate(d.Settings); err != nil {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	}
	owned := func(kind, id, tenantID string) {
		if tenantID != t.ID {
			errs = append(errs, fmt.Errorf("%s %s: belongs to tenant %q, not %q", kind, id, tenantID, t.ID))
		}
	}
	unique := uniqueIDs()

	for _, u := range d.Users {
		if err := entities.Validate(u); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", u.ID, err))
		}
		owned("user", u.ID, u.TenantID)
		errs = unique("user", u.ID, errs)
	}
	convs := make(map[string]bool, len(d.Conversations))
	for _, c := range d.Conversations {
		if err := c.CheckFor(t.Kind); err != nil {
			errs = append(errs, err)
		}
		owned("conversation", c.ID, c.TenantID)
		errs = unique("conversation", c.ID, errs)
		convs[c.ID] = true
	}
	for _, m := range d.Messages {
		if err := m.CheckFor(t.Kind); err != nil {
			errs = append(errs, err)
		}
		if !convs[m.ConversationID] {
			errs = append(errs, fmt.Errorf("message %s: unknown conversation %q", m.ID, m.ConversationID))
		}
		errs = unique("message", m.ID, errs)
	}

	if len(d.Orders) > 0 && !t.HasOrders() {
		errs = append(errs, fmt.Errorf("%s tenant %s cannot have orders", t.Kind, t.ID))
	}
	for _, o := range d.Orders {
		if err := o.Validate(); err != nil {
			errs = append(errs, err)
		}
		owned("order", o.ID, o.TenantID)
		errs = unique("order", o.ID, errs)
	}

	if len(d.Viewings) > 0 && !t.HasViewings() {
		errs = append(errs, fmt.Errorf("%s tenant %s cannot have viewings", t.Kind, t.ID))
	}
	for _, v := range d.Viewings {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
		owned("viewing", v.ID, v.TenantID)
		errs = unique("viewing", v.ID, errs)
	}
	return errors.Join(errs...)
}

func uniqueIDs() func(kind, id string, errs []error) []error {
	seen := make(map[string]bool)
	return func(kind, id string, errs []error) []error {
		key := kind + "/" + id
		if seen[key] {
			return append(errs, fmt.Errorf("%s %s: duplicate id", kind, id))
		}
		seen[key] = true
		return errs
	}
}
