package repository

import (
	"fmt"
	"regexp"
	"strings"

	"botdash/internal/entities"
	"botdash/internal/interfaces"
)

var slugChars = regexp.MustCompile("[^a-z0-9-]+")

// sanitizeSlug lowercases a tenant slug and drops anything outside [a-z0-9-].
func sanitizeSlug(slug string) string {
	return slugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(slug)), "")
}

// TenantManager indexes tenants by id and slug, in registration order.
type TenantManager struct {
	order  []string
	byID   map[string]entities.Tenant
	bySlug map[string]string
}

func NewTenantManager() *TenantManager {
	return &TenantManager{
		byID:   make(map[string]entities.Tenant),
		bySlug: make(map[string]string),
	}
}

// Register adds a tenant. Ids and slugs must be unique and the slug must
// already be in canonical form.
func (m *TenantManager) Register(t entities.Tenant) error {
	if err := entities.Validate(t); err != nil {
		return fmt.Errorf("tenant %s: %w", t.ID, err)
	}
	if sanitizeSlug(t.Slug) != t.Slug {
		return fmt.Errorf("tenant %s: slug %q must be lowercase letters, digits and dashes", t.ID, t.Slug)
	}
	if _, ok := m.byID[t.ID]; ok {
		return fmt.Errorf("tenant %s: duplicate id", t.ID)
	}
	if _, ok := m.bySlug[t.Slug]; ok {
		return fmt.Errorf("tenant %s: duplicate slug %q", t.ID, t.Slug)
	}
	m.order = append(m.order, t.ID)
	m.byID[t.ID] = t
	m.bySlug[t.Slug] = t.ID
	return nil
}

func (m *TenantManager) All() []entities.Tenant {
	out := make([]entities.Tenant, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

func (m *TenantManager) BySlug(slug string) (entities.Tenant, error) {
	id, ok := m.bySlug[sanitizeSlug(slug)]
	if !ok {
		return entities.Tenant{}, fmt.Errorf("tenant %q: %w", slug, interfaces.ErrNotFound)
	}
	return m.byID[id], nil
}
