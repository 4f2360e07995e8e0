package repository

import (
	"fmt"
	"slices"
	"sync"

	"botdash/internal/entities"
	"botdash/internal/interfaces"
)

var _ interfaces.TenantStore = (*MemoryStore)(nil)

type tenantData struct {
	users         []entities.User
	settings      entities.Settings
	conversations []entities.Conversation
	messages      map[string][]entities.Message
	orders        []entities.Order
	viewings      []entities.Viewing
}

// MemoryStore keeps every tenant's dataset in memory. Reads hand out copies;
// writers are serialised by mu.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants *TenantManager
	data    map[string]*tenantData
}

// NewMemoryStore validates and indexes the datasets. Any invalid dataset
// fails the whole load.
func NewMemoryStore(datasets ...Dataset) (*MemoryStore, error) {
	s := &MemoryStore{
		tenants: NewTenantManager(),
		data:    make(map[string]*tenantData, len(datasets)),
	}
	for _, d := range datasets {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", d.Tenant.Slug, err)
		}
		if err := s.tenants.Register(d.Tenant); err != nil {
			return nil, err
		}
		td := &tenantData{
			users:         slices.Clone(d.Users),
			settings:      d.Settings,
			conversations: slices.Clone(d.Conversations),
			messages:      make(map[string][]entities.Message),
			orders:        make([]entities.Order, len(d.Orders)),
			viewings:      slices.Clone(d.Viewings),
		}
		for _, m := range d.Messages {
			td.messages[m.ConversationID] = append(td.messages[m.ConversationID], m)
		}
		for i, o := range d.Orders {
			td.orders[i] = o.Clone()
		}
		s.data[d.Tenant.ID] = td
	}
	return s, nil
}

func (s *MemoryStore) tenant(tenantID string) (*tenantData, error) {
	td, ok := s.data[tenantID]
	if !ok {
		return nil, fmt.Errorf("tenant %q: %w", tenantID, interfaces.ErrNotFound)
	}
	return td, nil
}

func (s *MemoryStore) Tenants() []entities.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants.All()
}

func (s *MemoryStore) TenantBySlug(slug string) (entities.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants.BySlug(slug)
}

func (s *MemoryStore) Users(tenantID string) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(td.users), nil
}

// Conversations

func (s *MemoryStore) Conversations(tenantID string) ([]entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(td.conversations), nil
}

func (s *MemoryStore) Conversation(tenantID, id string) (entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return entities.Conversation{}, err
	}
	i := slices.IndexFunc(td.conversations, func(c entities.Conversation) bool { return c.ID == id })
	if i < 0 {
		return entities.Conversation{}, fmt.Errorf("conversation %q: %w", id, interfaces.ErrNotFound)
	}
	return td.conversations[i], nil
}

// Messages returns the thread of a conversation in stored order. An existing
// conversation without messages yields an empty slice.
func (s *MemoryStore) Messages(tenantID, conversationID string) ([]entities.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(td.conversations, func(c entities.Conversation) bool { return c.ID == conversationID }) {
		return nil, fmt.Errorf("conversation %q: %w", conversationID, interfaces.ErrNotFound)
	}
	msgs := slices.Clone(td.messages[conversationID])
	if msgs == nil {
		msgs = []entities.Message{}
	}
	return msgs, nil
}

// Orders

func (s *MemoryStore) Orders(tenantID string) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Order, len(td.orders))
	for i, o := range td.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

// UpdateOrder runs apply on a copy of the order and stores the copy only if
// apply returns nil.
func (s *MemoryStore) UpdateOrder(tenantID, id string, apply func(*entities.Order) error) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return entities.Order{}, err
	}
	i := slices.IndexFunc(td.orders, func(o entities.Order) bool { return o.ID == id })
	if i < 0 {
		return entities.Order{}, fmt.Errorf("order %q: %w", id, interfaces.ErrNotFound)
	}
	o := td.orders[i].Clone()
	if err := apply(&o); err != nil {
		return entities.Order{}, err
	}
	td.orders[i] = o
	return o.Clone(), nil
}

// Viewings

func (s *MemoryStore) Viewings(tenantID string) ([]entities.Viewing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(td.viewings), nil
}

// UpdateViewing runs apply on a copy of the viewing and stores the copy only
// if apply returns nil.
func (s *MemoryStore) UpdateViewing(tenantID, id string, apply func(*entities.Viewing) error) (entities.Viewing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return entities.Viewing{}, err
	}
	i := slices.IndexFunc(td.viewings, func(v entities.Viewing) bool { return v.ID == id })
	if i < 0 {
		return entities.Viewing{}, fmt.Errorf("viewing %q: %w", id, interfaces.ErrNotFound)
	}
	v := td.viewings[i]
	if err := apply(&v); err != nil {
		return entities.Viewing{}, err
	}
	td.viewings[i] = v
	return v, nil
}
