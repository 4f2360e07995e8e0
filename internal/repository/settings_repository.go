package repository

import (
	"fmt"

	"botdash/internal/entities"
)

// Settings returns the tenant's business profile.
func (s *MemoryStore) Settings(tenantID string) (entities.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return entities.Settings{}, err
	}
	return td.settings, nil
}

// SaveSettings replaces the tenant's business profile. Invalid settings are
// rejected and the stored ones kept.
func (s *MemoryStore) SaveSettings(tenantID string, settings entities.Settings) error {
	if err := entities.Validate(settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	td, err := s.tenant(tenantID)
	if err != nil {
		return err
	}
	td.settings = settings
	return nil
}
