package account

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
)

// Preferences returns the UI preferences
func (s *Store) Preferences() entity.UIPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetSidebar opens or closes the sidebar and persists the choice
func (s *Store) SetSidebar(ctx context.Context, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.SidebarOpen = open
	if err := s.preferences.Save(ctx, next); err != nil {
		return errs.WrapPersistence(err)
	}
	s.prefs = next
	return nil
}
