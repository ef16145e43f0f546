package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
)

// ReminderSettingsService persists snooze and per-category switches. Each
// mutation is written before it returns.
type ReminderSettingsService interface {
	Load(ctx context.Context, userID string) models.ReminderSettings
	Snooze(ctx context.Context, userID string, d time.Duration) (models.ReminderSettings, error)
	Resume(ctx context.Context, userID string) (models.ReminderSettings, error)
	Toggle(ctx context.Context, userID string, c models.Category) (models.ReminderSettings, error)
}

type reminderSettingsService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
}

func NewReminderSettingsService(rec *records.Store, clock timex.Clock) ReminderSettingsService {
	return &reminderSettingsService{records: rec, clock: clock}
}

func validSettings(s models.ReminderSettings) bool {
	return s.SnoozeUntil >= 0
}

func (s *reminderSettingsService) Load(ctx context.Context, userID string) models.ReminderSettings {
	return records.ReadJSON(ctx, s.records, keys.User(keys.Reminders, userID), models.ReminderSettings{}, validSettings)
}

func (s *reminderSettingsService) update(ctx context.Context, userID string, fn func(*models.ReminderSettings)) (models.ReminderSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.Load(ctx, userID)
	fn(&settings)
	if err := s.records.WriteJSON(ctx, keys.User(keys.Reminders, userID), settings); err != nil {
		return models.ReminderSettings{}, fmt.Errorf("saving reminder settings: %w", err)
	}
	return settings, nil
}

// Snooze silences every category until now+d.
func (s *reminderSettingsService) Snooze(ctx context.Context, userID string, d time.Duration) (models.ReminderSettings, error) {
	if d <= 0 {
		return models.ReminderSettings{}, fmt.Errorf("%w: snooze duration must be positive", common.ErrValidation)
	}
	until := s.clock.Now().Add(d).UnixMilli()
	return s.update(ctx, userID, func(st *models.ReminderSettings) { st.SnoozeUntil = until })
}

func (s *reminderSettingsService) Resume(ctx context.Context, userID string) (models.ReminderSettings, error) {
	return s.update(ctx, userID, func(st *models.ReminderSettings) { st.SnoozeUntil = 0 })
}

func (s *reminderSettingsService) Toggle(ctx context.Context, userID string, c models.Category) (models.ReminderSettings, error) {
	return s.update(ctx, userID, func(st *models.ReminderSettings) { st.Toggle(c) })
}
