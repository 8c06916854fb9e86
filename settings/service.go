// Package settings holds the process-wide platform settings cache. Every
// consumer is handed the one Service instead of querying platform_settings
// ad hoc, so all components see the same snapshot and a save anywhere
// refreshes every process through the realtime bus.
package settings

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/road-mate/api-go/logger"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/realtime"
)

type Service struct {
	db  *gorm.DB
	hub *realtime.Hub

	mu     sync.RWMutex
	values map[string]string

	sub *realtime.Subscription
}

func NewService(db *gorm.DB, hub *realtime.Hub) *Service {
	return &Service{db: db, hub: hub, values: make(map[string]string)}
}

var defaults = map[string]string{
	models.SettingReportsEnabled:      "true",
	models.SettingChatEnabled:         "true",
	models.SettingRegistrationEnabled: "true",
	models.SettingEmergencyNumbers:    `[{"name":"Police","number":"102"},{"name":"Ambulance","number":"103"},{"name":"Roadside assistance","number":"1888"}]`,
}

// Load reads every row into the cache, filling gaps with defaults. Called
// on boot and again on every settings event.
func (s *Service) Load(ctx context.Context) error {
	var rows []models.PlatformSetting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return err
	}

	values := make(map[string]string, len(rows)+len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Watch subscribes the cache to the settings channel. Any event there means
// some process saved a setting; we reload the whole table rather than patch.
func (s *Service) Watch(ctx context.Context) {
	if s.hub == nil {
		return
	}
	s.sub = s.hub.Subscribe(ctx, realtime.SettingsChannel, func(realtime.Event) {
		if err := s.Load(ctx); err != nil {
			logger.Warn("settings: reload failed", "error", err)
		}
	})
}

func (s *Service) Close() {
	if s.sub != nil {
		s.sub.Close()
	}
}

func (s *Service) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Service) GetBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(s.Get(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Snapshot returns a copy of every current value.
func (s *Service) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set upserts one key, refreshes the local cache, and announces the change
// so other processes refresh theirs.
func (s *Service) Set(ctx context.Context, key, value string) error {
	var row models.PlatformSetting
	err := s.db.WithContext(ctx).Where("setting_key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		row = models.PlatformSetting{Key: key, Value: value}
		err = s.db.WithContext(ctx).Create(&row).Error
	} else if err == nil {
		row.Value = value
		err = s.db.WithContext(ctx).Save(&row).Error
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Publish(ctx, realtime.SettingsChannel,
			realtime.NewEvent("platform_settings", realtime.EventUpdate, row.ID, nil))
	}
	return nil
}
