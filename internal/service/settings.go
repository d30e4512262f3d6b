package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/platform/logger"
)

// SettingsStore persists user settings. *store.Gateway satisfies it.
type SettingsStore interface {
	LoadSettings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// SettingsService holds the current settings and persists every change.
type SettingsService struct {
	mu      sync.Mutex
	current domain.Settings

	store   SettingsStore
	emitter events.EventEmitter
	now     func() time.Time
	logger  *slog.Logger
}

// NewSettingsService creates a service holding the default settings until
// Load is called.
func NewSettingsService(
	store SettingsStore,
	emitter events.EventEmitter,
	now func() time.Time,
	log *slog.Logger,
) (*SettingsService, error) {
	if store == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &SettingsService{
		current: domain.DefaultSettings(),
		store:   store,
		emitter: emitter,
		now:     now,
		logger:  log.With("component", "settings_service"),
	}, nil
}

// Load reads the stored settings, falling back to the defaults.
func (s *SettingsService) Load(ctx context.Context) domain.Settings {
	loaded := s.store.LoadSettings(ctx)
	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update validates, normalizes and stores settings. The previous settings
// stay in effect when validation or the write fails.
func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	settings = settings.Normalize()

	s.mu.Lock()
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		s.mu.Unlock()
		return domain.Settings{}, err
	}
	s.current = settings
	s.mu.Unlock()

	log.Info("settings updated", "theme", settings.Theme, "language", settings.Language)
	if err := s.emitter.EmitEvent(ctx, events.NewEvent(events.SettingsChanged, uuid.Nil, s.now())); err != nil {
		log.Warn("settings event handler failed", "error", err)
	}
	return settings, nil
}
