package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/redact"
)

// Gateway loads and saves the moment collection and the settings record.
// Loads never fail: missing or unreadable data yields the empty default.
type Gateway struct {
	records RecordStore
	logger  *slog.Logger
}

// NewGateway creates a Gateway on top of records.
// Returns an error if records is nil. A nil logger uses slog.Default().
func NewGateway(records RecordStore, log *slog.Logger) (*Gateway, error) {
	if records == nil {
		return nil, fmt.Errorf("records cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		records: records,
		logger:  log.With("component", "persistence_gateway"),
	}, nil
}

// LoadMoments returns the stored collection in stored order. It returns an
// empty slice when nothing was saved, the backend cannot be read, the data
// cannot be decoded, or any moment violates the domain invariants.
func (g *Gateway) LoadMoments(ctx context.Context) []domain.Moment {
	log := logger.FromContextOrDefault(ctx, g.logger)

	data, ok := g.load(ctx, log, KeyMoments)
	if !ok {
		return []domain.Moment{}
	}

	moments, err := DecodeMoments(data)
	if err != nil {
		log.Warn("stored moments are corrupt, starting with an empty collection",
			"key", KeyMoments,
			"error", redact.Error(err))
		return []domain.Moment{}
	}

	log.Debug("loaded moments", "count", len(moments))
	return moments
}

// SaveMoments overwrites the stored collection.
func (g *Gateway) SaveMoments(ctx context.Context, moments []domain.Moment) error {
	if moments == nil {
		moments = []domain.Moment{}
	}
	data, err := json.Marshal(moments)
	if err != nil {
		return NewStoreError(KeyMoments, "encode", "failed to encode moments", err)
	}
	return g.save(ctx, KeyMoments, data)
}

// LoadSettings returns the stored settings, or domain.DefaultSettings() when
// none are stored or the record is unusable.
func (g *Gateway) LoadSettings(ctx context.Context) domain.Settings {
	log := logger.FromContextOrDefault(ctx, g.logger)

	data, ok := g.load(ctx, log, KeySettings)
	if !ok {
		return domain.DefaultSettings()
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Warn("stored settings are corrupt, using defaults",
			"key", KeySettings,
			"error", redact.Error(err))
		return domain.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		log.Warn("stored settings are invalid, using defaults",
			"key", KeySettings,
			"error", err)
		return domain.DefaultSettings()
	}
	return settings.Normalize()
}

// SaveSettings validates and overwrites the stored settings.
func (g *Gateway) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(settings.Normalize())
	if err != nil {
		return NewStoreError(KeySettings, "encode", "failed to encode settings", err)
	}
	return g.save(ctx, KeySettings, data)
}

func (g *Gateway) load(ctx context.Context, log *slog.Logger, key string) ([]byte, bool) {
	data, err := g.records.Load(ctx, key)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		log.Debug("no stored record, using default", "key", key)
		return nil, false
	case err != nil:
		log.Warn("failed to read stored record, using default",
			"key", key,
			"error", redact.Error(err))
		return nil, false
	}
	return data, true
}

func (g *Gateway) save(ctx context.Context, key string, data []byte) error {
	if err := g.records.Save(ctx, key, data); err != nil {
		var sErr *StoreError
		if errors.As(err, &sErr) && errors.Is(err, ErrSaveFailed) {
			return err
		}
		return SaveError(key, err)
	}
	return nil
}

// DecodeMoments parses a stored moment collection and checks every domain
// invariant, including id uniqueness across the collection.
func DecodeMoments(data []byte) ([]domain.Moment, error) {
	var moments []domain.Moment
	if err := json.Unmarshal(data, &moments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if moments == nil {
		return []domain.Moment{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(moments))
	for i := range moments {
		if err := moments[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: moment %d: %w", ErrCorruptRecord, i, err)
		}
		if _, dup := seen[moments[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate moment id %s", ErrCorruptRecord, moments[i].ID)
		}
		seen[moments[i].ID] = struct{}{}
	}
	return moments, nil
}
