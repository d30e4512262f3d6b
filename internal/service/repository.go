package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/redact"
)

// MomentStore is the persistence side of the repository. *store.Gateway
// satisfies it.
type MomentStore interface {
	// LoadMoments returns the stored collection, or an empty one when nothing
	// usable is stored.
	LoadMoments(ctx context.Context) []domain.Moment

	// SaveMoments overwrites the stored collection.
	SaveMoments(ctx context.Context, moments []domain.Moment) error
}

// MomentRepository owns the in-memory moment collection and the selection.
//
// Mutations are serialized: each one validates, swaps the collection,
// persists it and emits its event before the next mutation starts. When the
// write fails the previous collection is restored. Readers always receive
// deep copies.
type MomentRepository struct {
	// writeMu serializes mutations including event delivery; mu guards state
	// so event handlers can read snapshots while a mutation is in flight.
	writeMu sync.Mutex
	mu      sync.RWMutex

	moments  []domain.Moment
	selected uuid.UUID

	store   MomentStore
	emitter events.EventEmitter
	now     func() time.Time
	logger  *slog.Logger
}

// NewMomentRepository creates an empty repository. Call Load to populate it
// from the store. A nil emitter discards events and a nil clock uses
// time.Now.
func NewMomentRepository(
	store MomentStore,
	emitter events.EventEmitter,
	now func() time.Time,
	log *slog.Logger,
) (*MomentRepository, error) {
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

	return &MomentRepository{
		moments: []domain.Moment{},
		store:   store,
		emitter: emitter,
		now:     now,
		logger:  log.With("component", "moment_repository"),
	}, nil
}

// Now returns the repository clock's current time.
func (r *MomentRepository) Now() time.Time {
	return r.now()
}

// Load replaces the collection with the stored one and clears the selection.
func (r *MomentRepository) Load(ctx context.Context) {
	loaded := r.store.LoadMoments(ctx)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.mu.Lock()
	r.moments = loaded
	r.selected = uuid.Nil
	r.mu.Unlock()

	logger.FromContextOrDefault(ctx, r.logger).Info("moments loaded", "count", len(loaded))
}

// Create builds a new active moment from the input and stores it.
// Validation failures leave the collection untouched.
func (r *MomentRepository) Create(ctx context.Context, in domain.MomentInput) (*domain.Moment, error) {
	m, err := domain.NewMoment(in, r.now())
	if err != nil {
		return nil, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	next := append(slices.Clone(r.moments), *m)
	r.mu.RUnlock()

	if err := r.commit(ctx, next, nil); err != nil {
		return nil, err
	}
	r.emit(ctx, events.MomentCreated, m.ID)
	return m.Clone(), nil
}

// Update replaces the editable fields of the moment with the same ID. The
// identity, creation time, status and reflection cannot change, and the
// emotion history may only grow at its end.
func (r *MomentRepository) Update(ctx context.Context, updated domain.Moment) (*domain.Moment, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	idx := r.indexOf(updated.ID)
	var current domain.Moment
	if idx >= 0 {
		current = *r.moments[idx].Clone()
	}
	r.mu.RUnlock()
	if idx < 0 {
		return nil, ErrMomentNotFound
	}

	if err := checkImmutable(&current, &updated); err != nil {
		return nil, err
	}
	updated.Title = strings.TrimSpace(updated.Title)
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	stored := updated.Clone()
	if err := r.replaceAt(ctx, idx, *stored); err != nil {
		return nil, err
	}
	r.emit(ctx, events.MomentUpdated, stored.ID)
	return stored.Clone(), nil
}

// Mutate applies fn to a copy of the moment, validates the result and
// stores it. The event of the given type is emitted on success. Errors from
// fn are returned unchanged and leave the collection untouched.
func (r *MomentRepository) Mutate(
	ctx context.Context,
	id uuid.UUID,
	eventType events.Type,
	fn func(m *domain.Moment) error,
) (*domain.Moment, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	idx := r.indexOf(id)
	var working *domain.Moment
	if idx >= 0 {
		working = r.moments[idx].Clone()
	}
	r.mu.RUnlock()
	if idx < 0 {
		return nil, ErrMomentNotFound
	}

	before := working.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	if err := checkImmutable(before, working); err != nil && !lifecycleEvent(eventType) {
		return nil, err
	}
	if err := working.Validate(); err != nil {
		return nil, err
	}

	if err := r.replaceAt(ctx, idx, *working); err != nil {
		return nil, err
	}
	r.emit(ctx, eventType, id)
	return working.Clone(), nil
}

// Delete removes the moment and clears the selection if it pointed to it.
func (r *MomentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	idx := r.indexOf(id)
	var next []domain.Moment
	if idx >= 0 {
		next = slices.Delete(slices.Clone(r.moments), idx, idx+1)
	}
	r.mu.RUnlock()
	if idx < 0 {
		return ErrMomentNotFound
	}

	if err := r.commit(ctx, next, func() {
		if r.selected == id {
			r.selected = uuid.Nil
		}
	}); err != nil {
		return err
	}
	r.emit(ctx, events.MomentDeleted, id)
	return nil
}

// Get returns a copy of the moment with the given ID.
func (r *MomentRepository) Get(id uuid.UUID) (*domain.Moment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrMomentNotFound
	}
	return r.moments[idx].Clone(), nil
}

// Select marks the moment as the current selection. uuid.Nil clears it.
func (r *MomentRepository) Select(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != uuid.Nil && r.indexOf(id) < 0 {
		return ErrMomentNotFound
	}
	r.selected = id
	return nil
}

// Selected returns a copy of the selected moment, if any.
func (r *MomentRepository) Selected() (*domain.Moment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.selected == uuid.Nil {
		return nil, false
	}
	idx := r.indexOf(r.selected)
	if idx < 0 {
		return nil, false
	}
	return r.moments[idx].Clone(), true
}

// QueryActive returns active moments soonest first, ties broken by creation time.
func (r *MomentRepository) QueryActive() []domain.Moment {
	active := r.filter((*domain.Moment).IsActive)
	slices.SortStableFunc(active, func(a, b domain.Moment) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return active
}

// QueryHistory returns completed and archived moments, latest date first.
func (r *MomentRepository) QueryHistory() []domain.Moment {
	history := r.filter((*domain.Moment).IsHistory)
	slices.SortStableFunc(history, func(a, b domain.Moment) int {
		return b.Date.Compare(a.Date)
	})
	return history
}

// Snapshot returns a deep copy of the collection in stored order.
func (r *MomentRepository) Snapshot() []domain.Moment {
	return r.filter(func(*domain.Moment) bool { return true })
}

func (r *MomentRepository) filter(keep func(*domain.Moment) bool) []domain.Moment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Moment, 0, len(r.moments))
	for i := range r.moments {
		if keep(&r.moments[i]) {
			out = append(out, *r.moments[i].Clone())
		}
	}
	return out
}

func (r *MomentRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.moments, func(m domain.Moment) bool { return m.ID == id })
}

func (r *MomentRepository) replaceAt(ctx context.Context, idx int, m domain.Moment) error {
	r.mu.RLock()
	next := slices.Clone(r.moments)
	r.mu.RUnlock()
	next[idx] = m
	return r.commit(ctx, next, nil)
}

// commit swaps in next, persists it and restores the previous collection if
// the write fails. after runs under the state lock once the write succeeded.
// Callers hold writeMu.
func (r *MomentRepository) commit(ctx context.Context, next []domain.Moment, after func()) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	r.mu.Lock()
	prev := r.moments
	r.moments = next
	r.mu.Unlock()

	if err := r.store.SaveMoments(ctx, next); err != nil {
		r.mu.Lock()
		r.moments = prev
		r.mu.Unlock()
		log.Error("failed to persist moments, change rolled back",
			"error", redact.Error(err),
			"count", len(next))
		return err
	}

	if after != nil {
		r.mu.Lock()
		after()
		r.mu.Unlock()
	}
	return nil
}

func (r *MomentRepository) emit(ctx context.Context, eventType events.Type, id uuid.UUID) {
	event := events.NewEvent(eventType, id, r.now())
	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Warn("event handler failed",
			"event_type", eventType,
			"moment_id", id,
			"error", redact.Error(err))
	}
}

// lifecycleEvent reports whether the mutation is a status transition, which
// is allowed to set status and reflection.
func lifecycleEvent(t events.Type) bool {
	return t == events.MomentCompleted || t == events.MomentArchived
}

// checkImmutable rejects updates that change identity, creation time,
// status or reflection, or that rewrite the emotion history instead of
// appending to it.
func checkImmutable(current, updated *domain.Moment) error {
	switch {
	case updated.ID != current.ID:
		return immutable("id")
	case !updated.CreatedAt.Equal(current.CreatedAt):
		return immutable("created_at")
	case updated.Status != current.Status:
		return immutable("status")
	case !sameReflection(current.Reflection, updated.Reflection):
		return immutable("reflection")
	case updated.InitialEmotion != current.InitialEmotion:
		return immutable("initial_emotion")
	}

	if len(updated.EmotionHistory) < len(current.EmotionHistory) {
		return immutable("emotion_history")
	}
	for i, entry := range current.EmotionHistory {
		got := updated.EmotionHistory[i]
		if got.ID != entry.ID || got.Emotion != entry.Emotion ||
			got.Note != entry.Note || !got.Date.Equal(entry.Date) {
			return immutable("emotion_history")
		}
	}
	return nil
}

func sameReflection(a, b *domain.Reflection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func immutable(field string) error {
	return domain.NewValidationError(field, "cannot be changed by an update", ErrImmutableField)
}

// IsNotFound reports whether err means a moment or task does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMomentNotFound) || errors.Is(err, ErrTaskNotFound)
}
