package service

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/platform/memory"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/require"
)

// fixedNow is Monday 2025-03-10 09:30 UTC.
var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	records *memory.RecordStore
	gateway *store.Gateway
	emitter *recordingEmitter
	repo    *MomentRepository
	now     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log, _ := logger.NewTestLogger(t)

	env := &testEnv{
		records: memory.NewRecordStore(),
		emitter: &recordingEmitter{},
		now:     fixedNow,
	}
	gw, err := store.NewGateway(env.records, log)
	require.NoError(t, err)
	env.gateway = gw

	repo, err := NewMomentRepository(gw, env.emitter, func() time.Time { return env.now }, log)
	require.NoError(t, err)
	env.repo = repo
	return env
}

func (e *testEnv) create(t *testing.T, title string, date domain.Date, opts ...func(*domain.MomentInput)) *domain.Moment {
	t.Helper()
	in := domain.MomentInput{Title: title, Date: date}
	for _, opt := range opts {
		opt(&in)
	}
	m, err := e.repo.Create(context.Background(), in)
	require.NoError(t, err)
	return m
}

func withPriority(p domain.Priority) func(*domain.MomentInput) {
	return func(in *domain.MomentInput) { in.Priority = p }
}

func withTasks(tasks ...string) func(*domain.MomentInput) {
	return func(in *domain.MomentInput) { in.Tasks = tasks }
}

func today() domain.Date {
	return domain.DateOf(fixedNow)
}
