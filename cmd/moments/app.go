package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/platform/storage"
	"github.com/phrazzld/moments-api/internal/service"
	"github.com/phrazzld/moments-api/internal/store"
)

// ErrAmbiguousID is returned when an ID prefix matches several moments.
var ErrAmbiguousID = errors.New("ID prefix matches more than one moment")

type openRecordsFunc func(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (store.RecordStore, io.Closer, error)

// cliApp holds the services one command invocation works with.
type cliApp struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
	open   openRecordsFunc

	configPath string
	verbose    bool

	logger    *slog.Logger
	closer    io.Closer
	repo      *service.MomentRepository
	workflow  *service.Workflow
	settings  *service.SettingsService
	reminders *service.ReminderService
	dashboard *service.Dashboard
}

func newCLIApp(out, errOut io.Writer) *cliApp {
	return &cliApp{
		out:    out,
		errOut: errOut,
		now:    time.Now,
		open:   storage.Open,
	}
}

// setup loads the configuration and the persisted state.
func (a *cliApp) setup(ctx context.Context) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}

	logCfg := cfg.Server
	if !a.verbose {
		logCfg.LogLevel = "warn"
	}
	a.logger = logger.SetupWriter(logCfg, a.errOut)

	records, closer, err := a.open(ctx, cfg.Storage, a.logger)
	if err != nil {
		return err
	}
	a.closer = closer

	gw, err := store.NewGateway(records, a.logger)
	if err != nil {
		return err
	}
	emitter := events.NewInMemoryEventEmitter(a.logger)

	if a.repo, err = service.NewMomentRepository(gw, emitter, a.now, a.logger); err != nil {
		return err
	}
	if a.workflow, err = service.NewWorkflow(a.repo, a.logger); err != nil {
		return err
	}
	if a.settings, err = service.NewSettingsService(gw, emitter, a.now, a.logger); err != nil {
		return err
	}
	if a.reminders, err = service.NewReminderService(
		a.repo, notify.NewWriterCapability(a.out), emitter, a.now, a.logger,
	); err != nil {
		return err
	}
	a.dashboard = service.NewDashboard(a.repo)

	a.settings.Load(ctx)
	a.repo.Load(ctx)
	return nil
}

func (a *cliApp) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *cliApp) dispatch(ctx context.Context, cmd service.Command) (*domain.Moment, error) {
	return a.workflow.Dispatch(ctx, cmd)
}

// resolveID finds the moment whose ID is or starts with ref.
func (a *cliApp) resolveID(ref string) (uuid.UUID, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	if ref == "" {
		return uuid.Nil, service.ErrMomentNotFound
	}

	var match uuid.UUID
	for _, m := range a.repo.Snapshot() {
		if strings.HasPrefix(m.ID.String(), ref) {
			if match != uuid.Nil {
				return uuid.Nil, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
			}
			match = m.ID
		}
	}
	if match == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %s", service.ErrMomentNotFound, ref)
	}
	return match, nil
}

// resolveTask finds a task by 1-based position or by ID prefix.
func resolveTask(m *domain.Moment, ref string) (uuid.UUID, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(m.Tasks) {
			return uuid.Nil, fmt.Errorf("%w: no task #%d", service.ErrTaskNotFound, n)
		}
		return m.Tasks[n-1].ID, nil
	}
	ref = strings.ToLower(ref)
	for _, task := range m.Tasks {
		if strings.HasPrefix(task.ID.String(), ref) {
			return task.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%w: %s", service.ErrTaskNotFound, ref)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
