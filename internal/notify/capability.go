package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Permission is the delivery permission reported by a Capability.
type Permission string

// Permission values
const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// ErrInvalidPermission is returned when parsing an unknown permission value.
var ErrInvalidPermission = errors.New("invalid notification permission")

// ParsePermission converts a configured string to a Permission.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPermission, s)
	}
}

// Capability is the environment-specific way of showing a reminder.
type Capability interface {
	// Permission returns the current permission without prompting.
	Permission(ctx context.Context) Permission

	// RequestPermission asks for permission and returns the outcome.
	RequestPermission(ctx context.Context) (Permission, error)

	// Show delivers one notification.
	Show(ctx context.Context, title, body string) error
}

// permissionState implements the permission half of Capability. A request
// while the state is PermissionDefault resolves to onRequest; granted and
// denied are sticky.
type permissionState struct {
	mu        sync.Mutex
	current   Permission
	onRequest Permission
}

func (p *permissionState) Permission(context.Context) Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *permissionState) RequestPermission(context.Context) (Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == PermissionDefault {
		p.current = p.onRequest
	}
	return p.current, nil
}

// LogCapability delivers reminders as structured log records. The server
// uses it where no desktop or push channel exists.
type LogCapability struct {
	permissionState
	logger *slog.Logger
}

// NewLogCapability creates a LogCapability starting at initial. A later
// request for permission is granted.
func NewLogCapability(initial Permission, logger *slog.Logger) *LogCapability {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogCapability{
		permissionState: permissionState{current: initial, onRequest: PermissionGranted},
		logger:          logger.With("component", "log_notifier"),
	}
}

// Show implements Capability.
func (c *LogCapability) Show(ctx context.Context, title, body string) error {
	c.logger.InfoContext(ctx, "reminder", "title", title, "body", body)
	return nil
}

// WriterCapability prints reminders as lines of text. The CLI uses it with
// the terminal as destination.
type WriterCapability struct {
	permissionState
	writeMu sync.Mutex
	w       io.Writer
}

// NewWriterCapability creates a WriterCapability that is already granted.
func NewWriterCapability(w io.Writer) *WriterCapability {
	return &WriterCapability{
		permissionState: permissionState{current: PermissionGranted, onRequest: PermissionGranted},
		w:               w,
	}
}

// Show implements Capability.
func (c *WriterCapability) Show(_ context.Context, title, body string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := fmt.Fprintf(c.w, "🔔 %s: %s\n", title, body)
	return err
}
