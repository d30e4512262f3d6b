package service

import (
	"github.com/phrazzld/moments-api/internal/domain/analytics"
)

// Dashboard computes analytics from the repository's current snapshot.
type Dashboard struct {
	moments *MomentRepository
}

// NewDashboard creates a Dashboard over moments.
func NewDashboard(moments *MomentRepository) *Dashboard {
	return &Dashboard{moments: moments}
}

// Summary recomputes the analytics summary at the repository clock's now.
func (d *Dashboard) Summary() analytics.Summary {
	return analytics.Summarize(d.moments.Snapshot(), d.moments.Now())
}
