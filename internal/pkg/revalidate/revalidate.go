// Package revalidate tells the front-end which cached pages to recompute
// after a successful mutation.
package revalidate

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Notifier signals that the given page paths are stale.
// Implementations must not fail the calling mutation.
type Notifier interface {
	Revalidate(ctx context.Context, paths ...string)
}

// Dashboard and public page paths
const (
	PathDashboardCourses = "/dashboard/courses"
	PathDashboardUsers   = "/dashboard/users"
	PathDashboardNews    = "/dashboard/news"
	PathDashboardGallery = "/dashboard/gallery"
	PathDashboardReports = "/dashboard/reports"
	PathNews             = "/news"
	PathGallery          = "/gallery"
	PathReports          = "/reports"
)

// UserPath is the dashboard detail page of one user
func UserPath(userID string) string {
	return PathDashboardUsers + "/" + userID
}

// NewsPath is the public page of one article
func NewsPath(id string) string {
	return PathNews + "/" + id
}

// Dedupe drops empty and repeated paths, keeping first-seen order
func Dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// LogNotifier only logs the paths. Used when no webhook is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Revalidate implements Notifier
func (n *LogNotifier) Revalidate(_ context.Context, paths ...string) {
	paths = Dedupe(paths)
	if len(paths) == 0 {
		return
	}
	n.logger.Debug().Strs("paths", paths).Msg("Revalidate paths")
}

// Recorder keeps every revalidated path in memory
type Recorder struct {
	mu    sync.Mutex
	calls [][]string
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Revalidate implements Notifier
func (r *Recorder) Revalidate(_ context.Context, paths ...string) {
	paths = Dedupe(paths)
	if len(paths) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

// Paths returns all recorded paths in call order
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		out = append(out, c...)
	}
	return out
}

// Calls returns the number of Revalidate calls that carried paths
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset forgets recorded calls
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
