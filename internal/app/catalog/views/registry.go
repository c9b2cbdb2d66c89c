package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/invcat-service/internal/app/catalog/controller"
	"github.com/light-bringer/invcat-service/internal/pkg/clock"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

var (
	ErrViewNotFound = errors.New("view not found")
	ErrTooManyViews = errors.New("too many open views")
)

// Options configure a Registry.
type Options struct {
	PageSize int

	// IdleTTL expires views not accessed for this long. Zero keeps views
	// until they are closed.
	IdleTTL time.Duration

	// MaxViews caps the number of open views. Zero means no cap.
	MaxViews int

	Clock clock.Clock
}

type entry struct {
	controller *controller.Controller
	lastSeen   time.Time
}

// Registry keeps the open catalog views of the process. All views share the
// engine, and with it the local records.
type Registry struct {
	engine *controller.Engine
	opts   Options

	mu    sync.Mutex
	views map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry(engine *controller.Engine, opts Options) *Registry {
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	return &Registry{
		engine: engine,
		opts:   opts,
		views:  make(map[string]*entry),
	}
}

// Open creates a view, loads its first page and returns its id. Idle views
// are expired first; ErrTooManyViews is returned when the cap is still reached.
func (r *Registry) Open(ctx context.Context) (string, controller.View, error) {
	r.mu.Lock()
	now := r.opts.Clock.Now()
	r.sweepLocked(now)
	if r.opts.MaxViews > 0 && len(r.views) >= r.opts.MaxViews {
		r.mu.Unlock()
		return "", controller.View{}, ErrTooManyViews
	}

	id := uuid.NewString()
	c := r.engine.NewController(r.opts.PageSize)
	r.views[id] = &entry{controller: c, lastSeen: now}
	r.mu.Unlock()

	return id, c.Refresh(ctx), nil
}

// Get returns the controller of an open view and marks it as used.
func (r *Registry) Get(id string) (*controller.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}

	now := r.opts.Clock.Now()
	if r.expired(e, now) {
		delete(r.views, id)
		return nil, ErrViewNotFound
	}
	e.lastSeen = now
	return e.controller, nil
}

// Close drops a view.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.views[id]; !ok {
		return ErrViewNotFound
	}
	delete(r.views, id)
	return nil
}

// Sweep drops every idle view and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.opts.Clock.Now())
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *Registry) sweepLocked(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}

	dropped := 0
	for id, e := range r.views {
		if r.expired(e, now) {
			delete(r.views, id)
			dropped++
		}
	}
	if dropped > 0 {
		logx.Debug().Int("dropped", dropped).Int("open", len(r.views)).Msg("expired idle views")
	}
	return dropped
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.opts.IdleTTL > 0 && now.Sub(e.lastSeen) >= r.opts.IdleTTL
}
