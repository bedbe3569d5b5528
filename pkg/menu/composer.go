package menu

import (
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/domain"
)

// DefaultCapacity is the number of controls a single page can hold.
const DefaultCapacity = 8

// DefaultDelimiter separates folder names in a menu path.
const DefaultDelimiter = "/"

// ErrNilMenu is returned when a container handle is nil.
var ErrNilMenu = errors.New("menu container is nil")

// ErrNilControl is returned when InsertControl is called without a control.
var ErrNilControl = errors.New("control is nil")

// Composer inserts controls into bounded menu pages, creating submenus and
// continuation pages as needed. A Composer holds no tree state; callers own
// exclusive access to the tree for the duration of each call.
type Composer struct {
	capacity int
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithCapacity overrides the per-page capacity. Values below 2 are ignored,
// since a page must fit one payload control next to its continuation link.
func WithCapacity(n int) Option {
	return func(c *Composer) {
		if n >= 2 {
			c.capacity = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Composer) {
		c.hooks = hooks
	}
}

// NewComposer creates a Composer with DefaultCapacity.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		capacity: DefaultCapacity,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capacity returns the per-page capacity.
func (c *Composer) Capacity() int {
	return c.capacity
}

func (c *Composer) event(t domain.EventType, m *domain.Menu, control string, page int) *domain.MenuEvent {
	return &domain.MenuEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: t},
		MenuID:    m.ID,
		Control:   control,
		Page:      page,
	}
}
