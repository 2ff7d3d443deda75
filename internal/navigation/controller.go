package navigation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Zachkp/portfolio/internal/logging"
	"go.uber.org/zap"
)

var (
	// ErrNoSections is returned by New for an empty section list.
	ErrNoSections = errors.New("navigation: at least one section is required")
	// ErrClosed is returned by operations on a closed Controller.
	ErrClosed = errors.New("navigation: controller closed")
	// ErrObserving is returned when ObserveSections is called twice.
	ErrObserving = errors.New("navigation: sections already observed")
)

// Scroller performs the smooth scroll that follows a NavigateTo.
type Scroller interface {
	ScrollTo(sectionID string) error
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func(sectionID string) error

func (f ScrollFunc) ScrollTo(sectionID string) error { return f(sectionID) }

// Listener is told the new active section after each change. Listeners run
// synchronously and in order; they may read the Controller but must not
// call NavigateTo or OnSectionVisible.
type Listener func(active string)

// Controller tracks the active section. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	sections  []string
	known     map[string]struct{}
	active    string
	scroller  Scroller
	listeners map[int]Listener
	nextID    int
	observing bool
	closed    bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	log       *zap.Logger
}

// New builds a Controller over sectionIDs in page order. The first id is
// active initially. scroller may be nil.
func New(sectionIDs []string, scroller Scroller) (*Controller, error) {
	if len(sectionIDs) == 0 {
		return nil, ErrNoSections
	}
	known := make(map[string]struct{}, len(sectionIDs))
	for _, id := range sectionIDs {
		if id == "" {
			return nil, errors.New("navigation: empty section id")
		}
		if _, dup := known[id]; dup {
			return nil, fmt.Errorf("navigation: duplicate section id %q", id)
		}
		known[id] = struct{}{}
	}
	return &Controller{
		sections:  append([]string(nil), sectionIDs...),
		known:     known,
		active:    sectionIDs[0],
		scroller:  scroller,
		listeners: make(map[int]Listener),
		log:       logging.Named("navigation"),
	}, nil
}

// Active returns the active section id.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Sections returns the registered section ids in page order.
func (c *Controller) Sections() []string {
	return append([]string(nil), c.sections...)
}

// Has reports whether id is a registered section.
func (c *Controller) Has(id string) bool {
	_, ok := c.known[id]
	return ok
}

// Subscribe registers fn for active-section changes and returns a function
// that removes it.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// ObserveSections subscribes to visibility events for ids, or for every
// registered section when ids is empty. Ids that are not registered, or that
// the source cannot watch, are skipped. Delivery runs until Close.
func (c *Controller) ObserveSections(ctx context.Context, src VisibilitySource, ids ...string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.observing {
		c.mu.Unlock()
		return ErrObserving
	}
	c.observing = true
	ctx, c.cancel = context.WithCancel(ctx)
	// Holds Close until every delivery goroutine below is accounted for.
	c.wg.Add(1)
	defer c.wg.Done()
	c.mu.Unlock()

	if len(ids) == 0 {
		ids = c.sections
	}
	for _, id := range ids {
		if !c.Has(id) {
			c.log.Debug("Skipping unregistered section", zap.String("section", id))
			continue
		}
		events, err := src.Subscribe(ctx, id, VisibilityThreshold)
		if err != nil {
			c.log.Debug("Section not observable", zap.String("section", id), zap.Error(err))
			continue
		}
		c.wg.Add(1)
		go c.deliver(ctx, events)
	}
	return nil
}

func (c *Controller) deliver(ctx context.Context, events <-chan VisibilityEvent) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Intersecting {
				c.OnSectionVisible(e.SectionID)
			}
		}
	}
}

// OnSectionVisible makes id active. Unregistered ids are ignored.
func (c *Controller) OnSectionVisible(id string) {
	c.setActive(id)
}

// NavigateTo makes id active immediately, then asks the Scroller to bring it
// into view. An unregistered id is a silent no-op. Scroll failures are
// logged and otherwise ignored.
func (c *Controller) NavigateTo(id string) {
	if !c.Has(id) {
		c.log.Debug("Ignoring navigation to unknown section", zap.String("section", id))
		return
	}
	if closed := c.setActive(id); closed {
		return
	}
	if c.scroller == nil {
		return
	}
	if err := c.scroller.ScrollTo(id); err != nil {
		c.log.Debug("Scroll request failed", zap.String("section", id), zap.Error(err))
	}
}

// setActive applies id and notifies listeners on change. It reports whether
// the controller was already closed.
func (c *Controller) setActive(id string) (closed bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true
	}
	if _, ok := c.known[id]; !ok || c.active == id {
		c.mu.Unlock()
		return false
	}
	c.active = id
	listeners := c.snapshotListeners()
	// Take notifyMu before releasing mu so notifications keep change order.
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
	return false
}

func (c *Controller) snapshotListeners() []Listener {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = c.listeners[id]
	}
	return out
}

// Close stops all visibility delivery, waits for it to drain and drops the
// listeners. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	c.listeners = make(map[int]Listener)
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
	return nil
}
