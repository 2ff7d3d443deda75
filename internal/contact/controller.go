package contact

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/relay"
	"go.uber.org/zap"
)

// DefaultResetDelay is how long Success and Error stay on screen.
const DefaultResetDelay = 5 * time.Second

// Relay delivers a submission. Any error counts as a failed submission.
type Relay interface {
	Send(ctx context.Context, sub relay.Submission) error
}

// Listener receives a snapshot after every state change. Listeners run
// synchronously and in change order; they may read the Controller but must
// not call its mutating methods.
type Listener func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, for tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.resetDelay = d
		}
	}
}

// Controller owns the form fields and submission status. It is safe for
// concurrent use.
type Controller struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	relay      Relay
	clock      Clock
	resetDelay time.Duration
	log        *zap.Logger

	fields    Fields
	status    Status
	reset     Timer
	listeners map[int]Listener
	nextID    int
	closed    bool
}

// New returns an idle Controller with empty fields.
func New(r Relay, opts ...Option) *Controller {
	c := &Controller{
		relay:      r,
		clock:      RealClock(),
		resetDelay: DefaultResetDelay,
		log:        logging.Named("contact"),
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Status: c.status, Fields: c.fields}
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Fields returns the current field values.
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
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

// UpdateField sets one field. It is allowed in every status; disabling input
// while Sending is left to the presentation layer.
func (c *Controller) UpdateField(name, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	switch name {
	case FieldName:
		c.fields.Name = value
	case FieldEmail:
		c.fields.Email = value
	case FieldMessage:
		c.fields.Message = value
	default:
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.commit()
	return nil
}

// Submit posts the fields to the relay and blocks until it answers.
//
// It returns ErrValidation when email or message is empty and ErrBusy when
// the form is not Idle; in both cases nothing changes and no request is
// made. Otherwise the form moves to Sending, then to Success (fields
// cleared) or Error (fields kept), and returns to Idle after the reset
// delay. A relay failure is returned after the Error transition.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.fields.Complete() {
		c.mu.Unlock()
		return ErrValidation
	}
	if c.status != StatusIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	sub := relay.Submission{
		Name:    c.fields.Name,
		Email:   c.fields.Email,
		Message: c.fields.Message,
	}
	c.status = StatusSending
	c.commit()

	start := time.Now()
	err := c.relay.Send(ctx, sub)

	fields := []zap.Field{
		zap.String("sender", logging.Anonymize(sub.Email)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		c.log.Warn("Contact submission failed", append(fields, zap.Error(err))...)
	} else {
		c.log.Info("Contact submission delivered", fields...)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.status = StatusError
	} else {
		c.status = StatusSuccess
		c.fields = Fields{}
	}
	c.scheduleReset()
	c.commit()
	return err
}

// scheduleReset arms the return to Idle. Caller holds mu.
func (c *Controller) scheduleReset() {
	if c.reset != nil {
		c.reset.Stop()
	}
	var t Timer
	t = c.clock.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		if c.closed || c.reset != t || (c.status != StatusSuccess && c.status != StatusError) {
			c.mu.Unlock()
			return
		}
		c.reset = nil
		c.status = StatusIdle
		c.commit()
	})
	c.reset = t
}

// commit publishes the current state to listeners. Caller holds mu; commit
// releases it.
func (c *Controller) commit() {
	state := State{Status: c.status, Fields: c.fields}
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, len(ids))
	for i, id := range ids {
		listeners[i] = c.listeners[id]
	}
	// Take notifyMu before releasing mu so notifications keep change order.
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Close cancels a pending reset and drops the listeners. A submission in
// flight completes but its outcome is not applied. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
	c.listeners = make(map[int]Listener)
	return nil
}
