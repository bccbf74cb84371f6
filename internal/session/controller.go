// ABOUTME: Session controller orchestrating the BMI engine and measurement store.
// ABOUTME: Holds draft inputs and drives Idle/Editing/Computing/Ready/Error transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/bmi/internal/bmi"
	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/storage"
)

// ErrBusy is returned when Compute is called while a compute is in flight.
var ErrBusy = errors.New("compute already in progress")

// Store is the slice of the async store the controller writes through.
type Store interface {
	Append(ctx context.Context, c bmi.Computation) *storage.Future[int64]
}

// Refresher is signalled after every successful append.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Controller runs one user's compute workflow.
type Controller struct {
	store        Store
	alerts       Alerter
	refresher    Refresher
	logger       *log.Logger
	onTransition func(from, to State)

	mu      sync.Mutex
	state   State
	weight  string
	height  string
	result  string
	last    bmi.Computation
	lastID  int64
	lastErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithAlerter sets where validation and store failures are surfaced.
func WithAlerter(a Alerter) Option {
	return func(c *Controller) { c.alerts = a }
}

// WithRefresher sets the history view refreshed after each append.
func WithRefresher(r Refresher) Option {
	return func(c *Controller) { c.refresher = r }
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTransitionHook registers fn to observe every state change. fn runs with
// the controller locked and must not call back into it.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// New creates a Controller in the Idle state writing through store.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: log.New(io.Discard),
		state:  Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetWeight replaces the weight draft text.
func (c *Controller) SetWeight(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weight = text
	c.edit()
}

// SetHeight replaces the height draft text.
func (c *Controller) SetHeight(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = text
	c.edit()
}

// edit moves to Editing on a keystroke. Caller holds mu.
func (c *Controller) edit() {
	if c.state != Computing {
		c.transition(Editing)
	}
}

// Compute validates the drafts, persists the measurement, and returns the
// result text. Validation and store failures are alerted and returned; the
// drafts are kept so the user can retry.
func (c *Controller) Compute(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state == Computing {
		c.mu.Unlock()
		return "", ErrBusy
	}

	weight, height := c.weight, c.height
	comp, err := bmi.ValidateAndCompute(weight, height)
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		c.logger.Debug("validation failed", "err", err)
		c.alert(err)
		return "", err
	}

	c.transition(Computing)
	c.mu.Unlock()

	// Wait(ctx) could give up while the insert still lands; Result reports
	// what the worker actually did.
	id, err := c.store.Append(ctx, comp).Result()

	c.mu.Lock()
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		c.logger.Error("persist measurement", "err", err)
		c.alert(err)
		return "", err
	}

	result := FormatResult(comp.Value(), comp.Category())
	c.result = result
	c.last = comp
	c.lastID = id
	c.lastErr = nil
	c.weight, c.height = "", ""
	c.transition(Ready)
	c.mu.Unlock()

	c.logger.Info("measurement recorded",
		"id", id,
		"bmi", models.FormatBMI(comp.Value()),
		"category", comp.Category())

	if c.refresher != nil {
		if err := c.refresher.Refresh(ctx); err != nil {
			c.logger.Error("refresh history", "err", err)
			c.alert(err)
		}
	}

	return result, nil
}

// fail records err and moves to Error. Caller holds mu.
func (c *Controller) fail(err error) {
	c.lastErr = err
	c.transition(Error)
}

// transition changes state and notifies the hook. Caller holds mu.
func (c *Controller) transition(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.logger.Debug("state", "from", from, "to", to)
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

func (c *Controller) alert(err error) {
	if c.alerts != nil {
		c.alerts.Alert(AlertFor(err))
	}
}

// State returns the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Weight returns the weight draft text.
func (c *Controller) Weight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

// Height returns the height draft text.
func (c *Controller) Height() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Result returns the last successful result text, or "" if none.
func (c *Controller) Result() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// LastRecordID returns the ID of the last persisted measurement.
func (c *Controller) LastRecordID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}

// Last returns the last persisted computation, or the zero value if none.
func (c *Controller) Last() bmi.Computation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Err returns the error that moved the controller to Error, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FormatResult renders the result display text.
func FormatResult(value float64, category models.Category) string {
	return fmt.Sprintf("Body Mass Index is %s\n(%s)", models.FormatBMI(value), category)
}
