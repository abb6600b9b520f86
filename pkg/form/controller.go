package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Controller holds the form state and drives the schema on every change.
// All methods are safe for concurrent use; the banner expiry runs on a timer
// goroutine.
type Controller struct {
	mu sync.Mutex

	schema  *schema.Schema
	values  schema.Record
	touched map[string]struct{}
	errs    schema.Errors
	banner  banner

	policy   TouchPolicy
	sink     Sink
	logger   *slog.Logger
	ttl      time.Duration
	after    AfterFunc
	onChange func(View)
	newID    func() string
	now      func() time.Time
}

type banner struct {
	visible    bool
	generation uint64
	timer      Timer
	submission string
}

// New constructs a controller seeded with the default record. A nil schema
// falls back to schema.New().
func New(s *schema.Schema, options ...Option) *Controller {
	if s == nil {
		s = schema.New()
	}
	c := &Controller{
		schema: s,
		policy: TouchOnChange,
		sink:   discardSink{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ttl:    DefaultBannerTTL,
		after:  realAfterFunc,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.clearLocked()
	return c
}

// Schema exposes the rule table the controller validates against.
func (c *Controller) Schema() *schema.Schema {
	return c.schema
}

// Policy reports the active touch policy.
func (c *Controller) Policy() TouchPolicy {
	return c.policy
}

// SetFieldValue stores value, marks the field touched under TouchOnChange
// and revalidates. Unknown fields are ignored.
func (c *Controller) SetFieldValue(field string, value any) {
	c.mu.Lock()
	if !c.setLocked(field, value) {
		c.mu.Unlock()
		return
	}
	c.errs = c.schema.Validate(c.values)
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

// SetFieldValues applies several values as one transition.
func (c *Controller) SetFieldValues(values schema.Record) {
	c.mu.Lock()
	changed := false
	for field, value := range values {
		if c.setLocked(field, value) {
			changed = true
		}
	}
	if !changed {
		c.mu.Unlock()
		return
	}
	c.errs = c.schema.Validate(c.values)
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

func (c *Controller) setLocked(field string, value any) bool {
	if !c.schema.Has(field) {
		c.logger.Debug("ignoring unknown field", slog.String("field", field))
		return false
	}
	c.values[field] = value
	if c.policy == TouchOnChange {
		c.touched[field] = struct{}{}
	}
	return true
}

// Blur marks field as touched regardless of policy.
func (c *Controller) Blur(field string) {
	c.mu.Lock()
	if !c.schema.Has(field) {
		c.mu.Unlock()
		c.logger.Debug("ignoring blur on unknown field", slog.String("field", field))
		return
	}
	if _, ok := c.touched[field]; ok {
		c.mu.Unlock()
		return
	}
	c.touched[field] = struct{}{}
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

// TouchAll marks every field touched so all current errors become visible.
func (c *Controller) TouchAll() {
	c.mu.Lock()
	for _, field := range c.schema.Fields() {
		c.touched[field.Name] = struct{}{}
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

// Submit hands the record to the sink when every field is valid, then
// restores defaults and raises the success banner. When the record is
// invalid nothing changes and the returned error wraps ErrFormInvalid and
// the field errors.
func (c *Controller) Submit(ctx context.Context) (Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if !c.errs.Empty() {
		err := c.errs.Err()
		c.mu.Unlock()
		c.logger.Debug("submit rejected", slog.Any("error", err))
		return Submission{}, fmt.Errorf("%w: %w", ErrFormInvalid, err)
	}

	sub := Submission{
		ID:          c.newID(),
		Record:      c.values.Clone(),
		SubmittedAt: c.now(),
	}
	c.clearLocked()
	c.showBannerLocked(sub.ID)
	view := c.viewLocked()
	c.mu.Unlock()

	if err := c.sink.Accept(ctx, sub); err != nil {
		c.logger.Warn("submission sink failed", slog.String("id", sub.ID), slog.Any("error", err))
	}
	c.notify(view)
	return sub, nil
}

// Reset restores defaults, clears touched fields and dismisses the banner,
// cancelling any pending expiry.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.clearLocked()
	c.hideBannerLocked()
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

// Valid reports whole-form validity, independent of touched state.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.Empty()
}

// Errors returns a copy of the live validation result.
func (c *Controller) Errors() schema.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(schema.Errors, len(c.errs))
	for field, fe := range c.errs {
		copied := *fe
		out[field] = &copied
	}
	return out
}

// VisibleErrors returns the messages a presentation layer may show: only
// fields that are both touched and failing.
func (c *Controller) VisibleErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string)
	for field, fe := range c.errs {
		if _, ok := c.touched[field]; ok {
			out[field] = fe.Message
		}
	}
	return out
}

// Touched reports whether field has been interacted with.
func (c *Controller) Touched(field string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.touched[field]
	return ok
}

// FieldState reports the state machine position of field.
func (c *Controller) FieldState(field string) FieldState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(field)
}

// Values returns a copy of the current record.
func (c *Controller) Values() schema.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// BannerVisible reports whether the success banner is currently up.
func (c *Controller) BannerVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner.visible
}

// View snapshots the state for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) clearLocked() {
	c.values = schema.DefaultRecord()
	c.touched = make(map[string]struct{})
	c.errs = c.schema.Validate(c.values)
}

func (c *Controller) showBannerLocked(id string) {
	c.stopBannerTimerLocked()
	c.banner.generation++
	c.banner.visible = true
	c.banner.submission = id

	generation := c.banner.generation
	c.banner.timer = c.after(c.ttl, func() {
		c.expireBanner(generation)
	})
}

func (c *Controller) hideBannerLocked() {
	c.stopBannerTimerLocked()
	c.banner.generation++
	c.banner.visible = false
	c.banner.submission = ""
}

func (c *Controller) stopBannerTimerLocked() {
	if c.banner.timer != nil {
		c.banner.timer.Stop()
		c.banner.timer = nil
	}
}

func (c *Controller) expireBanner(generation uint64) {
	c.mu.Lock()
	if generation != c.banner.generation || !c.banner.visible {
		c.mu.Unlock()
		return
	}
	c.banner.visible = false
	c.banner.submission = ""
	c.banner.timer = nil
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Debug("success banner expired", slog.Uint64("generation", generation))
	c.notify(view)
}

func (c *Controller) stateLocked(field string) FieldState {
	if _, ok := c.touched[field]; !ok {
		return Untouched
	}
	if c.errs.Has(field) {
		return TouchedInvalid
	}
	return TouchedValid
}

func (c *Controller) viewLocked() View {
	fields := c.schema.Fields()
	view := View{
		Fields:         make([]FieldView, 0, len(fields)),
		CanSubmit:      c.errs.Empty(),
		Banner:         c.banner.visible,
		LastSubmission: c.banner.submission,
	}
	for _, field := range fields {
		state := c.stateLocked(field.Name)
		fv := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Widget:      field.Widget,
			Placeholder: field.Placeholder,
			Choices:     field.Choices,
			Value:       c.values[field.Name],
			Touched:     state != Untouched,
			State:       state.String(),
		}
		if state == TouchedInvalid {
			fv.Error = c.errs[field.Name].Message
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func (c *Controller) notify(view View) {
	if c.onChange != nil {
		c.onChange(view)
	}
}
