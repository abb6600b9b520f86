package form

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultBannerTTL is how long the success banner stays visible.
const DefaultBannerTTL = 3 * time.Second

// TouchPolicy decides which interaction marks a field as touched.
type TouchPolicy string

const (
	// TouchOnChange marks a field touched on every value change and on blur.
	TouchOnChange TouchPolicy = "change"
	// TouchOnBlur marks a field touched on blur only. Values still
	// revalidate live on every change.
	TouchOnBlur TouchPolicy = "blur"
)

// ParseTouchPolicy maps a configuration string onto a TouchPolicy.
func ParseTouchPolicy(raw string) (TouchPolicy, error) {
	switch TouchPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case TouchOnChange, "":
		return TouchOnChange, nil
	case TouchOnBlur:
		return TouchOnBlur, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTouchPolicy, raw)
	}
}

// Timer is the handle returned by an AfterFunc implementation.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn to run once after d.
type AfterFunc func(d time.Duration, fn func()) Timer

func realAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures the controller.
type Option func(*Controller)

// WithTouchPolicy overrides the default TouchOnChange policy. Values are
// normalised through ParseTouchPolicy; unknown or empty ones are ignored.
func WithTouchPolicy(policy TouchPolicy) Option {
	return func(c *Controller) {
		if strings.TrimSpace(string(policy)) == "" {
			return
		}
		if parsed, err := ParseTouchPolicy(string(policy)); err == nil {
			c.policy = parsed
		}
	}
}

// WithSink receives every successful submission.
func WithSink(sink Sink) Option {
	return func(c *Controller) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBannerTTL changes how long the success banner stays up.
func WithBannerTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithAfterFunc swaps the timer implementation, mostly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.after = fn
		}
	}
}

// WithOnChange registers a hook invoked with a fresh View after every state
// transition, including banner expiry. The hook runs outside the controller
// lock and may call back into the controller.
func WithOnChange(fn func(View)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithIDGenerator overrides how submission IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}
