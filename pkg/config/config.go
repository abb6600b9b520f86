// Package config loads the YAML policy file that selects between the two
// supported behaviours of the form (touch trigger and password rules) and
// tunes the ambient pieces around it (banner TTL, logging, output).
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/schema"
)

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output formats for submitted records.
const (
	OutputJSON   = "json"
	OutputPretty = "pretty"
)

// Duration decodes Go duration strings ("3s", "1500ms") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("config: duration: %w", err)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config is the on-disk policy file.
type Config struct {
	Touch      string   `yaml:"touch"`
	Password   string   `yaml:"password"`
	BannerTTL  Duration `yaml:"banner_ttl"`
	LogLevel   string   `yaml:"log_level"`
	Output     string   `yaml:"output"`
	BannerIcon string   `yaml:"banner_icon,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Touch:     string(form.TouchOnChange),
		Password:  string(schema.PasswordStrict),
		BannerTTL: Duration(form.DefaultBannerTTL),
		LogLevel:  "info",
		Output:    OutputJSON,
	}
}

// Parse decodes data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses path. An empty path yields Default.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerations and bounds.
func (c Config) Validate() error {
	var errs []error
	if _, err := form.ParseTouchPolicy(c.Touch); err != nil {
		errs = append(errs, err)
	}
	switch schema.PasswordPolicy(strings.ToLower(c.Password)) {
	case schema.PasswordStrict, schema.PasswordRelaxed:
	default:
		errs = append(errs, fmt.Errorf("unknown password policy %q", c.Password))
	}
	if c.BannerTTL <= 0 {
		errs = append(errs, fmt.Errorf("banner_ttl must be positive, got %s", time.Duration(c.BannerTTL)))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Output {
	case OutputJSON, OutputPretty:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Output))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// TouchPolicy resolves the configured touch trigger.
func (c Config) TouchPolicy() form.TouchPolicy {
	policy, err := form.ParseTouchPolicy(c.Touch)
	if err != nil {
		return form.TouchOnChange
	}
	return policy
}

// PasswordPolicy resolves the configured password rule chain.
func (c Config) PasswordPolicy() schema.PasswordPolicy {
	return schema.PasswordPolicy(strings.ToLower(c.Password))
}

// Schema builds the rule table described by the configuration.
func (c Config) Schema() *schema.Schema {
	return schema.New(schema.WithPasswordPolicy(c.PasswordPolicy()))
}

// FormOptions returns controller options derived from the configuration.
func (c Config) FormOptions() []form.Option {
	return []form.Option{
		form.WithTouchPolicy(c.TouchPolicy()),
		form.WithBannerTTL(time.Duration(c.BannerTTL)),
	}
}

// Logger builds a text slog logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(trimmed)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", raw)
	}
	return level, nil
}
