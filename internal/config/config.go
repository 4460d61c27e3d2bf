package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chazu/compass/pkg/locus"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name.
const Prefix = "COMPASS"

type Config struct {
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"text"`
	LocusMaxSamples  int           `envconfig:"LOCUS_MAX_SAMPLES" default:"500"`
	LocusForcedDepth int           `envconfig:"LOCUS_FORCED_DEPTH" default:"20"`
	PixelWidth       float64       `envconfig:"PIXEL_WIDTH" default:"0.023333333333333334"`
	HitTolerance     float64       `envconfig:"HIT_TOLERANCE" default:"1e-3"`
	EvalTimeout      time.Duration `envconfig:"EVAL_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ranges envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.LocusMaxSamples > locus.MaxSamples {
		errs = append(errs, fmt.Errorf("LOCUS_MAX_SAMPLES %d exceeds %d", c.LocusMaxSamples, locus.MaxSamples))
	}
	if c.LocusMaxSamples < 2 {
		errs = append(errs, fmt.Errorf("LOCUS_MAX_SAMPLES %d is below 2", c.LocusMaxSamples))
	}
	if c.LocusForcedDepth < 0 {
		errs = append(errs, fmt.Errorf("LOCUS_FORCED_DEPTH %d is negative", c.LocusForcedDepth))
	}
	if c.PixelWidth <= 0 {
		errs = append(errs, fmt.Errorf("PIXEL_WIDTH %g must be positive", c.PixelWidth))
	}
	if c.HitTolerance < 0 {
		errs = append(errs, fmt.Errorf("HIT_TOLERANCE %g is negative", c.HitTolerance))
	}
	if c.EvalTimeout <= 0 {
		errs = append(errs, fmt.Errorf("EVAL_TIMEOUT %s must be positive", c.EvalTimeout))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Logger builds the root logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Sampler returns a locus sampler with the configured budget.
func (c *Config) Sampler(log *slog.Logger) *locus.Sampler {
	s := locus.NewSampler()
	s.MaxSamples = c.LocusMaxSamples
	s.ForcedDepth = c.LocusForcedDepth
	s.Logger = log
	return s
}

// Viewport returns the default viewport at the configured pixel width.
func (c *Config) Viewport() locus.Viewport {
	v := locus.DefaultViewport()
	v.PixelWidth = c.PixelWidth
	return v
}
