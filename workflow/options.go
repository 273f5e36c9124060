package workflow

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/linkedapi/linkedapi-go/internal/config"
)

const defaultWorkflowsPath = "/workflows"

// PollOptions bounds the Result poll loop.
type PollOptions struct {
	PollInterval time.Duration `yaml:"poll_interval" json:"pollInterval" default:"5s" validate:"gt=0"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" default:"24h" validate:"gt=0"`
	// MaxTransportFailures is the number of consecutive http/network errors
	// tolerated while polling. The counter resets after a successful check.
	MaxTransportFailures int `yaml:"max_transport_failures" json:"maxTransportFailures" default:"15" validate:"gte=0"`
}

var defaultPollOptions = mustPollDefaults()

func mustPollDefaults() PollOptions {
	var opts PollOptions
	if err := config.ApplyDefaults(&opts); err != nil {
		panic(fmt.Sprintf("workflow: invalid poll option defaults: %v", err))
	}
	return opts
}

// DefaultPollOptions returns the poll options used when none are configured.
func DefaultPollOptions() PollOptions {
	return defaultPollOptions
}

// PollOption overrides a poll setting for a single Result call.
type PollOption func(*PollOptions)

func WithPollInterval(d time.Duration) PollOption {
	return func(o *PollOptions) { o.PollInterval = d }
}

func WithTimeout(d time.Duration) PollOption {
	return func(o *PollOptions) { o.Timeout = d }
}

func WithMaxTransportFailures(n int) PollOption {
	return func(o *PollOptions) { o.MaxTransportFailures = n }
}

func (o PollOptions) with(opts ...PollOption) PollOptions {
	out := o
	for _, opt := range opts {
		opt(&out)
	}
	return out.normalize()
}

func (o PollOptions) normalize() PollOptions {
	defaults := defaultPollOptions
	out := o
	if out.PollInterval <= 0 {
		out.PollInterval = defaults.PollInterval
	}
	if out.Timeout <= 0 {
		out.Timeout = defaults.Timeout
	}
	if out.MaxTransportFailures < 0 {
		out.MaxTransportFailures = 0
	}
	return out
}

// Option configures an Operation.
type Option func(*settings)

type settings struct {
	logger        *slog.Logger
	poll          PollOptions
	tracker       Tracker
	workflowsPath string
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPollOptions(p PollOptions) Option {
	return func(s *settings) { s.poll = p.normalize() }
}

// WithTracker records submitted workflows until they reach a terminal state.
func WithTracker(t Tracker) Option {
	return func(s *settings) { s.tracker = t }
}

func WithWorkflowsPath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.workflowsPath = path
		}
	}
}
