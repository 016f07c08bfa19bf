package kbd

import "time"

// Default activation thresholds.
const (
	DefaultHoldDelay      = 750 * time.Millisecond
	DefaultDoubleTapRetap = 100 * time.Millisecond
	DefaultDoubleTapHold  = 100 * time.Millisecond
	DefaultDTHoldRetap    = 100 * time.Millisecond
	DefaultDTHoldHold     = 100 * time.Millisecond
)

// Settings is the immutable set of activation thresholds an Engine is
// constructed with. The zero value is not valid; build one with
// NewSettings or rely on the defaults applied by engineOptions.
type Settings struct {
	// HoldDelay is the threshold for lazy and eager Hold machines to commit
	// to "hold".
	HoldDelay time.Duration
	// DoubleTapRetapDelay is the Double-Tap retap window.
	DoubleTapRetapDelay time.Duration
	// DoubleTapHoldDelay is the Double-Tap first-tap give-up window.
	DoubleTapHoldDelay time.Duration
	// DoubleTapHoldRetapDelay is the Double-Tap-Hold retap window.
	DoubleTapHoldRetapDelay time.Duration
	// DoubleTapHoldHoldDelay is the Double-Tap-Hold hold threshold.
	DoubleTapHoldHoldDelay time.Duration
}

// NewSettings returns Settings populated with the package's defaults.
func NewSettings() Settings {
	return Settings{
		HoldDelay:               DefaultHoldDelay,
		DoubleTapRetapDelay:     DefaultDoubleTapRetap,
		DoubleTapHoldDelay:      DefaultDoubleTapHold,
		DoubleTapHoldRetapDelay: DefaultDTHoldRetap,
		DoubleTapHoldHoldDelay:  DefaultDTHoldHold,
	}
}

// engineOptions holds configuration accumulated from EngineOption values
// before an Engine is constructed.
type engineOptions struct {
	settings Settings
	clock    Clock
	logger   Logger
	metrics  *Metrics
}

// EngineOption configures an Engine at construction time.
type EngineOption interface {
	applyEngine(*engineOptions)
}

type engineOptionFunc func(*engineOptions)

func (f engineOptionFunc) applyEngine(o *engineOptions) {
	f(o)
}

// WithSettings overrides the default activation thresholds.
func WithSettings(s Settings) EngineOption {
	return engineOptionFunc(func(o *engineOptions) {
		o.settings = s
	})
}

// WithClock overrides the wall-clock source used to evaluate timeout
// predicates. Tests inject a fake clock to make threshold-dependent
// transitions deterministic.
func WithClock(c Clock) EngineOption {
	return engineOptionFunc(func(o *engineOptions) {
		if c != nil {
			o.clock = c
		}
	})
}

// WithLogger overrides the logging collaborator used to report recoverable
// conditions. The default discards everything.
func WithLogger(l Logger) EngineOption {
	return engineOptionFunc(func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithMetrics attaches a Metrics collaborator the engine reports action and
// machine-lifecycle counts to. The default is no metrics collection.
func WithMetrics(m *Metrics) EngineOption {
	return engineOptionFunc(func(o *engineOptions) {
		o.metrics = m
	})
}

// resolveEngineOptions applies opts over the default configuration.
func resolveEngineOptions(opts []EngineOption) *engineOptions {
	cfg := &engineOptions{
		settings: NewSettings(),
		clock:    systemClock,
		logger:   NewNoopLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyEngine(cfg)
	}
	return cfg
}
