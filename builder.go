package goCred

import (
	"errors"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MrEthical07/goCred/internal/worker"
	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/secret"
)

// Builder assembles a Toolkit. A Builder is single use and not safe for concurrent use.
type Builder struct {
	config    Config
	logger    hclog.Logger
	auditSink AuditSink
	random    io.Reader
	now       func() time.Time

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithLogger overrides the logger derived from Config.Log.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the audit destination. It has no effect unless Config.Audit.Enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithRandomSource replaces crypto/rand.Reader, for deterministic tests only.
func (b *Builder) WithRandomSource(r io.Reader) *Builder {
	b.random = r
	return b
}

// WithClock replaces time.Now for token timestamps and audit events.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the bcrypt latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Toolkit. Call Toolkit.Close when done.
func (b *Builder) Build() (*Toolkit, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{Cost: cfg.Password.Cost})
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = newLogger(cfg.Log, nil)
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	tk := &Toolkit{
		config:     cfg,
		logger:     logger,
		now:        now,
		secrets:    secret.NewGenerator(b.random),
		hasher:     hasher,
		codec:      jwt.NewCodec(jwt.Config{Now: now}),
		pool:       worker.NewPool(cfg.Worker.Size),
		metrics:    NewMetrics(cfg.Metrics),
		signOpts:   cfg.signOptions(),
		verifyOpts: cfg.verifyOptions(),
	}
	tk.audit = newAuditDispatcher(cfg.Audit, b.auditSink, logger)

	logger.Debug("toolkit ready",
		"cost", cfg.Password.Cost,
		"algorithm", string(tk.signOpts.Algorithm),
		"workers", tk.pool.Size(),
		"audit", cfg.Audit.Enabled,
	)

	b.built = true

	return tk, nil
}
