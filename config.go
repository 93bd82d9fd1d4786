package goCred

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/MrEthical07/goCred/internal/confloader"
	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
)

// Config is the complete toolkit configuration. The zero value is not valid; start from
// [DefaultConfig] or [LoadConfig].
type Config struct {
	Password PasswordConfig `koanf:"password"`
	Token    TokenConfig    `koanf:"token"`
	Worker   WorkerConfig   `koanf:"worker"`
	Audit    AuditConfig    `koanf:"audit"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Log      LogConfig      `koanf:"log"`
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig controls bcrypt hashing.
type PasswordConfig struct {
	// Cost is the bcrypt work factor, between password.MinCost and password.MaxCost.
	Cost int `koanf:"cost"`
	// UpgradeOnCompare re-hashes a matching password whose stored cost is below Cost and
	// returns the new hash from ComparePassword.
	UpgradeOnCompare bool `koanf:"upgrade_on_compare"`
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig holds the defaults applied when SignToken or VerifyToken receive no options.
type TokenConfig struct {
	Algorithm     string        `koanf:"algorithm"`
	ExpiresIn     time.Duration `koanf:"expires_in"`
	Issuer        string        `koanf:"issuer"`
	Audience      string        `koanf:"audience"`
	Leeway        time.Duration `koanf:"leeway"`
	MaxFutureIAT  time.Duration `koanf:"max_future_iat"`
	RequireExpiry bool          `koanf:"require_expiry"`
	UnwrapPayload bool          `koanf:"unwrap_payload"`
}

/*
====================================
WORKER / AUDIT / METRICS / LOG
====================================
*/

// WorkerConfig sizes the pool that runs bcrypt. Size <= 0 selects GOMAXPROCS.
type WorkerConfig struct {
	Size int `koanf:"size"`
}

// AuditConfig controls asynchronous audit dispatch.
type AuditConfig struct {
	Enabled    bool `koanf:"enabled"`
	BufferSize int  `koanf:"buffer_size"`
	// DropIfFull drops events instead of blocking the caller when the buffer is full.
	DropIfFull bool `koanf:"drop_if_full"`
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool `koanf:"enabled"`
	EnableLatencyHistograms bool `koanf:"enable_latency_histograms"`
}

// LogConfig selects the default logger. An empty Level disables logging unless a logger is
// supplied through Builder.WithLogger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Cost: password.DefaultCost,
		},
		Token: TokenConfig{
			Algorithm:    string(jwt.HS256),
			ExpiresIn:    time.Hour,
			Leeway:       0,
			MaxFutureIAT: time.Minute,
		},
		Audit: AuditConfig{
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Format: "text",
		},
	}
}

// LoadConfig layers the YAML file at path (optional, "" skips it) and GOCRED_ environment
// variables over DefaultConfig, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Password.Cost < password.MinCost || c.Password.Cost > password.MaxCost {
		result = multierror.Append(result, fmt.Errorf("password cost must be in [%d, %d]", password.MinCost, password.MaxCost))
	}

	if _, err := jwt.ParseAlgorithm(c.Token.Algorithm); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Token.ExpiresIn < 0 {
		result = multierror.Append(result, errors.New("token expires_in must be >= 0"))
	}
	if c.Token.Leeway < 0 {
		result = multierror.Append(result, errors.New("token leeway must be >= 0"))
	}
	if c.Token.MaxFutureIAT < 0 {
		result = multierror.Append(result, errors.New("token max_future_iat must be >= 0"))
	}
	if c.Token.RequireExpiry && c.Token.ExpiresIn == 0 {
		result = multierror.Append(result, errors.New("token require_expiry needs expires_in > 0 or tokens signed here fail verification"))
	}

	if c.Worker.Size < 0 {
		result = multierror.Append(result, errors.New("worker size must be >= 0"))
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		result = multierror.Append(result, errors.New("audit buffer_size must be > 0 when audit is enabled"))
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		result = multierror.Append(result, errors.New("metrics latency histograms require metrics to be enabled"))
	}

	if c.Log.Level != "" && hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return result.ErrorOrNil()
}

// signOptions derives the SignToken defaults. Validate must have passed.
func (c Config) signOptions() jwt.SignOptions {
	alg, _ := jwt.ParseAlgorithm(c.Token.Algorithm)
	opts := jwt.SignOptions{
		Algorithm: alg,
		ExpiresIn: c.Token.ExpiresIn,
		Issuer:    c.Token.Issuer,
	}
	if c.Token.Audience != "" {
		opts.Audience = []string{c.Token.Audience}
	}
	return opts
}

// verifyOptions derives the VerifyToken defaults. Validate must have passed.
func (c Config) verifyOptions() jwt.VerifyOptions {
	alg, _ := jwt.ParseAlgorithm(c.Token.Algorithm)
	return jwt.VerifyOptions{
		Algorithms:    []jwt.Algorithm{alg},
		Leeway:        c.Token.Leeway,
		Issuer:        c.Token.Issuer,
		Audience:      c.Token.Audience,
		RequireExpiry: c.Token.RequireExpiry,
		MaxFutureIAT:  c.Token.MaxFutureIAT,
		UnwrapPayload: c.Token.UnwrapPayload,
	}
}
