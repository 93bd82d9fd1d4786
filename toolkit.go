package goCred

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MrEthical07/goCred/device"
	"github.com/MrEthical07/goCred/fault"
	"github.com/MrEthical07/goCred/internal/worker"
	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/secret"
	"github.com/MrEthical07/goCred/validate"
)

// Toolkit is the configured facade over the credential primitives. All methods are safe for
// concurrent use.
type Toolkit struct {
	config Config
	logger hclog.Logger
	now    func() time.Time

	secrets secret.Generator
	hasher  *password.Hasher
	codec   *jwt.Codec
	pool    *worker.Pool
	metrics *Metrics
	audit   *auditDispatcher

	signOpts   jwt.SignOptions
	verifyOpts jwt.VerifyOptions
}

// Result carries the outcome of an asynchronous toolkit call.
type Result[T any] = worker.Result[T]

// CompareResult is returned by a successful password comparison.
type CompareResult struct {
	// Rehash holds a new hash at the configured cost when PasswordConfig.UpgradeOnCompare is
	// set and the stored hash used a lower cost. Callers should persist it.
	Rehash string
}

// AuthResult is the outcome of Authenticate.
type AuthResult struct {
	Claims   jwt.Claims
	DeviceID string
}

// Close waits for in-flight jobs and flushes pending audit events.
func (t *Toolkit) Close() {
	if t == nil {
		return
	}
	t.pool.Close()
	t.audit.Close()
}

// Logger returns the toolkit logger.
func (t *Toolkit) Logger() hclog.Logger {
	return t.logger
}

// AuditDropped returns the number of audit events discarded because the buffer was full.
func (t *Toolkit) AuditDropped() uint64 {
	if t == nil || t.audit == nil {
		return 0
	}
	return t.audit.Dropped()
}

// MetricsSnapshot copies the current counters.
func (t *Toolkit) MetricsSnapshot() MetricsSnapshot {
	if t == nil || t.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return t.metrics.Snapshot()
}

/*
====================================
SECRETS
====================================
*/

// RandomBytes draws n bytes from the CSPRNG.
func (t *Toolkit) RandomBytes(n int) ([]byte, error) {
	b, err := t.secrets.RandomBytes(n)
	if err != nil {
		t.entropyFailure("random_bytes", err)
		return nil, err
	}
	t.metrics.Inc(MetricSecretGenerated)
	return b, nil
}

// GenerateSignSecret returns a fresh 32-character hexadecimal sign secret.
func (t *Toolkit) GenerateSignSecret() (string, error) {
	s, err := t.secrets.GenerateSignSecret()
	if err != nil {
		t.entropyFailure("generate_sign_secret", err)
		return "", err
	}
	t.metrics.Inc(MetricSecretGenerated)
	return s, nil
}

// IsValidSignSecret returns nil when s is a well-formed sign secret.
func (t *Toolkit) IsValidSignSecret(s string) error {
	return secret.IsValidSignSecret(s)
}

func (t *Toolkit) entropyFailure(op string, err error) {
	if !fault.IsFatal(err) {
		return
	}
	t.metrics.Inc(MetricEntropyFailure)
	t.logger.Error("entropy source failed", "op", op, "error", err)
}

/*
====================================
PASSWORDS
====================================
*/

// HashPassword hashes plaintext on the worker pool. If ctx ends first, ctx.Err() is returned
// and the hash is computed and discarded.
func (t *Toolkit) HashPassword(ctx context.Context, plaintext string) (string, error) {
	return worker.Do(ctx, t.pool, func() (string, error) { return t.hash(plaintext) })
}

// HashPasswordAsync schedules HashPassword and returns a channel receiving one Result.
func (t *Toolkit) HashPasswordAsync(ctx context.Context, plaintext string) <-chan Result[string] {
	return worker.Submit(ctx, t.pool, func() (string, error) { return t.hash(plaintext) })
}

// ComparePassword checks plaintext against a stored bcrypt hash on the worker pool.
func (t *Toolkit) ComparePassword(ctx context.Context, plaintext, hash string) (CompareResult, error) {
	return worker.Do(ctx, t.pool, func() (CompareResult, error) { return t.compare(ctx, plaintext, hash) })
}

// ComparePasswordAsync schedules ComparePassword and returns a channel receiving one Result.
func (t *Toolkit) ComparePasswordAsync(ctx context.Context, plaintext, hash string) <-chan Result[CompareResult] {
	return worker.Submit(ctx, t.pool, func() (CompareResult, error) { return t.compare(ctx, plaintext, hash) })
}

func (t *Toolkit) hash(plaintext string) (string, error) {
	start := time.Now()
	h, err := t.hasher.Hash(plaintext)
	t.metrics.Observe(MetricHashLatency, time.Since(start))
	if err != nil {
		t.metrics.Inc(MetricHashFailure)
		t.entropyFailure("hash_password", err)
		t.logger.Debug("hash rejected", "kind", fault.KindOf(err).String())
		return "", err
	}
	t.metrics.Inc(MetricHashSuccess)
	return h, nil
}

func (t *Toolkit) compare(ctx context.Context, plaintext, hash string) (CompareResult, error) {
	start := time.Now()
	err := t.hasher.Compare(plaintext, hash)
	t.metrics.Observe(MetricHashLatency, time.Since(start))

	t.emitAudit(ctx, AuditEvent{
		EventType: auditEventPasswordCompare,
		Success:   err == nil,
		Error:     auditErrorCode(err),
	})

	if err != nil {
		t.metrics.Inc(MetricCompareMismatch)
		t.logger.Debug("password compare failed", "kind", fault.KindOf(err).String())
		return CompareResult{}, err
	}
	t.metrics.Inc(MetricCompareMatch)

	var res CompareResult
	if t.config.Password.UpgradeOnCompare {
		upgrade, err := t.hasher.NeedsUpgrade(hash)
		if err == nil && upgrade {
			rehash, err := t.hash(plaintext)
			if err != nil {
				t.logger.Warn("password rehash failed", "kind", fault.KindOf(err).String())
			} else {
				res.Rehash = rehash
			}
		}
	}
	return res, nil
}

/*
====================================
TOKENS
====================================
*/

// DecodeToken splits and decodes token without verifying it. Never trust the result.
func (t *Toolkit) DecodeToken(token string, complete bool) (*jwt.Decoded, error) {
	d, err := jwt.Decode(token, complete)
	if err != nil {
		t.metrics.Inc(MetricDecodeFailure)
		t.logger.Debug("decode failed", "kind", fault.KindOf(err).String())
		return nil, err
	}
	return d, nil
}

// SignToken signs payload. With no opts the configured token defaults apply; otherwise the
// first opts value is used as given.
func (t *Toolkit) SignToken(payload map[string]any, signSecret string, opts ...jwt.SignOptions) (string, error) {
	return t.sign(context.Background(), payload, signSecret, opts)
}

// SignOptions returns the configured sign defaults, ready to adjust and pass to SignToken.
func (t *Toolkit) SignOptions() jwt.SignOptions {
	o := t.signOpts
	o.Audience = slices.Clone(o.Audience)
	return o
}

// VerifyOptions returns the configured verify defaults.
func (t *Toolkit) VerifyOptions() jwt.VerifyOptions {
	o := t.verifyOpts
	o.Algorithms = slices.Clone(o.Algorithms)
	return o
}

// SignTokenAsync schedules SignToken on the worker pool.
func (t *Toolkit) SignTokenAsync(ctx context.Context, payload map[string]any, signSecret string, opts ...jwt.SignOptions) <-chan Result[string] {
	return worker.Submit(ctx, t.pool, func() (string, error) { return t.sign(ctx, payload, signSecret, opts) })
}

// VerifyToken checks the signature and claims of token. With no opts the configured token
// defaults apply; otherwise the first opts value is used as given.
func (t *Toolkit) VerifyToken(token, signSecret string, opts ...jwt.VerifyOptions) (jwt.Claims, error) {
	return t.verify(context.Background(), token, signSecret, opts)
}

// VerifyTokenAsync schedules VerifyToken on the worker pool.
func (t *Toolkit) VerifyTokenAsync(ctx context.Context, token, signSecret string, opts ...jwt.VerifyOptions) <-chan Result[jwt.Claims] {
	return worker.Submit(ctx, t.pool, func() (jwt.Claims, error) { return t.verify(ctx, token, signSecret, opts) })
}

// Authenticate verifies token with the configured defaults and requires a canonical UUID
// deviceId claim.
func (t *Toolkit) Authenticate(ctx context.Context, token, signSecret string) (AuthResult, error) {
	claims, err := t.verify(ctx, token, signSecret, nil)
	if err != nil {
		return AuthResult{}, err
	}
	id, err := validate.DeviceIDFromClaims(claims)
	if err != nil {
		t.metrics.Inc(MetricDeviceIDRejected)
		t.logger.Debug("device id rejected", "kind", fault.KindOf(err).String())
		return AuthResult{}, err
	}
	return AuthResult{Claims: claims, DeviceID: id}, nil
}

func (t *Toolkit) sign(ctx context.Context, payload map[string]any, signSecret string, opts []jwt.SignOptions) (string, error) {
	o := t.signOpts
	if len(opts) > 0 {
		o = opts[0]
	}

	token, err := t.codec.Sign(payload, signSecret, o)
	if err != nil {
		t.metrics.Inc(MetricSignFailure)
		if errors.Is(err, fault.ErrInvalidSecretFormat) {
			t.metrics.Inc(MetricVerifySecretRejected)
		}
		t.logger.Debug("sign rejected", "kind", fault.KindOf(err).String())
		return "", err
	}

	t.metrics.Inc(MetricSignSuccess)
	t.emitAudit(ctx, AuditEvent{
		EventType: auditEventTokenSigned,
		Subject:   stringClaim(payload, "sub"),
		Success:   true,
		Metadata:  map[string]string{"algorithm": string(algorithmOrDefault(o.Algorithm))},
	})
	return token, nil
}

func (t *Toolkit) verify(ctx context.Context, token, signSecret string, opts []jwt.VerifyOptions) (jwt.Claims, error) {
	o := t.verifyOpts
	if len(opts) > 0 {
		o = opts[0]
	}

	claims, err := t.codec.Verify(token, signSecret, o)
	if err != nil {
		t.metrics.Inc(MetricVerifyFailure)
		switch {
		case errors.Is(err, fault.ErrTokenExpired):
			t.metrics.Inc(MetricVerifyExpired)
		case errors.Is(err, fault.ErrInvalidSecretFormat):
			t.metrics.Inc(MetricVerifySecretRejected)
		}
		t.logger.Debug("token rejected", "kind", fault.KindOf(err).String())
		t.emitAudit(ctx, AuditEvent{
			EventType: auditEventTokenRejected,
			Error:     auditErrorCode(err),
		})
		return nil, err
	}

	t.metrics.Inc(MetricVerifySuccess)
	t.emitAudit(ctx, AuditEvent{
		EventType: auditEventTokenVerified,
		Subject:   stringClaim(claims, "sub"),
		DeviceID:  stringClaim(claims, validate.DeviceIDClaim),
		Success:   true,
	})
	return claims, nil
}

func algorithmOrDefault(a jwt.Algorithm) jwt.Algorithm {
	if a == "" {
		return jwt.HS256
	}
	return a
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

/*
====================================
DEVICES
====================================
*/

// DeviceToken classifies c and returns the immutable classified token.
func (t *Toolkit) DeviceToken(ctx context.Context, c device.Candidate) (device.Token, error) {
	tok, err := device.Create(c)
	if err != nil {
		t.metrics.Inc(MetricDeviceRejected)
		t.logger.Debug("device token rejected", "kind", fault.KindOf(err).String())
		t.emitAudit(ctx, AuditEvent{
			EventType: auditEventDeviceClassified,
			Error:     auditErrorCode(err),
		})
		return device.Token{}, err
	}

	t.metrics.Inc(MetricDeviceClassified)
	t.emitAudit(ctx, AuditEvent{
		EventType: auditEventDeviceClassified,
		Success:   true,
		Metadata:  map[string]string{"platform": string(tok.Platform())},
	})
	return tok, nil
}

func (t *Toolkit) emitAudit(ctx context.Context, event AuditEvent) {
	if t.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = t.now().UTC()
	}
	t.audit.Emit(ctx, event)
}
