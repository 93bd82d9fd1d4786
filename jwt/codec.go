package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goCred/fault"
	"github.com/MrEthical07/goCred/secret"
)

// Algorithm names an HMAC signing algorithm.
type Algorithm string

const (
	// HS256 is HMAC-SHA256, the default.
	HS256 Algorithm = "HS256"
	// HS384 is HMAC-SHA384.
	HS384 Algorithm = "HS384"
	// HS512 is HMAC-SHA512.
	HS512 Algorithm = "HS512"
)

// ParseAlgorithm returns the algorithm named by s, ignoring case. Empty selects HS256.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(HS256):
		return HS256, nil
	case string(HS384):
		return HS384, nil
	case string(HS512):
		return HS512, nil
	default:
		return "", fmt.Errorf("unsupported signing algorithm %q", s)
	}
}

func (a Algorithm) method() (jwt.SigningMethod, error) {
	switch a {
	case "", HS256:
		return jwt.SigningMethodHS256, nil
	case HS384:
		return jwt.SigningMethodHS384, nil
	case HS512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", string(a))
	}
}

var errAlgorithmNotAllowed = errors.New("signing algorithm not allowed")

// Claims is a verified or decoded claim set.
type Claims = jwt.MapClaims

// Decoded is the result of unauthenticated decoding.
type Decoded struct {
	Claims Claims
	// Header and Signature are only set when decoding with complete=true.
	Header    map[string]any
	Signature string
}

// Config defines a public type used by goCred APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
type Config struct {
	// Now is the clock used for iat/exp/nbf. Nil selects time.Now.
	Now func() time.Time
}

// Codec signs and verifies tokens.
//
// Codec holds no mutable state and can be used concurrently.
type Codec struct {
	now func() time.Time
}

// NewCodec returns a Codec.
func NewCodec(cfg Config) *Codec {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{now: now}
}

// SignOptions controls the claims and header added by Sign.
type SignOptions struct {
	Algorithm Algorithm
	// ExpiresIn sets exp to now+ExpiresIn when positive.
	ExpiresIn time.Duration
	// NotBefore sets nbf to now+NotBefore when non-zero.
	NotBefore time.Duration
	Issuer    string
	Audience  []string
	Subject   string
	JWTID     string
	KeyID     string
	// NoTimestamp suppresses the iat claim.
	NoTimestamp bool
	// Header holds extra header fields. alg and typ cannot be overridden.
	Header map[string]any
}

// VerifyOptions controls the constraints Verify enforces.
type VerifyOptions struct {
	// Algorithms lists the accepted algorithms. Empty accepts HS256 only.
	Algorithms []Algorithm
	// Leeway is the clock tolerance applied to exp, nbf, and iat.
	Leeway   time.Duration
	Issuer   string
	Audience string
	Subject  string
	// RequireExpiry rejects tokens without exp.
	RequireExpiry bool
	// RequireIssuedAt rejects tokens without iat.
	RequireIssuedAt bool
	// MaxAge rejects tokens whose iat is older than MaxAge (plus Leeway) when positive.
	MaxAge time.Duration
	// MaxFutureIAT rejects tokens whose iat is further than this in the future when positive.
	MaxFutureIAT time.Duration
	// UnwrapPayload accepts a JSON envelope {"payload": "<token>"} and verifies the inner
	// token. Off by default.
	UnwrapPayload bool
}

// Sign encodes payload plus the claims implied by opts and signs it with signSecret.
// payload is not modified.
func (c *Codec) Sign(payload map[string]any, signSecret string, opts SignOptions) (string, error) {
	const op = "jwt.Sign"
	if payload == nil {
		return "", fault.New(fault.InvalidInput, op, errors.New("payload is required"))
	}
	if err := secret.IsValidSignSecret(signSecret); err != nil {
		return "", err
	}
	method, err := opts.Algorithm.method()
	if err != nil {
		return "", fault.New(fault.InvalidInput, op, err)
	}

	claims := make(jwt.MapClaims, len(payload)+6)
	for k, v := range payload {
		claims[k] = v
	}

	now := c.now()
	set := func(name string, value any) error {
		if _, exists := payload[name]; exists {
			return fault.New(fault.InvalidInput, op, fmt.Errorf("payload already has a %q claim", name))
		}
		claims[name] = value
		return nil
	}

	if !opts.NoTimestamp {
		if _, exists := payload["iat"]; !exists {
			claims["iat"] = jwt.NewNumericDate(now)
		}
	}
	if opts.ExpiresIn > 0 {
		if err := set("exp", jwt.NewNumericDate(now.Add(opts.ExpiresIn))); err != nil {
			return "", err
		}
	}
	if opts.NotBefore != 0 {
		if err := set("nbf", jwt.NewNumericDate(now.Add(opts.NotBefore))); err != nil {
			return "", err
		}
	}
	if opts.Issuer != "" {
		if err := set("iss", opts.Issuer); err != nil {
			return "", err
		}
	}
	if len(opts.Audience) > 0 {
		if err := set("aud", jwt.ClaimStrings(opts.Audience)); err != nil {
			return "", err
		}
	}
	if opts.Subject != "" {
		if err := set("sub", opts.Subject); err != nil {
			return "", err
		}
	}
	if opts.JWTID != "" {
		if err := set("jti", opts.JWTID); err != nil {
			return "", err
		}
	}

	token := jwt.NewWithClaims(method, claims)
	for k, v := range opts.Header {
		if k == "alg" || k == "typ" {
			continue
		}
		token.Header[k] = v
	}
	if opts.KeyID != "" {
		token.Header["kid"] = opts.KeyID
	}

	signed, err := token.SignedString([]byte(signSecret))
	if err != nil {
		// Only unencodable payload values reach here.
		return "", fault.New(fault.InvalidInput, op, err)
	}
	return signed, nil
}

// Verify checks token's signature against signSecret and the constraints in opts, and
// returns the verified claim set.
func (c *Codec) Verify(token, signSecret string, opts VerifyOptions) (Claims, error) {
	const op = "jwt.Verify"
	if token == "" {
		return nil, fault.New(fault.InvalidInput, op, errors.New("token is required"))
	}
	if err := secret.IsValidSignSecret(signSecret); err != nil {
		return nil, err
	}
	if opts.UnwrapPayload {
		inner, err := unwrapPayload(token)
		if err != nil {
			return nil, err
		}
		token = inner
	}

	algs := opts.Algorithms
	if len(algs) == 0 {
		algs = []Algorithm{HS256}
	}
	valid := make([]string, 0, len(algs))
	for _, a := range algs {
		m, err := a.method()
		if err != nil {
			return nil, fault.New(fault.InvalidInput, op, err)
		}
		valid = append(valid, m.Alg())
	}

	// The algorithm allow-list is enforced in the keyfunc rather than with
	// jwt.WithValidMethods, which reports a disallowed alg as a bad signature.
	parserOpts := []jwt.ParserOption{
		jwt.WithTimeFunc(c.now),
	}
	if opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(opts.Leeway))
	}
	if opts.RequireIssuedAt || opts.MaxAge > 0 {
		parserOpts = append(parserOpts, jwt.WithIssuedAt())
	}
	if opts.RequireExpiry {
		parserOpts = append(parserOpts, jwt.WithExpirationRequired())
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	if opts.Subject != "" {
		parserOpts = append(parserOpts, jwt.WithSubject(opts.Subject))
	}

	parser := jwt.NewParser(parserOpts...)
	parsed, err := parser.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %s", errAlgorithmNotAllowed, t.Method.Alg())
		}
		for _, alg := range valid {
			if t.Method.Alg() == alg {
				return []byte(signSecret), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", errAlgorithmNotAllowed, t.Method.Alg())
	})
	if err != nil {
		return nil, classify(op, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fault.New(fault.ClaimConstraintViolation, op, jwt.ErrTokenInvalidClaims)
	}
	if err := c.checkIssuedAt(claims, opts); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Codec) checkIssuedAt(claims jwt.MapClaims, opts VerifyOptions) error {
	const op = "jwt.Verify"
	if opts.MaxAge <= 0 && opts.MaxFutureIAT <= 0 {
		return nil
	}
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return fault.New(fault.ClaimConstraintViolation, op, err)
	}
	if iat == nil {
		if opts.MaxAge > 0 {
			return fault.New(fault.ClaimConstraintViolation, op, errors.New("iat required for maxAge"))
		}
		return nil
	}
	now := c.now()
	if opts.MaxFutureIAT > 0 && iat.Time.After(now.Add(opts.MaxFutureIAT)) {
		return fault.New(fault.ClaimConstraintViolation, op, errors.New("token iat too far in the future"))
	}
	if opts.MaxAge > 0 && now.After(iat.Time.Add(opts.MaxAge+opts.Leeway)) {
		return fault.New(fault.TokenExpired, op, errors.New("maxAge exceeded"))
	}
	return nil
}

// Decode splits and decodes token without verifying its signature. The header and raw
// signature segment are included only when complete is true.
func Decode(token string, complete bool) (*Decoded, error) {
	const op = "jwt.Decode"
	if token == "" {
		return nil, fault.New(fault.InvalidInput, op, errors.New("token is required"))
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	parsed, parts, err := parser.ParseUnverified(token, claims)
	// An unknown or missing alg only matters for verification.
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return nil, fault.New(fault.MalformedToken, op, err)
	}
	if parsed.Header == nil {
		return nil, fault.New(fault.MalformedToken, op, errors.New("header is not a JSON object"))
	}
	if _, err := parser.DecodeSegment(parts[2]); err != nil {
		return nil, fault.New(fault.MalformedToken, op, err)
	}

	out := &Decoded{Claims: claims}
	if complete {
		out.Header = parsed.Header
		out.Signature = parts[2]
	}
	return out, nil
}

func unwrapPayload(input string) (string, error) {
	const op = "jwt.Verify"
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") {
		return input, nil
	}
	var envelope struct {
		Payload *string `json:"payload"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return "", fault.New(fault.MalformedToken, op, err)
	}
	if envelope.Payload == nil || *envelope.Payload == "" {
		return "", fault.New(fault.MalformedToken, op, errors.New("envelope has no payload token"))
	}
	return *envelope.Payload, nil
}

// classify maps golang-jwt validation errors to fault kinds.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fault.New(fault.MalformedToken, op, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fault.New(fault.SignatureInvalid, op, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fault.New(fault.TokenExpired, op, err)
	default:
		// Wrong alg, iss, aud, sub, nbf, iat, and missing required claims.
		return fault.New(fault.ClaimConstraintViolation, op, err)
	}
}
