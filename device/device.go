package device

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/goCred/fault"
)

// Platform is a push-notification delivery service.
type Platform string

const (
	// WNS is Windows Push Notification Services.
	WNS Platform = "WNS"
	// ADM is Amazon Device Messaging.
	ADM Platform = "ADM"
	// GCM is Google Cloud Messaging / Firebase Cloud Messaging.
	GCM Platform = "GCM"
	// APN is Apple Push Notification service.
	APN Platform = "APN"
)

// Platforms lists every known platform in classification order.
var Platforms = []Platform{WNS, ADM, GCM, APN}

// ParsePlatform returns the platform named by s, ignoring case.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fault.New(fault.InvalidInput, "device.ParsePlatform", fmt.Errorf("unknown platform %q", s))
}

const apnTokenLength = 64

// Candidate is a value that can be classified: either a [Raw] string or an already
// classified [Token]. The interface is sealed.
type Candidate interface {
	candidate()
}

// Raw is an unclassified token string.
type Raw string

func (Raw) candidate() {}

// Token is a classified, immutable push token. Its zero value is not valid; build one
// with [Create] or [Classify].
type Token struct {
	value    string
	platform Platform
}

func (Token) candidate() {}

// String returns the token string.
func (t Token) String() string { return t.value }

// Platform returns the platform cached at classification time.
func (t Token) Platform() Platform { return t.platform }

// MarshalText encodes the token as its raw string.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText classifies text and stores the result. Invalid tokens are rejected.
func (t *Token) UnmarshalText(text []byte) error {
	tok, err := Create(Raw(text))
	if err != nil {
		return err
	}
	*t = tok
	return nil
}

// GetType classifies c.
func GetType(c Candidate) (Platform, error) {
	const op = "device.GetType"
	switch v := c.(type) {
	case nil:
		return "", fault.New(fault.InvalidInput, op, nil)
	case Token:
		if v.platform == "" {
			return "", fault.New(fault.InvalidTokenFormat, op, nil)
		}
		return v.platform, nil
	case *Token:
		if v == nil {
			return "", fault.New(fault.InvalidInput, op, nil)
		}
		return GetType(*v)
	case Raw:
		if p, ok := classify(string(v)); ok {
			return p, nil
		}
		return "", fault.New(fault.InvalidTokenFormat, op, nil)
	default:
		return "", fault.New(fault.InvalidInput, op, fmt.Errorf("unsupported candidate %T", c))
	}
}

func classify(s string) (Platform, bool) {
	switch {
	case strings.HasPrefix(s, "http"):
		return WNS, true
	case containsFold(s, "amzn"), containsFold(s, "adm"):
		return ADM, true
	case len(s) > apnTokenLength:
		return GCM, true
	case len(s) == apnTokenLength:
		return APN, true
	default:
		return "", false
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// IsValid reports whether c classifies to a known platform.
func IsValid(c Candidate) bool {
	_, err := GetType(c)
	return err == nil
}

// Create returns the classified Token for c. Classifying an existing Token returns it
// unchanged.
func Create(c Candidate) (Token, error) {
	p, err := GetType(c)
	if err != nil {
		return Token{}, err
	}
	switch v := c.(type) {
	case Token:
		return v, nil
	case *Token:
		return *v, nil
	case Raw:
		return Token{value: string(v), platform: p}, nil
	}
	return Token{}, fault.New(fault.InvalidInput, "device.Create", nil)
}

// Classify is Create for a plain string.
func Classify(s string) (Token, error) {
	return Create(Raw(s))
}
