package validate

import (
	"regexp"

	"github.com/MrEthical07/goCred/fault"
)

// PasswordSpecials lists the characters that satisfy the special-character rule.
const PasswordSpecials = "#?!@$%^&*-"

var (
	// RE2 has no lookahead, so the policy
	//   ^(?=.*[A-Z])(?=.*[a-z])(?=.*\d)(?=.*[#?!@$%^&*-]).{8,72}$
	// is the conjunction of passwordLength and every passwordClasses entry.
	passwordLength  = regexp.MustCompile(`^[^\n\r\x{2028}\x{2029}]{8,72}$`)
	passwordClasses = []*regexp.Regexp{
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`[a-z]`),
		regexp.MustCompile(`[0-9]`),
		regexp.MustCompile(`[#?!@$%^&*-]`),
	}

	bcryptHashPattern = regexp.MustCompile(`^\$2[ayb]\$.{56}$`)
	jwtPattern        = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*$`)
)

type options struct {
	reject bool
}

// Option configures a single check.
type Option func(*options)

// WithReject selects reject mode (true, the default) or report mode (false).
func WithReject(reject bool) Option {
	return func(o *options) {
		o.reject = reject
	}
}

func resolve(opts []Option) options {
	o := options{reject: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func check(op, value string, match func(string) bool, opts []Option) (bool, error) {
	o := resolve(opts)
	if value == "" {
		if o.reject {
			return false, fault.New(fault.InvalidInput, op, nil)
		}
		return false, nil
	}
	if !match(value) {
		if o.reject {
			return false, fault.New(fault.FormatMismatch, op, nil)
		}
		return false, nil
	}
	return true, nil
}

// Password checks the password strength policy: 8 to 72 characters with at least one
// upper-case letter, one lower-case letter, one digit, and one of PasswordSpecials.
func Password(password string, opts ...Option) (bool, error) {
	return check("validate.Password", password, matchPassword, opts)
}

func matchPassword(s string) bool {
	if !passwordLength.MatchString(s) {
		return false
	}
	for _, class := range passwordClasses {
		if !class.MatchString(s) {
			return false
		}
	}
	return true
}

// BcryptHash checks that s has the bcrypt shape `$2a$`, `$2b$`, or `$2y$` followed by 56
// characters.
func BcryptHash(s string, opts ...Option) (bool, error) {
	return check("validate.BcryptHash", s, bcryptHashPattern.MatchString, opts)
}

// JWT checks that s is three base64url segments joined by periods. The last segment may
// be empty.
func JWT(s string, opts ...Option) (bool, error) {
	return check("validate.JWT", s, jwtPattern.MatchString, opts)
}
