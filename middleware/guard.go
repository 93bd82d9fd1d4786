package middleware

import (
	"context"
	"net/http"
	"strings"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/jwt"
)

type authResultContextKey struct{}

type claimsContextKey struct{}

// SecretFunc resolves the sign secret for a request, e.g. per tenant.
type SecretFunc func(r *http.Request) (string, error)

// AuthResultFromContext returns the result stored by Guard or GuardFunc.
func AuthResultFromContext(ctx context.Context) (*goCred.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*goCred.AuthResult)
	return res, ok
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(jwt.Claims)
	return claims, ok
}

// Guard authenticates every request with a fixed sign secret.
func Guard(tk *goCred.Toolkit, signSecret string) func(http.Handler) http.Handler {
	return GuardFunc(tk, func(*http.Request) (string, error) { return signSecret, nil })
}

// GuardFunc authenticates every request with the secret returned by secretFor.
func GuardFunc(tk *goCred.Toolkit, secretFor SecretFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tk == nil || secretFor == nil {
				unauthorized(w)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			signSecret, err := secretFor(r)
			if err != nil {
				unauthorized(w)
				return
			}

			res, err := tk.Authenticate(r.Context(), token, signSecret)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, &res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireToken verifies the bearer token with the toolkit defaults without requiring a
// device id.
func RequireToken(tk *goCred.Toolkit, signSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tk == nil {
				unauthorized(w)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := tk.VerifyToken(token, signSecret)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
