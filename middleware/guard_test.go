package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/password"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testDeviceID = "9b2c4f8e-1d3a-4b5c-8e7f-0a1b2c3d4e5f"
)

func newToolkit(t *testing.T) *goCred.Toolkit {
	t.Helper()
	cfg := goCred.DefaultConfig()
	cfg.Password.Cost = password.MinCost
	tk, err := goCred.New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(tk.Close)
	return tk
}

func sign(t *testing.T, tk *goCred.Toolkit, payload map[string]any) string {
	t.Helper()
	tok, err := tk.SignToken(payload, testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGuardAcceptsValidToken(t *testing.T) {
	tk := newToolkit(t)
	tok := sign(t, tk, map[string]any{"deviceId": testDeviceID})

	var gotDevice string
	h := Guard(tk, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := AuthResultFromContext(r.Context())
		if !ok {
			t.Fatal("expected auth result in context")
		}
		gotDevice = res.DeviceID
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := serve(h, "Bearer "+tok)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotDevice != testDeviceID {
		t.Fatalf("expected device %q, got %q", testDeviceID, gotDevice)
	}
}

func TestGuardRejects(t *testing.T) {
	tk := newToolkit(t)
	withDevice := sign(t, tk, map[string]any{"deviceId": testDeviceID})
	withoutDevice := sign(t, tk, map[string]any{"uid": "u1"})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	tests := []struct {
		name   string
		header string
		guard  func(http.Handler) http.Handler
	}{
		{"missing header", "", Guard(tk, testSecret)},
		{"wrong scheme", "Basic " + withDevice, Guard(tk, testSecret)},
		{"empty bearer", "Bearer ", Guard(tk, testSecret)},
		{"garbage token", "Bearer not.a.token", Guard(tk, testSecret)},
		{"missing device id", "Bearer " + withoutDevice, Guard(tk, testSecret)},
		{"wrong secret", "Bearer " + withDevice, Guard(tk, "fedcba9876543210fedcba9876543210")},
		{"malformed secret", "Bearer " + withDevice, Guard(tk, "short")},
		{"nil toolkit", "Bearer " + withDevice, Guard(nil, testSecret)},
		{"secret lookup fails", "Bearer " + withDevice, GuardFunc(tk, func(*http.Request) (string, error) {
			return "", errors.New("tenant unknown")
		})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(tc.guard(next), tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatal("expected bearer challenge header")
			}
		})
	}
}

func TestGuardFuncResolvesSecretPerRequest(t *testing.T) {
	tk := newToolkit(t)
	tok := sign(t, tk, map[string]any{"deviceId": testDeviceID})

	h := GuardFunc(tk, func(r *http.Request) (string, error) {
		if r.URL.Path != "/protected" {
			return "", errors.New("unexpected path")
		}
		return testSecret, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if rec := serve(h, "Bearer "+tok); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireTokenInjectsClaims(t *testing.T) {
	tk := newToolkit(t)
	tok := sign(t, tk, map[string]any{"uid": "u1"})

	h := RequireToken(tk, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims["uid"] != "u1" {
			t.Fatalf("unexpected claims: %v", claims)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if rec := serve(h, "Bearer "+tok); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(h, "Bearer "+tok+"x"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := bearerToken("Bearer abc"); !ok || tok != "abc" {
		t.Fatalf("got %q %v", tok, ok)
	}
	for _, v := range []string{"", "Bearer", "Bearer ", "bearer abc", "Token abc"} {
		if _, ok := bearerToken(v); ok {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}
