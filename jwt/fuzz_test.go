package jwt

import (
	"testing"
	"time"
)

// FuzzVerify exercises the verifier with arbitrary token strings.
// Goal: no panics; invalid inputs must be rejected with errors.
func FuzzVerify(f *testing.F) {
	c := NewCodec(Config{})
	valid, err := c.Sign(map[string]any{"uid": "fuzz"}, testSecret, SignOptions{ExpiresIn: time.Hour})
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add("")
	f.Add("not.a.jwt")
	f.Add("eyJhbGciOiJub25lIn0.eyJ1aWQiOiJ0ZXN0In0.")
	f.Add(`{"payload":"` + valid + `"}`)

	f.Fuzz(func(t *testing.T, input string) {
		claims, err := c.Verify(input, testSecret, VerifyOptions{UnwrapPayload: true})
		if err != nil {
			return
		}
		if claims == nil {
			t.Fatal("Verify returned nil claims without error")
		}
	})
}

// FuzzDecode checks that Decode never panics and always returns claims on success.
func FuzzDecode(f *testing.F) {
	f.Add("eyJhbGciOiJIUzI1NiJ9.eyJ1aWQiOiJ1In0.")
	f.Add("a.b.c")
	f.Add("..")

	f.Fuzz(func(t *testing.T, input string) {
		decoded, err := Decode(input, true)
		if err != nil {
			return
		}
		if decoded.Claims == nil || decoded.Header == nil {
			t.Fatal("Decode returned nil parts without error")
		}
	})
}
