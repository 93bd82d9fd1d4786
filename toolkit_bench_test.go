package goCred

import (
	"context"
	"testing"

	"github.com/MrEthical07/goCred/device"
	"github.com/MrEthical07/goCred/validate"
)

func newBenchmarkToolkit(b *testing.B) *Toolkit {
	b.Helper()
	tk, err := New().WithConfig(testConfig()).Build()
	if err != nil {
		b.Fatalf("build failed: %v", err)
	}
	b.Cleanup(tk.Close)
	return tk
}

func BenchmarkSignToken(b *testing.B) {
	tk := newBenchmarkToolkit(b)
	payload := map[string]any{"sub": "alice", validate.DeviceIDClaim: testDeviceID}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tk.SignToken(payload, testSecret); err != nil {
			b.Fatalf("sign failed: %v", err)
		}
	}
}

func BenchmarkVerifyToken(b *testing.B) {
	tk := newBenchmarkToolkit(b)
	token, err := tk.SignToken(map[string]any{"sub": "alice"}, testSecret)
	if err != nil {
		b.Fatalf("sign failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tk.VerifyToken(token, testSecret); err != nil {
			b.Fatalf("verify failed: %v", err)
		}
	}
}

func BenchmarkAuthenticateParallel(b *testing.B) {
	tk := newBenchmarkToolkit(b)
	token, err := tk.SignToken(map[string]any{validate.DeviceIDClaim: testDeviceID}, testSecret)
	if err != nil {
		b.Fatalf("sign failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := tk.Authenticate(ctx, token, testSecret); err != nil {
				b.Errorf("authenticate failed: %v", err)
				return
			}
		}
	})
}

func BenchmarkDeviceToken(b *testing.B) {
	tk := newBenchmarkToolkit(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tk.DeviceToken(ctx, device.Raw(apnToken)); err != nil {
			b.Fatalf("classify failed: %v", err)
		}
	}
}
