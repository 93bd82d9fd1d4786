package command

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/validate"
)

// BenchCommand measures sign, verify, authenticate and bcrypt throughput of the
// configured toolkit.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run a local throughput benchmark",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "ops",
				Value: 10000,
				Usage: "operations per token phase",
			},
			&cli.IntFlag{
				Name:  "hash-ops",
				Value: 32,
				Usage: "operations per bcrypt phase (0 skips them)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 8,
				Usage: "concurrent workers",
			},
		},
		Action: func(c *cli.Context) error {
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			ops, hashOps, concurrency := c.Int("ops"), c.Int("hash-ops"), c.Int("concurrency")
			if ops < 1 || hashOps < 0 || concurrency < 1 {
				return fmt.Errorf("bench: ops and concurrency must be positive")
			}
			return runBench(c.Context, c.App.Writer, tk, ops, hashOps, concurrency)
		},
	}
}

func runBench(ctx context.Context, w io.Writer, tk *goCred.Toolkit, ops, hashOps, concurrency int) error {
	signSecret, err := tk.GenerateSignSecret()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "bench: ops=%d hash-ops=%d concurrency=%d\n", ops, hashOps, concurrency)

	tokens := make([]string, ops)
	s, err := runPhase(ctx, ops, concurrency, func(i int) error {
		tok, err := tk.SignToken(map[string]any{
			"sub":                  fmt.Sprintf("u%d", i),
			validate.DeviceIDClaim: uuid.NewString(),
		}, signSecret)
		tokens[i] = tok
		return err
	})
	if err != nil {
		return err
	}
	printStats(w, "sign", s)

	if s, err = runPhase(ctx, ops, concurrency, func(i int) error {
		_, err := tk.VerifyToken(tokens[i], signSecret)
		return err
	}); err != nil {
		return err
	}
	printStats(w, "verify", s)

	if s, err = runPhase(ctx, ops, concurrency, func(i int) error {
		_, err := tk.Authenticate(ctx, tokens[i], signSecret)
		return err
	}); err != nil {
		return err
	}
	printStats(w, "authenticate", s)

	if hashOps == 0 {
		return nil
	}
	const pw = "Bench#pass1"
	hashes := make([]string, hashOps)
	if s, err = runPhase(ctx, hashOps, concurrency, func(i int) error {
		h, err := tk.HashPassword(ctx, pw)
		hashes[i] = h
		return err
	}); err != nil {
		return err
	}
	printStats(w, "hash", s)

	if s, err = runPhase(ctx, hashOps, concurrency, func(i int) error {
		_, err := tk.ComparePassword(ctx, pw, hashes[i])
		return err
	}); err != nil {
		return err
	}
	printStats(w, "compare", s)
	return nil
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

// runPhase runs op for indexes [0, ops) across concurrency workers. Operation failures are
// counted; only context cancellation aborts the phase.
func runPhase(ctx context.Context, ops, concurrency int, op func(i int) error) (phaseStats, error) {
	var (
		cursor    atomic.Int64
		failures  atomic.Int64
		latencies = make([]time.Duration, ops)
	)

	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for range concurrency {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1)) - 1
				if i >= ops {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				t0 := time.Now()
				if err := op(i); err != nil {
					failures.Add(1)
				}
				latencies[i] = time.Since(t0)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return phaseStats{}, err
	}
	return computeStats(time.Since(start), latencies, failures.Load()), nil
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(w io.Writer, name string, s phaseStats) {
	fmt.Fprintf(w, "%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
