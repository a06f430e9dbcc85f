// Package bench repeatedly sends one resolved request and reports latency
// percentiles.
package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/kuiper-sh/kuiper/packages/core/request"
	kuiperhttp "github.com/kuiper-sh/kuiper/packages/http"
)

type Config struct {
	Requests    int
	Concurrency int
	Rate        float64 // requests per second, 0 means unlimited
}

// Report aggregates one benchmark run. Latencies are recorded in
// microseconds.
type Report struct {
	Total     int64
	Errors    int64
	Duration  time.Duration
	histogram *hdrhistogram.Histogram
}

func (r *Report) Percentile(p float64) time.Duration {
	return time.Duration(r.histogram.ValueAtQuantile(p)) * time.Microsecond
}

func (r *Report) Mean() time.Duration {
	return time.Duration(r.histogram.Mean()) * time.Microsecond
}

func (r *Report) RPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Total) / r.Duration.Seconds()
}

type Runner struct {
	client *kuiperhttp.Client
	cfg    Config
}

func New(client *kuiperhttp.Client, cfg Config) *Runner {
	if cfg.Requests <= 0 {
		cfg.Requests = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Runner{client: client, cfg: cfg}
}

// Run sends the request cfg.Requests times across cfg.Concurrency workers,
// optionally rate limited, and aggregates latency into a histogram.
func (r *Runner) Run(ctx context.Context, def *request.Definition) (*Report, error) {
	// 1us to 60s range, 3 significant digits
	hist := hdrhistogram.New(1, 60_000_000, 3)

	var limiter *rate.Limiter
	if r.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.Rate), 1)
	}

	var (
		total atomic.Int64
		errs  atomic.Int64
		mu    sync.Mutex
		wg    sync.WaitGroup
	)

	jobs := make(chan struct{})
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}

				start := time.Now()
				resp, err := r.client.Send(ctx, def)
				elapsed := time.Since(start)

				total.Add(1)
				if err != nil || resp.StatusCode >= 500 {
					errs.Add(1)
				}

				mu.Lock()
				_ = hist.RecordValue(elapsed.Microseconds())
				mu.Unlock()
			}
		}()
	}

	start := time.Now()
dispatch:
	for i := 0; i < r.cfg.Requests; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- struct{}{}:
		}
	}
	close(jobs)
	wg.Wait()

	report := &Report{
		Total:     total.Load(),
		Errors:    errs.Load(),
		Duration:  time.Since(start),
		histogram: hist,
	}
	return report, ctx.Err()
}
