package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuiper-sh/kuiper/packages/core/request"
	kuiperhttp "github.com/kuiper-sh/kuiper/packages/http"
)

func TestRunnerRun(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	def := &request.Definition{URI: server.URL, Method: "GET"}
	runner := New(kuiperhttp.NewClient(), Config{Requests: 16, Concurrency: 4})

	report, err := runner.Run(context.Background(), def)
	require.NoError(t, err)

	assert.Equal(t, int64(16), report.Total)
	assert.Equal(t, int64(16), hits.Load())
	assert.Equal(t, int64(0), report.Errors)
	assert.Greater(t, report.Duration, time.Duration(0))
	assert.Greater(t, report.Percentile(50), time.Duration(0))
	assert.GreaterOrEqual(t, report.Percentile(99), report.Percentile(50))
	assert.Greater(t, report.RPS(), 0.0)
}

func TestRunnerCountsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	def := &request.Definition{URI: server.URL, Method: "GET"}
	runner := New(kuiperhttp.NewClient(), Config{Requests: 4, Concurrency: 2})

	report, err := runner.Run(context.Background(), def)
	require.NoError(t, err)

	assert.Equal(t, int64(4), report.Total)
	assert.Equal(t, int64(4), report.Errors)
}

func TestRunnerRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	def := &request.Definition{URI: server.URL, Method: "GET"}
	runner := New(kuiperhttp.NewClient(), Config{Requests: 5, Concurrency: 2, Rate: 50})

	start := time.Now()
	report, err := runner.Run(context.Background(), def)
	require.NoError(t, err)

	assert.Equal(t, int64(5), report.Total)
	// 5 requests at 50/s need at least ~80ms
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestRunnerDefaults(t *testing.T) {
	runner := New(kuiperhttp.NewClient(), Config{})
	assert.Equal(t, 1, runner.cfg.Requests)
	assert.Equal(t, 1, runner.cfg.Concurrency)
}
