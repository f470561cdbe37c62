package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/riskibarqy/pickem-pool/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishSetsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	p := NewPublisher(Config{
		BaseURL:       server.URL,
		Token:         "qs-token",
		TargetBaseURL: "https://pool.example.com/",
		Retries:       3,
		ForwardToken:  "s3cret",
		Logger:        logging.NewNop(),
	})

	err := p.Publish(context.Background(), Job{
		Path:            "v1/internal/cache/warm",
		Payload:         map[string]int{"season": 2024},
		Delay:           90 * time.Second,
		DeduplicationID: "warm-2024-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v2/publish/https://pool.example.com/v1/internal/cache/warm", gotPath)
	assert.JSONEq(t, `{"season":2024}`, gotBody)
	assert.Equal(t, "Bearer qs-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "3", gotHeaders.Get("Upstash-Retries"))
	assert.Equal(t, "90s", gotHeaders.Get("Upstash-Delay"))
	assert.Equal(t, "warm-2024-1", gotHeaders.Get("Upstash-Deduplication-Id"))
	assert.Equal(t, "s3cret", gotHeaders.Get("Upstash-Forward-X-Admin-Token"))
}

func TestPublisher_RejectsBadTarget(t *testing.T) {
	t.Parallel()

	p := NewPublisher(Config{BaseURL: "https://qstash.upstash.io", TargetBaseURL: "ftp://pool", Logger: logging.NewNop()})
	require.Error(t, p.Publish(context.Background(), Job{Path: "/v1/internal/cache/warm"}))

	require.Error(t, p.Publish(context.Background(), Job{Path: " "}))
}

func TestPublisher_BreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewPublisher(Config{
		BaseURL:       server.URL,
		TargetBaseURL: "https://pool.example.com",
		Logger:        logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	job := Job{Path: "/v1/internal/cache/warm"}
	for i := 0; i < 2; i++ {
		err := p.Publish(context.Background(), job)
		require.Error(t, err)
		assert.True(t, isTransient(err))
	}

	err := p.Publish(context.Background(), job)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPublisher_ClientErrorIsNotTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid destination"}`))
	}))
	defer server.Close()

	p := NewPublisher(Config{BaseURL: server.URL, TargetBaseURL: "https://pool.example.com", Logger: logging.NewNop()})
	err := p.Publish(context.Background(), Job{Path: "/v1/internal/cache/warm"})
	require.Error(t, err)
	assert.False(t, isTransient(err))
	assert.Contains(t, err.Error(), "invalid destination")
}
