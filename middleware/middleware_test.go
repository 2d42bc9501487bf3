package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"

	"github.com/RaiAraujo30/Complete-Physical-Store/logger"
	awspkg "github.com/RaiAraujo30/Complete-Physical-Store/pkg/aws"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := newEngine(RequestID())
	var fromCtx, fromGin string
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = logger.RequestID(c.Request.Context())
		fromGin = c.GetString(logger.RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := serve(r, "/ping", nil)
	rid := w.Header().Get(RequestIDHeader)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, fromCtx)
	assert.Equal(t, rid, fromGin)

	w = serve(r, "/ping", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", fromCtx)
}

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	r := newEngine(RequestTimeout(2 * time.Second))
	var deadline time.Time
	var ok bool
	r.GET("/slow", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	serve(r, "/slow", nil)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := newEngine(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(r, "/ok?limit=5", nil)
	serve(r, "/missing", nil)
	serve(r, "/boom", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.Equal(t, "limit=5", fields["query"])
	assert.Equal(t, int64(200), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, "/", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	defer rl.Stop()
	r := newEngine(RateLimitMiddleware(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, "/", nil).Code)
	w := serve(r, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimiter_SweepEvictsIdle(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }

	first := rl.GetLimiter("10.0.0.1")
	assert.Same(t, first, rl.GetLimiter("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	rl.sweep()
	assert.NotSame(t, first, rl.GetLimiter("10.0.0.1"))
}

func TestNewPerMinuteLimiter(t *testing.T) {
	rl := NewPerMinuteLimiter(120)
	defer rl.Stop()
	assert.Equal(t, 60, rl.burst)
	assert.InDelta(t, 2.0, float64(rl.rate), 1e-9)

	fallback := NewPerMinuteLimiter(0)
	defer fallback.Stop()
	assert.Equal(t, 50, fallback.burst)
}

type recordedMetric struct {
	name       string
	dimensions map[string]string
}

type fakeRecorder struct {
	enabled bool
	mu      sync.Mutex
	got     []recordedMetric
	wg      sync.WaitGroup
}

func (f *fakeRecorder) IsEnabled() bool { return f.enabled }

func (f *fakeRecorder) RecordCount(_ context.Context, name string, dims map[string]string) error {
	f.record(name, dims)
	return nil
}

func (f *fakeRecorder) RecordLatency(_ context.Context, name string, _ time.Duration, dims map[string]string) error {
	f.record(name, dims)
	return nil
}

func (f *fakeRecorder) record(name string, dims map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, recordedMetric{name, dims})
	f.wg.Done()
}

func (f *fakeRecorder) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.got))
	for _, m := range f.got {
		out = append(out, m.name)
	}
	return out
}

func TestMetricsMiddleware_RecordsErrors(t *testing.T) {
	rec := &fakeRecorder{enabled: true}
	rec.wg.Add(4)
	r := newEngine(MetricsMiddleware(rec, "physical-store"))
	r.GET("/store/shipping/:cep", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(r, "/store/shipping/01310100", nil)
	rec.wg.Wait()

	assert.ElementsMatch(t, []string{
		awspkg.MetricHTTPRequests, awspkg.MetricHTTPLatency, awspkg.MetricHTTPErrors, awspkg.MetricHTTP5xx,
	}, rec.names())
	assert.Equal(t, "/store/shipping/:cep", rec.got[0].dimensions["Path"])
	assert.Equal(t, "5xx", rec.got[0].dimensions["Status"])
}

func TestMetricsMiddleware_DisabledSkips(t *testing.T) {
	rec := &fakeRecorder{}
	r := newEngine(MetricsMiddleware(rec, "physical-store"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/", nil).Code)
	assert.Empty(t, rec.names())
}

func TestStatusCodeToRange(t *testing.T) {
	assert.Equal(t, "2xx", statusCodeToRange(204))
	assert.Equal(t, "3xx", statusCodeToRange(301))
	assert.Equal(t, "4xx", statusCodeToRange(429))
	assert.Equal(t, "5xx", statusCodeToRange(502))
	assert.Equal(t, "unknown", statusCodeToRange(100))
}
