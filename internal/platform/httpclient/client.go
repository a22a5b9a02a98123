// Package httpclient provides the single choke-point for outbound API
// requests: circuit breaker, rate limiting, session credential injection,
// and OpenTelemetry tracing.
//
// The client applies middleware-like processing in this order:
//
//	Circuit Breaker → Rate Limiter → Header Injection → OTEL Span → HTTP
//
// There is deliberately no retry stage: a failed request surfaces to the
// caller exactly once, so the write protocol upstream can decide between
// commit and rollback without ambiguity about how many attempts were made.
//
// Construction:
//
//	client := httpclient.New(&cfg.API, "planning-api", session, metrics, logger)
//
// Executing requests:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/plannery/plannery-go/internal/platform/config"
	"github.com/plannery/plannery-go/internal/platform/telemetry"
	"github.com/plannery/plannery-go/internal/ports"
)

// SessionTokenHeader is the credential header attached to every request when
// a session token is known. There is no per-call opt-out.
const SessionTokenHeader = "X-Session-Token"

// Client is the instrumented HTTP client behind all resource clients.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	limiter     *rate.Limiter // nil when rate limiting is disabled
	session     ports.SessionSource
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates the transport client. The base URL is resolved from cfg
// (explicit value, else the "/api" fallback, relative bases resolved against
// cfg.Origin). session may be nil, in which case no credential header is
// ever sent. If metrics is nil, metric recording is skipped.
func New(cfg *config.APIConfig, serviceName string, session ports.SessionSource, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     ResolveBaseURL(cfg.BaseURL, cfg.Origin),
		serviceName: serviceName,
		breaker:     cb,
		limiter:     limiter,
		session:     session,
		metrics:     metrics,
		logger:      logger,
	}
}

// Do executes an HTTP request through the full pipeline:
// Circuit Breaker → Rate Limiter → Header Injection → OTEL Span → HTTP.
//
// The request's context is used for cancellation and tracing. A context
// cancelled before completion aborts the in-flight request; the returned
// error then satisfies domain.IsCancellation, distinguishing it from a
// server-reported failure.
//
// On success resp is non-nil with an open body that the caller must close.
// Responses with status >= 400 are returned as-is (err nil): translating
// them into structured failures is the resource layer's job. When the
// circuit breaker rejects or a network error occurs, resp is nil.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	method := req.Method

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if err := c.waitForRateLimit(ctx); err != nil {
			return struct{}{}, err
		}

		c.injectHeaders(req)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		req = req.WithContext(spanCtx)

		r, doErr := c.httpClient.Do(req)
		if doErr == nil {
			resp = r
		}
		c.finishSpan(span, resp, doErr)

		return struct{}{}, doErr
	})

	c.recordMetrics(ctx, method, start, resp, err)

	if err != nil {
		c.logger.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}

	return resp, nil
}

// BaseURL returns the resolved base URL configured for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the downstream service identifier (e.g., "planning-api").
// Together with HealthCheck, this lets Client satisfy ports.HealthChecker.
func (c *Client) Name() string {
	return c.serviceName
}

// CircuitBreakerState returns the current breaker state as a string.
func (c *Client) CircuitBreakerState() string {
	return c.breaker.State().String()
}

// HealthCheck reports the downstream service's availability based on the
// circuit breaker state. No network call is made.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// waitForRateLimit blocks until the rate limiter allows the request or the
// context is canceled. Returns nil immediately when rate limiting is disabled.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// injectHeaders sets the uniform request headers: Content-Type on every
// request, and the session credential header whenever the configured source
// yields a non-empty token.
func (c *Client) injectHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")

	if c.session == nil {
		return
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set(SessionTokenHeader, token)
	}
}

// startSpan creates an OTEL client span for the outbound request and injects
// trace context (W3C Trace Context) into the request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("httpclient")

	spanName := fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName)
	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// finishSpan records the response outcome on the span.
func (c *Client) finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics records client request duration and count metrics.
// Metrics are recorded outside the circuit breaker so that circuit-open
// rejections are captured. Safe to call with nil metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	statusCode := 0
	result := "error"
	if resp != nil {
		statusCode = resp.StatusCode
		if statusCode < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(statusCode),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, duration, attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
