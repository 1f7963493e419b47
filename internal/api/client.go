package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/metrics"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultBaseURL    = "http://localhost:5555/api"
	DefaultTimeout    = 15 * time.Second
	DefaultRetryDelay = 500 * time.Millisecond

	RequestIDHeader = "X-Request-ID"
)

type Params struct {
	BaseURL    string
	Timeout    time.Duration
	RetryDelay time.Duration
	// Transport is wrapped with the otel transport; http.DefaultTransport when nil.
	Transport      http.RoundTripper
	MetricsManager *metrics.Manager
}

// Client is a thin wrapper around the workouts REST API.
// It keeps no state other than the session cookie.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	retryDelay     time.Duration
	metricsManager *metrics.Manager
}

func NewClient(params Params) (*Client, error) {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsedURL, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url [%s]: %w", baseURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("base url [%s] must be absolute", baseURL)
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retryDelay := params.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	transport := params.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	metricsManager := params.MetricsManager
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: parsedURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(transport),
		},
		retryDelay:     retryDelay,
		metricsManager: metricsManager,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one API call: a single round trip, plus one retry after retryDelay when no
// response was received. The response body is decoded into out, when given.
func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	in, out any,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "api."+op)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("api.path", path),
	)

	start := time.Now()
	defer func() {
		c.metricsManager.HistogramApiCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		c.metricsManager.CounterApiCalls.WithLabelValues(op, outcomeOf(err)).Inc()
	}()

	var reqBody []byte
	if in != nil {
		reqBody, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
	}

	requestID := uuid.NewString()
	endpoint := c.endpoint(path, query)

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		resp, err = c.roundTrip(ctx, method, endpoint, requestID, reqBody)
		if err == nil {
			break
		}
		if attempt > 0 || ctx.Err() != nil {
			return &NetworkError{Op: op, Err: err}
		}

		log.Debugf("api %s [%s]: network error, retrying in %s: %s", op, requestID, c.retryDelay, err)
		c.metricsManager.CounterApiRetries.Inc()
		span.AddEvent("retry")

		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &NetworkError{Op: op, Err: ctx.Err()}
		case <-timer.C:
		}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Debugf("api %s [%s]: status %d", op, requestID, resp.StatusCode)
		return fmt.Errorf("%s: %w", op, newResponseError(resp.StatusCode, respBody))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: unmarshal response: %w", op, err)
	}

	return nil
}

func (c *Client) roundTrip(
	ctx context.Context,
	method, endpoint, requestID string,
	body []byte,
) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}

	var (
		netErr        *NetworkError
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		authErr       *AuthError
		httpErr       *HttpError
	)
	switch {
	case errors.As(err, &netErr):
		return "network_error"
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &httpErr):
		return "http_error"
	default:
		return "error"
	}
}
