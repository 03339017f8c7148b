// Package upstream is the console's data-access layer for the Rawuh
// backend REST API: a single configured transport client plus one set
// of typed operations per resource. The backend owns persistence and
// validation; this package only translates calls and classifies
// failures.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Rawuh-in/console/internal/session"
	"github.com/Rawuh-in/console/pkg/logger"
	"github.com/Rawuh-in/console/pkg/telemetry"
)

const defaultTimeout = 30 * time.Second

// ClientConfig holds the outgoing HTTP configuration.
type ClientConfig struct {
	// BaseURL is the backend root, e.g. "https://api.rawuh.example".
	BaseURL string
	// Project is the path prefix scoping event and guest resources.
	Project string
	// Timeout is the per-request ceiling; requests past it fail with a
	// transport error. Defaults to 30s.
	Timeout time.Duration
}

// Client is the single point of outgoing HTTP configuration. Every
// request picks up the bearer token from the session store when one is
// present; without a token the request still goes out unauthenticated
// and the backend decides.
type Client struct {
	baseURL string
	project string
	http    *http.Client
	session session.Store
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *telemetry.Metrics
}

// NewClient creates the transport client.
func NewClient(cfg ClientConfig, sess session.Store, log *logger.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		project: strings.Trim(cfg.Project, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
		tracer:  tracer,
		metrics: metrics,
	}
}

// projectPath prefixes a resource path with the configured project.
func (c *Client) projectPath(parts ...string) string {
	return c.project + "/" + strings.Join(parts, "/")
}

// do issues one request and decodes the enveloped response body into
// out (which may be nil for operations without a result). All failures
// come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out *envelope) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return decodeError(err)
	}
	if out.Error {
		// A 2xx body with the envelope error flag set still carries a
		// backend-provided message.
		return statusError(http.StatusOK, out.Message)
	}
	return nil
}

// doRaw issues one request and returns the raw 2xx body.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, decodeError(fmt.Errorf("encode request body: %w", err))
		}
		payload = bytes.NewReader(data)
	}

	ctx, span := c.tracer.Start(ctx, "upstream "+method+" /"+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	// Built from the span's ctx so the request carries the span.
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		span.RecordError(err)
		return nil, transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.metrics.RecordUpstreamRequest(ctx, method, path, 0, time.Since(start))
		c.log.WarnContext(ctx, "upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.metrics.RecordUpstreamRequest(ctx, method, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(data)
		span.SetStatus(codes.Error, msg)
		c.log.WarnContext(ctx, "upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, statusError(resp.StatusCode, msg)
	}

	return data, nil
}

// errorMessage pulls the backend-provided message out of an error body,
// falling back to the raw body when it is not an envelope.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
