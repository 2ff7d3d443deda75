// Package relay posts contact submissions to a third-party form relay such
// as Formspree, which forwards them by email.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SubjectPrefix starts every forwarded email's subject line.
	SubjectPrefix = "Portfolio Message from "

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Submission is what the visitor typed.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Subject is the email subject the relay forwards with.
func Subject(name string) string {
	return SubjectPrefix + name
}

// payload is the JSON body the relay receives.
type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"_subject"`
}

// Client posts submissions to one relay endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client. Its Timeout is kept
// unless WithTimeout is also given.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request, whichever HTTP client is in use.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient returns a Client for endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tracer:     otel.Tracer("github.com/Zachkp/portfolio/internal/relay"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Endpoint is the URL submissions go to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts sub as JSON and succeeds on any 2xx answer. Failures are
// returned as *Error. No retry is attempted.
func (c *Client) Send(ctx context.Context, sub Submission) error {
	ctx, span := c.tracer.Start(ctx, "relay.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.send(ctx, span, sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) send(ctx context.Context, span trace.Span, sub Submission) error {
	body, err := json.Marshal(payload{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
		Subject: Subject(sub.Name),
	})
	if err != nil {
		return &Error{Kind: KindTransport, Err: fmt.Errorf("encode submission: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return &Error{
		Kind:       KindRejected,
		StatusCode: resp.StatusCode,
		Detail:     rejectionDetail(resp.Body),
	}
}

// rejectionDetail pulls a human-readable reason out of a relay error body.
// Formspree answers {"error": "..."} or {"errors": [{"message": "..."}]}.
func rejectionDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var parsed struct {
		Error  string `json:"error"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(data, &parsed) != nil {
		return ""
	}
	if len(parsed.Errors) > 0 && parsed.Errors[0].Message != "" {
		return parsed.Errors[0].Message
	}
	return parsed.Error
}
