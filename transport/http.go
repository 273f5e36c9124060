// Package transport implements workflow.Transport over HTTP.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/workflow"
)

const (
	headerAPIToken            = "linked-api-token"
	headerIdentificationToken = "identification-token"
	headerClient              = "client"
)

// HTTP talks to the Linked API with the account's tokens. Every response,
// successful or not, is returned as a workflow.Envelope.
type HTTP struct {
	client  *resty.Client
	limiter *rate.Limiter
	l       *slog.Logger
}

// Option configures an HTTP transport.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to use a proxy.
// The client is copied, so the configured timeout never changes c.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New validates cfg and creates the transport.
func New(cfg Config, opts ...Option) (*HTTP, error) {
	if err := config.Prepare(&cfg); err != nil {
		return nil, fmt.Errorf("transport config: %w", err)
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	if o.httpClient != nil {
		hc := *o.httpClient
		client = resty.NewWithClient(&hc)
	}

	// No retries: a retried POST /workflows would start a second workflow.
	client.
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetDebug(cfg.Debug).
		SetLogger(restyLogger{l: o.logger}).
		SetHeaders(map[string]string{
			"Content-Type":            "application/json",
			headerAPIToken:            cfg.APIToken,
			headerIdentificationToken: cfg.IdentificationToken,
			headerClient:              cfg.Client,
		})

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	return &HTTP{client: client, limiter: limiter, l: o.logger}, nil
}

func (h *HTTP) Get(ctx context.Context, path string) (*workflow.Envelope, error) {
	return h.do(ctx, http.MethodGet, path, nil)
}

func (h *HTTP) Post(ctx context.Context, path string, body any) (*workflow.Envelope, error) {
	return h.do(ctx, http.MethodPost, path, body)
}

func (h *HTTP) Delete(ctx context.Context, path string) (*workflow.Envelope, error) {
	return h.do(ctx, http.MethodDelete, path, nil)
}

func (h *HTTP) do(ctx context.Context, method, path string, body any) (*workflow.Envelope, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		h.l.WarnContext(ctx, "Linked API request failed",
			"method", method,
			"path", path,
			"error", err)
		return &workflow.Envelope{Error: &workflow.RequestError{
			Type:    workflow.ErrorTypeNetwork,
			Message: fmt.Sprintf("Request error: %v", err),
			Details: map[string]any{"error": err.Error()},
		}}, nil
	}

	h.l.DebugContext(ctx, "Linked API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration", resp.Time())

	return translate(resp), nil
}

// translate converts a completed HTTP exchange into an envelope. Error
// bodies in the Linked API format keep their type; anything else on a
// non-2xx status becomes an httpError.
func translate(resp *resty.Response) *workflow.Envelope {
	var env workflow.Envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if !resp.IsError() {
		if decodeErr != nil {
			return &workflow.Envelope{Error: &workflow.RequestError{
				Type:    workflow.ErrorTypeUnknown,
				Message: fmt.Sprintf("malformed response: %v", decodeErr),
			}}
		}
		return &env
	}

	if decodeErr == nil && env.Error != nil && env.Error.Type != "" {
		env.Success = false
		if env.Error.Details == nil {
			env.Error.Details = map[string]any{"status": resp.StatusCode()}
		}
		return &env
	}

	return &workflow.Envelope{Error: httpError(resp)}
}

func httpError(resp *resty.Response) *workflow.RequestError {
	statusText := http.StatusText(resp.StatusCode())
	url := ""
	if resp.Request != nil {
		url = resp.Request.URL
	}
	return &workflow.RequestError{
		Type:    workflow.ErrorTypeHTTP,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), statusText),
		Details: map[string]any{
			"status":     resp.StatusCode(),
			"statusText": statusText,
			"url":        url,
		},
	}
}

// restyLogger routes resty's internal messages through slog.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
