package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasksure/client/api/transport"
	"github.com/tasksure/client/domain"
)

// Config controls how the API client reaches the TaskSure server.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a typed HTTP client for the TaskSure server API. Every
// request carries the caller's session as a bearer credential; HTTP
// failures are mapped onto the domain error taxonomy.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New constructs a Client against the configured base URL.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do executes the prepared request, honouring the context deadline and
// translating transport-level failures into NETWORK errors.
func (c *Client) do(ctx context.Context, sess *domain.Session, req *fasthttp.Request, resp *fasthttp.Response) error {
	if sess != nil {
		if err := sess.Validate(time.Now()); err != nil {
			return err
		}
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+sess.Token)
	}
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeNetwork, "request cancelled", err)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("request failed",
			zap.String("uri", req.URI().String()),
			zap.Error(err))
		return domain.WrapError(domain.ErrCodeNetwork, "request failed", err)
	}
	return statusError(resp)
}

// statusError maps a non-2xx response onto the domain taxonomy.
func statusError(resp *fasthttp.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	detail := errorDetail(resp.Body())
	switch {
	case code == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case code == http.StatusNotFound:
		return domain.NewError(domain.ErrCodeNotFound, detail)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return domain.NewError(domain.ErrCodeInvalid, detail)
	default:
		return domain.NewError(domain.ErrCodeRejected, fmt.Sprintf("server rejected request (%d): %s", code, detail))
	}
}

func errorDetail(body []byte) string {
	var payload transport.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if len(body) == 0 {
		return "no detail provided"
	}
	return string(body)
}

func decodeJSON(resp *fasthttp.Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "malformed server response", err)
	}
	return nil
}
