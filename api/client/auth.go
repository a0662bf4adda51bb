package client

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/tasksure/client/api/transport"
	"github.com/tasksure/client/domain"
)

// Login exchanges credentials for a bearer session. The server expects
// an OAuth2 password form (username carries the account email).
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/auth/login"))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(form.Encode())

	if err := c.do(ctx, nil, req, resp); err != nil {
		return nil, err
	}

	var payload transport.TokenResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	sess := domain.NewSession(payload.AccessToken)
	return &sess, nil
}

// Me fetches the account behind the session. A rejected credential
// surfaces as domain.ErrUnauthenticated.
func (c *Client) Me(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/auth/me"))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var payload transport.UserResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	user := payload.ToDomain()
	return &user, nil
}

// Ping checks server reachability via the health endpoint. No session
// is attached; the endpoint is public.
func (c *Client) Ping(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/health"))
	req.Header.SetMethod(fasthttp.MethodGet)

	return c.do(ctx, nil, req, resp)
}
