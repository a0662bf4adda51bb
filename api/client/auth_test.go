package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"

	"github.com/tasksure/client/domain"
)

// newTestClient serves handler over an in-memory listener and returns a
// client dialing into it.
func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	go fasthttp.Serve(ln, handler) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })

	return &Client{
		baseURL: "http://tasksure.test",
		http: &fasthttp.Client{
			Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
		},
		timeout: time.Second,
		logger:  zap.NewNop(),
	}
}

func TestMe_DecodesUserRecord(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/auth/me" {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		if auth := string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)); auth != "Bearer opaque-token" {
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"id":7,"email":"ada@example.com","username":"ada","is_active":true}`)
	})

	sess := domain.NewSession("opaque-token")
	user, err := c.Me(context.Background(), &sess)
	if err != nil {
		t.Fatalf("Me() err=%v, want nil", err)
	}
	if user.ID != "7" || user.Username != "ada" || user.Email != "ada@example.com" || !user.Active {
		t.Fatalf("Me()=%+v, want id 7, username ada, active", user)
	}
}

func TestMe_RejectedSession(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"detail":"Invalid token"}`)
	})

	sess := domain.NewSession("stale-token")
	if _, err := c.Me(context.Background(), &sess); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Me() err=%v, want ErrUnauthenticated", err)
	}
}

func TestMe_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{not json`)
	})

	sess := domain.NewSession("opaque-token")
	if _, err := c.Me(context.Background(), &sess); !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Fatalf("Me() err=%v, want INTERNAL", err)
	}
}
