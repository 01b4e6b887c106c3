package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/drivequiz/internal/client/credentials"
	"github.com/dmitrijs2005/drivequiz/internal/common"
	"github.com/dmitrijs2005/drivequiz/internal/logging"
)

// UnauthorizedEvent describes the request that came back with 401. Token is
// the credential that was attached to it (empty if none).
type UnauthorizedEvent struct {
	Method string
	Path   string
	Token  string
}

// authTransport attaches the stored bearer token and tears the credential
// down when the server answers 401.
type authTransport struct {
	base   http.RoundTripper
	store  credentials.Store
	log    logging.Logger
	notify func(ctx context.Context, ev UnauthorizedEvent)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	token, ok, err := t.store.Read(ctx)
	if err != nil {
		t.log.Warn(ctx, "credential read failed, sending request without token", "err", err)
	}
	if ok {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.unauthorized(ctx, req, token)
	}
	return resp, nil
}

func (t *authTransport) unauthorized(ctx context.Context, req *http.Request, token string) {
	// the request context may already be near its deadline
	ctx = context.WithoutCancel(ctx)

	if token != "" {
		cleared, err := t.store.ClearIf(ctx, token)
		if err != nil {
			t.log.Error(ctx, "clearing credential after 401 failed", "err", err)
		} else if !cleared {
			// a newer login replaced the token while this request was in flight
			t.log.Info(ctx, "401 for a token that is no longer current", "path", req.URL.Path)
			return
		}
	}

	t.log.Warn(ctx, "request unauthorized",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(common.RequestIDHeaderName))

	t.notify(ctx, UnauthorizedEvent{
		Method: req.Method,
		Path:   req.URL.Path,
		Token:  token,
	})
}
