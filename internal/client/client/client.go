package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/drivequiz/internal/client/credentials"
	"github.com/dmitrijs2005/drivequiz/internal/logging"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultUploadTimeout  = 5 * time.Minute

	maxBodySize = 8 << 20
)

type Options struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:8000/api.
	BaseURL        string
	RequestTimeout time.Duration
	// UploadTimeout bounds the multipart quiz generation request.
	UploadTimeout time.Duration
	// Transport is the underlying round tripper, http.DefaultTransport if nil.
	Transport http.RoundTripper
	Logger    logging.Logger
}

type HTTPClient struct {
	base           *url.URL
	http           *http.Client
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	log            logging.Logger

	mu          sync.RWMutex
	subscribers []func(UnauthorizedEvent)
}

func New(opts Options, store credentials.Store) (*HTTPClient, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: empty base URL")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported scheme %q", base.Scheme)
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	c := &HTTPClient{
		base:           base,
		requestTimeout: opts.RequestTimeout,
		uploadTimeout:  opts.UploadTimeout,
		log:            opts.Logger.With("component", "api"),
	}
	c.http = &http.Client{
		Transport: &authTransport{
			base:   opts.Transport,
			store:  store,
			log:    c.log,
			notify: c.emit,
		},
	}
	return c, nil
}

// OnUnauthorized registers fn to be called after any 401. Subscribers run
// on the goroutine that issued the request, after the token was cleared.
func (c *HTTPClient) OnUnauthorized(fn func(UnauthorizedEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *HTTPClient) emit(_ context.Context, ev UnauthorizedEvent) {
	c.mu.RLock()
	subs := make([]func(UnauthorizedEvent), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// BaseURL returns the configured API root.
func (c *HTTPClient) BaseURL() string {
	return c.base.String()
}

// endpoint resolves path against the API root. A leading slash makes it
// relative to the server root instead.
func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends in (when not nil) as JSON and decodes a 2xx body into out
// (when not nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := c.newJSONRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	data, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// roundTrip executes req and returns the body of a 2xx reply.
func (c *HTTPClient) roundTrip(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	c.log.Debug(req.Context(), "request done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

// statusError builds the error for a non-2xx reply.
func statusError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Detail: parseDetail(body)}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return apiErr
}

// parseDetail extracts {"detail": "..."}; structured details (validation
// error lists) are reduced to their first message.
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &env) != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(env.Detail, &s) == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(env.Detail, &items) == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}

// decode separates bodies that are not JSON at all (treated like a broken
// connection) from JSON of the wrong shape.
func decode(data []byte, out any) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: response is not JSON", ErrUnavailable)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed("%v", err)
	}
	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return malformed("%v", err)
		}
	}
	return nil
}
