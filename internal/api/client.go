// Package api has one function per backend endpoint. Calls are stateless:
// no retries, no caching, no de-duplication.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logrus "github.com/sirupsen/logrus"
)

// TokenHeader is the response header auth endpoints put a new token in.
const TokenHeader = "X-Auth-Token"

// DefaultTimeout applies to every request of a client.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token sent with each request. The session
// store satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	http    *resty.Client
	baseURL string
	tokens  TokenSource
}

type Option func(*Client)

// WithTokenSource attaches the token of ts to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// New returns a client for the backend at backendURL (the origin, without
// /api). An empty backendURL yields a client whose calls return ErrNotConfigured.
func New(backendURL string, opts ...Option) *Client {
	backendURL = strings.TrimRight(strings.TrimSpace(backendURL), "/")

	rc := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if backendURL != "" {
		rc.SetBaseURL(backendURL + "/api")
	}

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		logrus.WithFields(logrus.Fields{"method": r.Method, "url": r.URL}).Debug("API Request")
		return nil
	})
	rc.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		logrus.WithFields(logrus.Fields{
			"status":  r.StatusCode(),
			"url":     r.Request.URL,
			"elapsed": r.Time(),
		}).Debug("API Response")
		return nil
	})
	rc.OnError(func(r *resty.Request, err error) {
		logrus.WithError(err).WithField("url", r.URL).Warn("API Request Error")
	})

	c := &Client{http: rc, baseURL: backendURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the configured backend origin, possibly empty.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one request.
type call struct {
	op     string
	method string
	path   string
	params map[string]string
	query  map[string]string
	body   any
	out    any
	// token overrides the token source when set.
	token  string
}

func (c *Client) do(ctx context.Context, cl call) (*resty.Response, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	req := c.http.R().
		SetContext(ctx).
		SetError(&errorBody{})
	if len(cl.params) > 0 {
		req.SetPathParams(cl.params)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}
	if cl.out != nil {
		req.SetResult(cl.out)
	}
	tok := cl.token
	if tok == "" && c.tokens != nil {
		tok = c.tokens.Token()
	}
	if tok != "" {
		req.SetAuthToken(tok)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		return nil, &TransportError{Op: cl.op, Err: err}
	}
	if !resp.IsSuccess() {
		se := &StatusError{Op: cl.op, StatusCode: resp.StatusCode()}
		if eb, ok := resp.Error().(*errorBody); ok && eb != nil {
			se.Message = eb.Error
		}
		return resp, se
	}
	return resp, nil
}

// Ping calls the API root and returns its greeting.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if _, err := c.do(ctx, call{op: "Ping", method: http.MethodGet, path: "/", out: &out}); err != nil {
		return "", err
	}
	return out.Message, nil
}
