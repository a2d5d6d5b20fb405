// Package api talks to the Eureka server the way its web pages do: partial
// requests flagged with HX-* headers, a cookie session and form posts
// guarded by a CSRF token.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server routes the client knows about.
const (
	LoginPath   = "/auth/login"
	LogoutPath  = "/auth/logout"
	EntriesPath = "/entries/"
)

// Request headers understood by the server.
const (
	HeaderRequest   = "HX-Request"
	HeaderTrigger   = "HX-Trigger"
	HeaderTarget    = "HX-Target"
	HeaderRedirect  = "HX-Redirect"
	HeaderRequestID = "X-Request-ID"
)

var (
	// ErrUnauthorized means the session is missing or expired.
	ErrUnauthorized = errors.New("api: not logged in")
	// ErrLoginFailed means the server rejected the credentials.
	ErrLoginFailed = errors.New("api: login failed")
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Request is one call to the server.
type Request struct {
	Method  string
	Path    string
	Form    url.Values
	Headers http.Header
	// Trigger and Target name the page elements behind the request.
	Trigger string
	Target  string
}

// Response is a fully read server reply.
type Response struct {
	Status      int
	Header      http.Header
	Body        []byte
	ContentType string
	URL         *url.URL
}

// IsJSON reports whether the reply carries JSON.
func (r *Response) IsJSON() bool {
	return r.ContentType == "application/json"
}

// Redirect returns the client-side redirect target the server asked for.
func Redirect(r *Response) (string, bool) {
	if r == nil {
		return "", false
	}
	loc := r.Header.Get(HeaderRedirect)
	return loc, loc != ""
}

// Client is an HTTP client bound to one Eureka server.
type Client struct {
	base     *url.URL
	http     *http.Client
	jar      http.CookieJar
	sessions SessionStore
	logger   *slog.Logger

	// mu guards http, jar and savedSession. Requests run concurrently in
	// command goroutines and Logout swaps the jar.
	mu           sync.Mutex
	savedSession string
}

// NewClient creates a client. A nil session store keeps the session in
// memory only.
func NewClient(opts Options, sessions SessionStore, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: opts.Timeout, Jar: jar},
		jar:      jar,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL resolves path against the server address.
func (c *Client) URL(path string) string {
	return c.resolve(path).String()
}

func (c *Client) resolve(path string) *url.URL {
	ref, err := url.Parse(path)
	if err != nil {
		u := *c.base
		return &u
	}
	return c.base.ResolveReference(ref)
}

// Do sends a partial-page request.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	headers := r.Headers.Clone()
	if headers == nil {
		headers = make(http.Header)
	}
	headers.Set(HeaderRequest, "true")
	if r.Trigger != "" {
		headers.Set(HeaderTrigger, r.Trigger)
	}
	if r.Target != "" {
		headers.Set(HeaderTarget, r.Target)
	}
	resp, err := c.send(ctx, r.Method, r.Path, r.Form, headers)
	if err != nil {
		return nil, err
	}
	if c.bouncedToLogin(r.Path, resp) {
		return resp, ErrUnauthorized
	}
	return resp, nil
}

// FetchPage loads a full page the way a browser navigation would.
func (c *Client) FetchPage(ctx context.Context, path string) (*Response, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if c.bouncedToLogin(path, resp) {
		return resp, ErrUnauthorized
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, form url.Values, headers http.Header) (*Response, error) {
	if method == "" {
		method = http.MethodGet
	}
	target := c.resolve(path)

	var body io.Reader
	if form != nil && method != http.MethodGet {
		body = strings.NewReader(form.Encode())
	} else if form != nil {
		q := target.Query()
		for k, vs := range form {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	reqID := uuid.NewString()
	req.Header.Set(HeaderRequestID, reqID)

	start := time.Now()
	hc, _ := c.session()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	ct, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	out := &Response{
		Status:      resp.StatusCode,
		Header:      resp.Header,
		Body:        data,
		ContentType: ct,
		URL:         resp.Request.URL,
	}
	c.persistSession()
	return out, nil
}

// bouncedToLogin reports whether a request for something other than the
// login page ended up there.
func (c *Client) bouncedToLogin(path string, resp *Response) bool {
	if resp.Status == http.StatusUnauthorized {
		return true
	}
	if strings.HasPrefix(path, LoginPath) || resp.URL == nil {
		return false
	}
	return resp.URL.Path == LoginPath
}

// Cookie returns the value of a session cookie for the server.
func (c *Client) Cookie(name string) (string, bool) {
	_, jar := c.session()
	for _, ck := range jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

// Login signs in with an email and password. The session cookie is kept
// in the session store.
func (c *Client) Login(ctx context.Context, email, password string) error {
	page, err := c.FetchPage(ctx, LoginPath)
	if err != nil {
		return fmt.Errorf("load login page: %w", err)
	}
	if page.URL != nil && page.URL.Path != LoginPath {
		// Already signed in; the login page redirects away.
		return nil
	}

	form := url.Values{
		"email":       {email},
		"password":    {password},
		"remember_me": {"y"},
	}
	if token := findCSRFToken(page.Body); token != "" {
		form.Set("csrf_token", token)
	}

	resp, err := c.send(ctx, http.MethodPost, LoginPath, form, nil)
	if err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	if resp.Status >= http.StatusBadRequest || hasLoginForm(resp.Body) {
		return ErrLoginFailed
	}
	c.logger.Info("logged in", "server", c.base.Host)
	return nil
}

// Logout ends the session on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.send(ctx, http.MethodGet, LogoutPath, nil, nil); err != nil {
		c.logger.Warn("server logout failed", "error", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("reset cookie jar: %w", err)
	}
	c.mu.Lock()
	c.jar = jar
	c.http = &http.Client{Timeout: c.http.Timeout, Jar: jar}
	c.savedSession = ""
	c.mu.Unlock()
	if err := c.sessions.Delete(); err != nil && !errors.Is(err, ErrNoSession) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
