package httpsession

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "skillsetu/internal/platform/errors"
)

const (
	DefaultTimeout  = 15 * time.Second
	GenerateTimeout = 120 * time.Second
	CleanupTimeout  = 10 * time.Second
)

// TokenSource is the session's view of the persisted credential. It is
// consulted on every request; nothing is cached here.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// Doer is what API adapters depend on; *Session satisfies it.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
	DoWithSlashRetry(ctx context.Context, req Request) (*Response, error)
}

type Options struct {
	BaseURL        string
	Tokens         TokenSource
	Client         *http.Client
	Logger         hclog.Logger
	DefaultTimeout time.Duration
	// OnUnauthorized runs once per 401 response, after the token is cleared.
	OnUnauthorized func(ctx context.Context)
}

type Session struct {
	baseURL        string
	tokens         TokenSource
	client         *http.Client
	logger         hclog.Logger
	timeout        time.Duration
	onUnauthorized func(ctx context.Context)
}

type Request struct {
	Method  string
	Path    string
	Body    any
	Header  http.Header
	Timeout time.Duration
	// KeepToken leaves the stored credential alone on 401. Used when the
	// caller authenticates with a token other than the stored one.
	KeepToken bool
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case apperrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func (e *StatusError) DetailText() string {
	return e.Detail
}

// StatusText is the reason phrase used in status messages, e.g. "Bad Gateway".
func (e *StatusError) StatusText() string {
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func New(opts Options) (*Session, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: base url is required", apperrors.ErrInvalidInput)
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("%w: token source is required", apperrors.ErrInvalidInput)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{
		baseURL:        base,
		tokens:         opts.Tokens,
		client:         client,
		logger:         logger,
		timeout:        timeout,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

func (s *Session) Do(ctx context.Context, req Request) (*Response, error) {
	url := JoinURL(s.baseURL, req.Path)
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	if httpReq.Header.Get("Authorization") == "" {
		token, ok, err := s.tokens.Token(ctx)
		if err != nil {
			s.logger.Warn("read token failed", "error", err)
		} else if ok && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	s.logger.Debug("api request", "method", method, "url", url, "auth", httpReq.Header.Get("Authorization") != "")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, classify(callCtx, method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(callCtx, method, url, err)
	}

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{Method: method, URL: url, Status: resp.StatusCode, Detail: detailOf(raw)}
		if resp.StatusCode == http.StatusUnauthorized && !req.KeepToken {
			s.evict(ctx)
		}
		return nil, statusErr
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

// DoWithSlashRetry retries once with the trailing slash toggled when the
// first attempt answers 404.
func (s *Session) DoWithSlashRetry(ctx context.Context, req Request) (*Response, error) {
	resp, err := s.Do(ctx, req)
	var statusErr *StatusError
	if err == nil || !errors.As(err, &statusErr) || statusErr.Status != http.StatusNotFound {
		return resp, err
	}
	retry := req
	retry.Path = toggleSlash(req.Path)
	s.logger.Debug("retrying with toggled slash", "method", req.Method, "path", retry.Path)
	return s.Do(ctx, retry)
}

func (s *Session) evict(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn("clear token after 401 failed", "error", err)
	}
	s.logger.Info("session expired, token cleared")
	if s.onUnauthorized != nil {
		s.onUnauthorized(ctx)
	}
}

// JoinURL concatenates base and path with exactly one slash between them.
func JoinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

func toggleSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return strings.TrimRight(path, "/")
	}
	return path + "/"
}

func classify(ctx context.Context, method, url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", method, url, apperrors.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s %s: %w", method, url, apperrors.ErrTimeout)
	}
	return fmt.Errorf("%s %s: %w: %v", method, url, apperrors.ErrNetwork, err)
}

func detailOf(raw []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
