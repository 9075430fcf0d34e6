package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/bnema/brevio-cli/internal/version"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 60 * time.Second
	maxResponseBytes = 32 << 20

	headerAPIKey        = "X-API-KEY"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"

	fallbackTitle = "Request failed"
)

var (
	errMalformedResponse = errors.New("malformed response body")
	errWrappedFailure    = errors.New("error body in a success response")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	notifier   ports.Notifier
	logger     *zap.Logger
}

var _ ports.Gateway = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(cfg Config, notifier ports.Notifier, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		notifier:   notifier,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get returns the raw response body. Failures are returned as
// *domain.TransportError and are never notified here.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, &domain.TransportError{Method: http.MethodGet, Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	c.setHeaders(request, "")

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logRequest(http.MethodGet, path, 0, start, err)
		return nil, &domain.TransportError{Method: http.MethodGet, Path: path, Err: fmt.Errorf("perform request: %w", err)}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		c.logRequest(http.MethodGet, path, response.StatusCode, start, err)
		return nil, &domain.TransportError{Method: http.MethodGet, Path: path, Status: response.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logRequest(http.MethodGet, path, response.StatusCode, start, nil)

	if !isSuccess(response.StatusCode) {
		return nil, &domain.TransportError{
			Method: http.MethodGet,
			Path:   path,
			Status: response.StatusCode,
			Err:    fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	return json.RawMessage(body), nil
}

// Post sends body as JSON, or as multipart/form-data when it implements
// ports.MultipartBody. The bearer header is set only for a non-empty token.
// Every failure is notified exactly once and returned as a *domain.GatewayError.
func (c *Client) Post(ctx context.Context, path string, body any, token string) fn.Result[json.RawMessage] {
	start := time.Now()

	request, err := c.newPostRequest(ctx, path, body)
	if err != nil {
		return c.fail(&domain.GatewayError{
			Kind:        domain.FailureTransport,
			Method:      http.MethodPost,
			Path:        path,
			Title:       fallbackTitle,
			Description: err.Error(),
			Err:         err,
		}, start)
	}
	c.setHeaders(request, token)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return c.fail(&domain.GatewayError{
			Kind:        domain.FailureTransport,
			Method:      http.MethodPost,
			Path:        path,
			Title:       fallbackTitle,
			Description: err.Error(),
			Err:         fmt.Errorf("perform request: %w", err),
		}, start)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return c.fail(&domain.GatewayError{
			Kind:        domain.FailureTransport,
			Method:      http.MethodPost,
			Path:        path,
			Status:      response.StatusCode,
			Title:       fallbackTitle,
			Description: err.Error(),
			Err:         fmt.Errorf("read response: %w", err),
		}, start)
	}

	if !isSuccess(response.StatusCode) {
		title, description := classify(payload)
		return c.fail(&domain.GatewayError{
			Kind:        domain.FailureServer,
			Method:      http.MethodPost,
			Path:        path,
			Status:      response.StatusCode,
			Title:       title,
			Description: description,
			Err:         fmt.Errorf("status %d", response.StatusCode),
		}, start)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		c.logRequest(http.MethodPost, path, response.StatusCode, start, nil)
		return fn.Ok(json.RawMessage(nil))
	}
	if !json.Valid(payload) {
		return c.fail(&domain.GatewayError{
			Kind:   domain.FailureDecode,
			Method: http.MethodPost,
			Path:   path,
			Status: response.StatusCode,
			Title:  fallbackTitle,
			Err:    errMalformedResponse,
		}, start)
	}

	if wrappedFailure(payload) {
		title, description := classify(payload)
		return c.fail(&domain.GatewayError{
			Kind:        domain.FailureServer,
			Method:      http.MethodPost,
			Path:        path,
			Status:      response.StatusCode,
			Title:       title,
			Description: description,
			Err:         fmt.Errorf("status %d: %w", response.StatusCode, errWrappedFailure),
		}, start)
	}

	c.logRequest(http.MethodPost, path, response.StatusCode, start, nil)
	return fn.Ok(json.RawMessage(payload))
}

func (c *Client) newPostRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	if multipartBody, ok := body.(ports.MultipartBody); ok {
		return c.newMultipartRequest(ctx, path, multipartBody)
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set(headerContentType, "application/json")

	return request, nil
}

// newMultipartRequest streams the form through a pipe. The transport closes
// the request body on every path, which unblocks the writer goroutine.
func (c *Client) newMultipartRequest(ctx context.Context, path string, body ports.MultipartBody) (*http.Request, error) {
	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), reader)
	if err != nil {
		_ = reader.Close()
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set(headerContentType, form.FormDataContentType())

	go func() {
		err := body.WriteMultipart(form)
		if err == nil {
			err = form.Close()
		}
		_ = writer.CloseWithError(err)
	}()

	return request, nil
}

func (c *Client) setHeaders(request *http.Request, token string) {
	request.Header.Set(headerAPIKey, c.apiKey)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "brevio/"+version.Version)
	if token = strings.TrimSpace(token); token != "" {
		request.Header.Set(headerAuthorization, "Bearer "+token)
	}
}

func (c *Client) fail(gatewayErr *domain.GatewayError, start time.Time) fn.Result[json.RawMessage] {
	c.logRequest(gatewayErr.Method, gatewayErr.Path, gatewayErr.Status, start, gatewayErr)
	if c.notifier != nil {
		c.notifier.Notify(domain.NewNotification(domain.NotificationError, gatewayErr.Title, gatewayErr.Description))
	}
	return fn.Err[json.RawMessage](gatewayErr)
}

func (c *Client) logRequest(method, path string, status int, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		c.logger.Warn("gateway request failed", append(fields, zap.Error(err))...)
		return
	}
	c.logger.Debug("gateway request", fields...)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
