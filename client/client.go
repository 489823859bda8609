// Package client exposes the cart and order facades that presentation code
// calls. Each facade wraps the storefront HTTP API and keeps an in-memory
// mirror of the server state together with a stale flag. Mutations never
// return errors: failures are logged and reported as false or as an
// unsuccessful Result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Result is reported by order mutations.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// NewHTTPClient returns a traced client that keeps session cookies between
// calls, the way a browser does.
func NewHTTPClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Jar:       jar,
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// StatusError is returned for non-2xx responses. Message is taken from the
// error envelope when the server sent one.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

// messageOf returns the server message carried by err, or fallback.
func messageOf(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

type api struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func newAPI(baseURL string, httpClient *http.Client, logger *zap.Logger) api {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return api{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// call sends in as JSON (when non-nil) and decodes a 2xx body into out.
func (a *api) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &envelope)
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
