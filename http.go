package shoptaboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	headerUserAgent     = "User-Agent"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
	clientUserAgent     = "shop-ta-board-go/1.0.0"
)

// do performs an HTTP request against the storefront API and normalizes the
// outcome into a typed result.
//
// A bearer token is attached iff token is non-empty. The gateway never
// retries and treats a 401 like any other failure status: refresh-on-expiry
// is the session service's responsibility, not the transport's.
func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build URL: %w", err)
	}

	// JoinPath escapes query strings; splice them back verbatim.
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + path
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	c.logger.Debug("http request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Bool("authenticated", token != ""),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	c.logger.Debug("http response",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	// 204 or an empty body is a success with nothing to parse.
	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

// parseAPIError extracts the backend's structured message when present.
// The storefront API reports errors as {"message": "..."}; some proxies in
// front of it use {"error": "..."} instead.
func parseAPIError(statusCode int, body []byte) error {
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Message != "" {
			return &APIError{StatusCode: statusCode, Message: structured.Message}
		}
		if structured.Error != "" {
			return &APIError{StatusCode: statusCode, Message: structured.Error}
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP error %d", statusCode),
	}
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path, token string, result any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, result)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path, token string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, token, body, result)
}

// patch performs a PATCH request.
func (c *Client) patch(ctx context.Context, path, token string, body, result any) error {
	return c.do(ctx, http.MethodPatch, path, token, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path, token string, result any) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, result)
}
