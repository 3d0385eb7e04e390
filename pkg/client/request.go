package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

const apiPrefix = "/api"

func (c *Client) request(ctx context.Context, method string, path string, params url.Values, body io.Reader, result io.Writer) error {
	url, err := url.Parse(path)
	if err != nil {
		return errors.WithStack(err)
	}

	url.Scheme = c.baseURL.Scheme
	url.Host = c.baseURL.Host
	url.User = c.baseURL.User
	url.Path = c.baseURL.JoinPath(apiPrefix, url.Path).Path

	if len(params) > 0 {
		url.RawQuery = params.Encode()
	}

	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", url.Path),
		slog.String("host", url.Host),
	)

	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: res.StatusCode}

		var errRes httpx.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&errRes); err == nil {
			apiErr.Message = errRes.Error
		}

		return errors.WithStack(apiErr)
	}

	if _, err := io.Copy(result, res.Body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, params url.Values, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}

		// bytes.Reader lets the rate limit transport rewind the body
		body = bytes.NewReader(data)
	}

	var buff bytes.Buffer

	if err := c.request(ctx, method, path, params, body, &buff); err != nil {
		return errors.WithStack(err)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
