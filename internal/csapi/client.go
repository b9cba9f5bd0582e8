// Package csapi talks to the CS API that owns members, bookings and payments.
package csapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopstack-asia/spi-sdb-app/internal/config"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

const maxResponseBytes = 4 << 20

type authMode int

const (
	authService authMode = iota
	authMember
)

type tokenKey struct{}

// WithAccessToken attaches the member's upstream bearer token to ctx.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func AccessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	baseURL   string
	basicAuth string
	http      *http.Client
}

func NewClient(cfg config.UpstreamConfig) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.AppKey != "" && cfg.SecretKey != "" {
		c.basicAuth = "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.AppKey+":"+cfg.SecretKey))
	}
	return c
}

func (c *Client) authorize(ctx context.Context, req *http.Request, mode authMode) {
	if mode == authMember {
		if token := AccessTokenFrom(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			return
		}
	}
	if c.basicAuth != "" {
		req.Header.Set("Authorization", c.basicAuth)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, mode authMode, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return result.Wrap(result.KindInternal, "encode upstream request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return result.Wrap(result.KindInternal, "build upstream request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, req, mode)
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return result.Wrap(result.KindInternal, fmt.Sprintf("%s %s failed after %s", req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond)), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return result.Wrap(result.KindInternal, "read upstream response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result.Upstream(resp.StatusCode, errorMessage(raw))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return result.Wrap(result.KindInternal, "decode upstream response", err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "Unknown error"
	}
	if body.Message == "" {
		return "Request failed"
	}
	return body.Message
}

// enveloped decodes a {success,data} response into its data.
func enveloped[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env result.Envelope[T]
	if err := c.doJSON(ctx, method, path, authMember, body, &env); err != nil {
		var zero T
		return zero, err
	}
	if !env.Success && env.Error != "" {
		var zero T
		return zero, result.Upstream(http.StatusOK, env.Error)
	}
	return env.Data, nil
}

func memberQuery(path, memberID string) string {
	return path + "?" + url.Values{"member_id": {memberID}}.Encode()
}
