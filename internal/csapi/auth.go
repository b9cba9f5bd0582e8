package csapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload is the part of the CS API login answer the portal reads.
// Older deployments name the profile "user".
type LoginPayload struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile,omitempty"`
	User    *models.Profile `json:"user,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

func (p LoginPayload) Member() *models.Profile {
	if p.Profile != nil {
		return p.Profile
	}
	return p.User
}

type LoginResult struct {
	Success bool
	Data    LoginPayload
}

func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", authService, creds, &raw); err != nil {
		return LoginResult{}, err
	}

	payload := LoginPayload{Raw: raw}
	if len(raw) > 0 {
		// A payload that is not an object simply carries no token.
		_ = json.Unmarshal(raw, &payload)
	}
	return LoginResult{Success: true, Data: payload}, nil
}

func (c *Client) Register(ctx context.Context, form any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/sdb_member", authService, form, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) SendOTP(ctx context.Context, email string) (json.RawMessage, error) {
	var raw json.RawMessage
	body := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/send-otp", authService, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (json.RawMessage, error) {
	var raw json.RawMessage
	body := map[string]string{"email": email, "otp": otp}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", authService, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
