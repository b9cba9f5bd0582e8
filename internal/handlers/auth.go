package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
	"github.com/shopstack-asia/spi-sdb-app/internal/session"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, result.Validation("Email and password are required", nil))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			result.Fail(c, err)
			return
		}
		h.log.Error().Err(err).Str("email", req.Email).Msg("login failed")
		result.Abort(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	userData, err := encodeUserData(res.Profile)
	if err != nil {
		h.log.Error().Err(err).Msg("encode user data cookie")
		result.Abort(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.SetCookies(c, h.cookies, res.SessionToken, userData)

	h.log.Info().Str("member_id", res.Profile.ID).Str("session_id", res.Session.ID).Msg("member logged in")
	result.OKWithMessage(c, "Login successful", loginResponse{Token: res.SessionToken, Profile: res.Profile})
}

// encodeUserData renders the profile as path-escaped JSON. Spaces become %20
// rather than '+', so browser code can read it back with decodeURIComponent.
func encodeUserData(profile models.Profile) (string, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	return url.PathEscape(string(raw)), nil
}

func (h HandlerSet) RegisterMember(c *gin.Context) {
	var form service.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	data, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		if result.KindOf(err) == result.KindValidation {
			result.Fail(c, err)
			return
		}
		h.log.Error().Err(err).Str("email", form.Email).Msg("registration failed")
		result.Abort(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	result.OKWithMessage(c, "Registration successful! Please check your email for verification.", data)
}

// Logout always clears the cookies, even when the stored session is
// already gone.
func (h HandlerSet) Logout(c *gin.Context) {
	token, _ := c.Cookie(session.AccessTokenCookie)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.log.Warn().Err(err).Msg("end session")
	}
	session.ClearCookies(c, h.cookies)
	result.OKWithMessage(c, "Logged out", nil)
}

// Me sits under the public /api/auth prefix, so it resolves the cookie
// itself instead of relying on the gate.
func (h HandlerSet) Me(c *gin.Context) {
	token, err := c.Cookie(session.AccessTokenCookie)
	if err != nil || token == "" {
		result.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	active, err := h.sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			session.ClearCookies(c, h.cookies)
			result.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h.log.Error().Err(err).Msg("session lookup failed")
		result.Abort(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	result.OK(c, active.Profile)
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

func (h HandlerSet) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}
	data, err := h.auth.SendOTP(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, err, "send otp")
		return
	}
	result.OKWithMessage(c, "Verification code sent", data)
}

func (h HandlerSet) VerifyOTP(c *gin.Context) {
	var input service.OTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}
	data, err := h.auth.VerifyOTP(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "verify otp")
		return
	}
	result.OKWithMessage(c, "Email verified", data)
}

// fail logs unclassified and upstream failures before rendering them.
func (h HandlerSet) fail(c *gin.Context, err error, op string) {
	switch result.KindOf(err) {
	case result.KindInternal, result.KindUpstream:
		h.log.Error().Err(err).Str("op", op).Msg("request failed")
	}
	result.Fail(c, err)
}
