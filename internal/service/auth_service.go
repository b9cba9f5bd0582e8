package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

var ErrInvalidCredentials = result.New(result.KindUnauthorized, "Invalid credentials")

// AuthUpstream is the slice of the CS API client used for authentication.
type AuthUpstream interface {
	Login(ctx context.Context, creds csapi.Credentials) (csapi.LoginResult, error)
	Register(ctx context.Context, form any) (json.RawMessage, error)
	SendOTP(ctx context.Context, email string) (json.RawMessage, error)
	VerifyOTP(ctx context.Context, email, otp string) (json.RawMessage, error)
}

type AuthService struct {
	upstream AuthUpstream
	sessions *SessionService
	log      zerolog.Logger
}

func NewAuthService(upstream AuthUpstream, sessions *SessionService, log zerolog.Logger) *AuthService {
	return &AuthService{
		upstream: upstream,
		sessions: sessions,
		log:      log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	SessionToken string
	Profile      models.Profile
	Session      ActiveSession
}

// Login exchanges credentials with the CS API and opens a local session.
// Any upstream rejection, or an upstream success without a token, is
// reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	res, err := s.upstream.Login(ctx, csapi.Credentials{Email: email, Password: input.Password})
	if err != nil {
		if result.KindOf(err) == result.KindUpstream {
			s.log.Info().Str("email", email).Err(err).Msg("upstream rejected login")
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !res.Success || res.Data.Token == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	profile := placeholderProfile(email)
	if p := res.Data.Member(); p != nil {
		profile = *p
	}
	if profile.ID == "" {
		profile.ID = email
	}

	token, session, err := s.sessions.Start(ctx, res.Data.Token, profile)
	if err != nil {
		return AuthResult{}, result.Wrap(result.KindInternal, "start session", err)
	}
	return AuthResult{SessionToken: token, Profile: profile, Session: session}, nil
}

func placeholderProfile(email string) models.Profile {
	first := email
	if i := strings.Index(email, "@"); i > 0 {
		first = email[:i]
	}
	return models.Profile{
		ID:          email,
		Email:       email,
		FirstName:   first,
		MemberType:  models.MemberTypeIndividual,
		MemberLevel: models.MemberLevelBasic,
		IsVerified:  false,
	}
}

type RegistrationForm struct {
	MemberType      models.MemberType `json:"member_type" validate:"required,oneof=INDIVIDUAL CORPORATE"`
	FirstName       string            `json:"first_name" validate:"required,min=2"`
	LastName        string            `json:"last_name" validate:"required,min=2"`
	Email           string            `json:"email" validate:"required,email"`
	Phone           string            `json:"phone" validate:"required,min=10"`
	Password        string            `json:"password" validate:"required,min=8"`
	ConfirmPassword string            `json:"confirm_password,omitempty" validate:"omitempty,eqfield=Password"`
	Address         string            `json:"address" validate:"required,min=5"`
	City            string            `json:"city" validate:"required,min=2"`
	Country         string            `json:"country" validate:"required,min=2"`
	PostalCode      string            `json:"postal_code" validate:"required,min=4"`
	DateOfBirth     string            `json:"date_of_birth,omitempty" validate:"required_if=MemberType INDIVIDUAL"`
	Occupation      string            `json:"occupation,omitempty" validate:"required_if=MemberType INDIVIDUAL"`
	CompanyName     string            `json:"company_name,omitempty" validate:"required_if=MemberType CORPORATE"`
}

// Register validates the form locally and forwards it to the CS API. No
// session is created; the member verifies by email first.
func (s *AuthService) Register(ctx context.Context, form RegistrationForm) (json.RawMessage, error) {
	if err := validateStruct(form); err != nil {
		return nil, err
	}
	form.ConfirmPassword = ""
	return s.upstream.Register(ctx, form)
}

func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.End(ctx, sessionToken)
}

type OTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,min=4"`
}

func (s *AuthService) SendOTP(ctx context.Context, email string) (json.RawMessage, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, result.Validation("Validation failed", map[string]string{"email": "must be a valid email address"})
	}
	return s.upstream.SendOTP(ctx, email)
}

func (s *AuthService) VerifyOTP(ctx context.Context, input OTPInput) (json.RawMessage, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	raw, err := s.upstream.VerifyOTP(ctx, input.Email, input.OTP)
	if err != nil && result.KindOf(err) == result.KindUpstream {
		var e *result.Error
		if errors.As(err, &e) && e.Status < 500 {
			return nil, result.New(result.KindValidation, "Invalid or expired code")
		}
	}
	return raw, err
}
