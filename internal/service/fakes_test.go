package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
)

type fakeUpstream struct {
	loginFn     func(ctx context.Context, creds csapi.Credentials) (csapi.LoginResult, error)
	registerFn  func(ctx context.Context, form any) (json.RawMessage, error)
	sendOTPFn   func(ctx context.Context, email string) (json.RawMessage, error)
	verifyOTPFn func(ctx context.Context, email, otp string) (json.RawMessage, error)

	loginCalls    int
	registerCalls int
}

func (f *fakeUpstream) Login(ctx context.Context, creds csapi.Credentials) (csapi.LoginResult, error) {
	f.loginCalls++
	return f.loginFn(ctx, creds)
}

func (f *fakeUpstream) Register(ctx context.Context, form any) (json.RawMessage, error) {
	f.registerCalls++
	if f.registerFn == nil {
		return json.RawMessage(`{"id":"new"}`), nil
	}
	return f.registerFn(ctx, form)
}

func (f *fakeUpstream) SendOTP(ctx context.Context, email string) (json.RawMessage, error) {
	return f.sendOTPFn(ctx, email)
}

func (f *fakeUpstream) VerifyOTP(ctx context.Context, email, otp string) (json.RawMessage, error) {
	return f.verifyOTPFn(ctx, email, otp)
}

func newTestSessions() *SessionService {
	return NewSessionService(repository.NewMemorySessionStore(time.Minute), "test-secret", 7*24*time.Hour, zerolog.Nop())
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
