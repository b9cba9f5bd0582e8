package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/ids"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/security"
)

// ErrNoSession covers every reason a presented token does not resolve:
// bad signature, expiry, or a record that no longer exists.
var ErrNoSession = errors.New("no active session")

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ActiveSession struct {
	ID            string
	MemberID      string
	UpstreamToken string
	Profile       models.Profile
	ExpiresAt     time.Time
}

type SessionService struct {
	store  SessionStore
	sealer *security.Sealer
	secret string
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewSessionService(store SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:  store,
		sealer: security.NewSealer(secret),
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Start records a session for the upstream token and returns the signed
// cookie value that refers to it.
func (s *SessionService) Start(ctx context.Context, upstreamToken string, profile models.Profile) (string, ActiveSession, error) {
	sealed, err := s.sealer.Seal(upstreamToken)
	if err != nil {
		return "", ActiveSession{}, fmt.Errorf("seal upstream token: %w", err)
	}

	now := s.now()
	session := models.Session{
		ID:          ids.New(),
		MemberID:    profile.ID,
		SealedToken: sealed,
		Profile:     profile,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return "", ActiveSession{}, fmt.Errorf("store session: %w", err)
	}

	token, err := security.GenerateSessionToken(s.secret, session.ID, session.MemberID, now, s.ttl)
	if err != nil {
		return "", ActiveSession{}, err
	}

	return token, ActiveSession{
		ID:            session.ID,
		MemberID:      session.MemberID,
		UpstreamToken: upstreamToken,
		Profile:       profile,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (ActiveSession, error) {
	claims, err := security.ParseSessionToken(token, s.secret, s.now)
	if err != nil {
		return ActiveSession{}, ErrNoSession
	}

	session, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ActiveSession{}, ErrNoSession
		}
		return ActiveSession{}, fmt.Errorf("load session: %w", err)
	}
	if session.Expired(s.now()) {
		return ActiveSession{}, ErrNoSession
	}

	upstreamToken, err := s.sealer.Open(session.SealedToken)
	if err != nil {
		s.log.Warn().Str("session_id", session.ID).Msg("sealed token could not be opened")
		return ActiveSession{}, ErrNoSession
	}

	return ActiveSession{
		ID:            session.ID,
		MemberID:      session.MemberID,
		UpstreamToken: upstreamToken,
		Profile:       session.Profile,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

// End removes the session behind token. Unknown or invalid tokens are not an error.
func (s *SessionService) End(ctx context.Context, token string) error {
	claims, err := security.ParseSessionToken(token, s.secret, s.now)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) Sweep(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}
