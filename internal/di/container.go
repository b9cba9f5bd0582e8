package di

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/cache"
	"github.com/shopstack-asia/spi-sdb-app/internal/config"
	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/database"
	"github.com/shopstack-asia/spi-sdb-app/internal/handlers"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
	"github.com/shopstack-asia/spi-sdb-app/internal/storage"
)

// Container holds everything the portal process needs.
type Container struct {
	// Infrastructure
	Upstream *csapi.Client
	DB       *pgxpool.Pool
	Redis    *redis.Client

	// Repositories
	Facilities    repository.FacilityRepository
	Packages      repository.PackageRepository
	Members       repository.MemberRepository
	Subscriptions repository.SubscriptionRepository
	Bookings      repository.BookingRepository
	Payments      repository.PaymentRepository
	KYCRecords    repository.KYCRepository

	// Services
	Sessions *service.SessionService
	Services handlers.Services

	// Handlers
	Handlers handlers.HandlerSet
}

// NewContainer connects the configured backends and assembles the services.
// On error, anything already opened is closed again.
func NewContainer(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (_ *Container, err error) {
	c := &Container{Upstream: csapi.NewClient(cfg.Upstream)}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	checks := map[string]handlers.Pinger{}

	store, err := c.sessionStore(ctx, cfg, checks)
	if err != nil {
		return nil, err
	}
	c.Sessions = service.NewSessionService(store, cfg.Session.Secret, cfg.Session.TTL, log)

	documents, err := documentStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	checks["storage"] = documents

	c.buildRepositories(cfg)

	c.Services = handlers.Services{
		Auth:       service.NewAuthService(c.Upstream, c.Sessions, log),
		Sessions:   c.Sessions,
		Bookings:   service.NewBookingService(c.Bookings, c.Facilities, log),
		Members:    service.NewMemberService(c.Members, c.Packages, c.Subscriptions, c.Bookings),
		Payments:   service.NewPaymentService(c.Payments),
		KYC:        service.NewKYCService(c.KYCRecords, documents, log),
		Facilities: c.Facilities,
		Packages:   c.Packages,
	}
	c.Handlers = handlers.NewHandlerSet(log, cfg, c.Services, checks)

	log.Info().
		Str("session_backend", cfg.Session.Backend).
		Str("data_source", cfg.Data.Source).
		Bool("object_storage", cfg.Storage.Enabled).
		Msg("container ready")
	return c, nil
}

func (c *Container) sessionStore(ctx context.Context, cfg *config.AppConfig, checks map[string]handlers.Pinger) (service.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		pool, err := database.OpenSessionPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = pool
		checks["sessions"] = pool

		repo := repository.NewSessionRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("session schema: %w", err)
		}
		return repo, nil
	case config.SessionBackendRedis:
		client, err := cache.ConnectSessionRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = client
		checks["sessions"] = cache.Health{Client: client}
		return repository.NewRedisSessionStore(client), nil
	default:
		return repository.NewMemorySessionStore(cfg.Session.SweepInterval), nil
	}
}

type documentBackend interface {
	service.DocumentStore
	handlers.Pinger
}

func documentStore(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (documentBackend, error) {
	if !cfg.Storage.Enabled {
		return storage.NewMemoryStore(cfg.Storage.PublicBaseURL), nil
	}
	objects, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init object store: %w", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Str("bucket", cfg.Storage.BucketKYC).Msg("ensure bucket failed")
	}
	return objects, nil
}

func (c *Container) buildRepositories(cfg *config.AppConfig) {
	if cfg.Data.Source == config.DataSourceUpstream {
		c.Facilities = repository.NewUpstreamFacilityRepository(c.Upstream)
		c.Packages = repository.NewUpstreamPackageRepository(c.Upstream)
		c.Members = repository.NewUpstreamMemberRepository(c.Upstream)
		c.Subscriptions = repository.NewUpstreamSubscriptionRepository(c.Upstream)
		c.Bookings = repository.NewUpstreamBookingRepository(c.Upstream)
		c.Payments = repository.NewUpstreamPaymentRepository(c.Upstream)
		c.KYCRecords = repository.NewUpstreamKYCRepository(c.Upstream)
		return
	}

	c.Facilities = repository.NewMemoryFacilityRepository(repository.SeedFacilities())
	c.Packages = repository.NewMemoryPackageRepository(repository.SeedPackages())
	c.Members = repository.NewMemoryMemberRepository()
	c.Subscriptions = repository.NewMemorySubscriptionRepository(repository.SeedSubscriptions)
	c.Bookings = repository.NewMemoryBookingRepository(repository.SeedBookings)
	c.Payments = repository.NewMemoryPaymentRepository(repository.SeedPayments)
	c.KYCRecords = repository.NewMemoryKYCRepository()
}

func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}
