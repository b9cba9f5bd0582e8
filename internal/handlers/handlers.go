package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shopstack-asia/spi-sdb-app/internal/config"
	"github.com/shopstack-asia/spi-sdb-app/internal/middleware"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
	"github.com/shopstack-asia/spi-sdb-app/internal/session"
)

// Pinger is a backend the health endpoint reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Auth       *service.AuthService
	Sessions   *service.SessionService
	Bookings   *service.BookingService
	Members    *service.MemberService
	Payments   *service.PaymentService
	KYC        *service.KYCService
	Facilities repository.FacilityRepository
	Packages   repository.PackageRepository
}

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	cookies    session.CookieOptions
	auth       *service.AuthService
	sessions   *service.SessionService
	bookings   *service.BookingService
	members    *service.MemberService
	payments   *service.PaymentService
	kyc        *service.KYCService
	facilities repository.FacilityRepository
	packages   repository.PackageRepository
	reference  *cache.Cache
	checks     map[string]Pinger
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, svc Services, checks map[string]Pinger) HandlerSet {
	return HandlerSet{
		log:        log,
		cfg:        cfg,
		cookies:    session.CookieOptions{Secure: cfg.IsProduction()},
		auth:       svc.Auth,
		sessions:   svc.Sessions,
		bookings:   svc.Bookings,
		members:    svc.Members,
		payments:   svc.Payments,
		kyc:        svc.KYC,
		facilities: svc.Facilities,
		packages:   svc.Packages,
		reference:  cache.New(cfg.Cache.ReferenceTTL, 2*cfg.Cache.ReferenceTTL),
		checks:     checks,
	}
}

// Cookies returns the cookie attributes the gate must use when it clears a
// stale session.
func (h HandlerSet) Cookies() session.CookieOptions {
	return h.cookies
}

// RegisterHealth has to run before the gate is installed so probes never
// need a session.
func (h HandlerSet) RegisterHealth(router *gin.RouterGroup) {
	router.GET("/api/healthz", h.Health)
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/", h.Landing)
	router.GET("/member", h.Dashboard)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(rate.Limit(h.cfg.RateLimit.AuthRPS), h.cfg.RateLimit.AuthBurst))
		auth.POST("/login", h.Login)
		auth.POST("/register", h.RegisterMember)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/send-otp", h.SendOTP)
		auth.POST("/verify-otp", h.VerifyOTP)

		reference := middleware.Cache(h.reference, h.cfg.Cache.ReferenceTTL)
		api.GET("/sdb_facility", reference, h.ListFacilities)
		api.GET("/sdb_package", reference, h.ListPackages)

		api.GET("/sdb_member/:id", h.GetMember)
		api.PUT("/sdb_member/:id", h.UpdateMember)

		api.GET("/sdb_subscription", h.ListSubscriptions)
		api.POST("/sdb_subscription", h.CreateSubscription)

		bookings := api.Group("/sdb_booking")
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.POST("/estimate", h.EstimateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBookingStatus)
		bookings.POST("/:id/visitors", h.AddVisitor)
		bookings.DELETE("/:id/visitors/:visitorId", h.RemoveVisitor)
		bookings.POST("/:id/visitors/:visitorId/check-in", h.CheckInVisitor)
		bookings.POST("/:id/visitors/:visitorId/check-out", h.CheckOutVisitor)

		api.GET("/sdb_payment", h.ListPayments)
		api.POST("/sdb_payment", h.CreatePayment)

		api.POST("/sdb_kyc_record", h.SubmitKYC)
	}
}

// requireSession fetches the session the gate attached. Handlers reached
// without one answer 401 themselves.
func requireSession(c *gin.Context) (service.ActiveSession, bool) {
	active, ok := session.Current(c)
	if !ok {
		result.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return service.ActiveSession{}, false
	}
	return active, true
}
