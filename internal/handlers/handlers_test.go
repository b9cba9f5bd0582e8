package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-asia/spi-sdb-app/internal/config"
	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/handlers"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/server"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
	"github.com/shopstack-asia/spi-sdb-app/internal/session"
	"github.com/shopstack-asia/spi-sdb-app/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCSAPI struct {
	login    func(creds csapi.Credentials) (csapi.LoginResult, error)
	register func(form any) (json.RawMessage, error)

	registerCalls int
}

func (f *fakeCSAPI) Login(_ context.Context, creds csapi.Credentials) (csapi.LoginResult, error) {
	return f.login(creds)
}

func (f *fakeCSAPI) Register(_ context.Context, form any) (json.RawMessage, error) {
	f.registerCalls++
	if f.register == nil {
		return json.RawMessage(`{"id":"new-member"}`), nil
	}
	return f.register(form)
}

func (f *fakeCSAPI) SendOTP(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"sent":true}`), nil
}

func (f *fakeCSAPI) VerifyOTP(context.Context, string, string) (json.RawMessage, error) {
	return nil, result.Upstream(http.StatusBadRequest, "expired")
}

var testProfile = models.Profile{
	ID:          "m-1",
	Email:       "john.doe@example.com",
	FirstName:   "John",
	LastName:    "Doe",
	MemberType:  models.MemberTypeIndividual,
	MemberLevel: models.MemberLevelPremium,
	IsVerified:  true,
}

func acceptingCSAPI() *fakeCSAPI {
	return &fakeCSAPI{login: func(csapi.Credentials) (csapi.LoginResult, error) {
		p := testProfile
		return csapi.LoginResult{Success: true, Data: csapi.LoginPayload{Token: "upstream-token", Profile: &p}}, nil
	}}
}

func newTestPortal(t *testing.T, upstream *fakeCSAPI) *gin.Engine {
	t.Helper()
	return newTestPortalIn(t, upstream, "test")
}

// newTestPortalIn builds the portal for the given environment. Production
// flips gin into release mode, so the test mode is restored afterwards.
func newTestPortalIn(t *testing.T, upstream *fakeCSAPI, environment string) *gin.Engine {
	t.Helper()
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	cfg := &config.AppConfig{
		Environment:     environment,
		RateLimit:       config.RateLimitConfig{AuthRPS: 1000, AuthBurst: 1000},
		Cache:           config.CacheConfig{ReferenceTTL: time.Minute},
		FrontendOrigins: []string{"http://localhost:3000"},
	}
	log := zerolog.Nop()

	sessions := service.NewSessionService(repository.NewMemorySessionStore(time.Minute), "test-secret", 7*24*time.Hour, log)
	facilities := repository.NewMemoryFacilityRepository(repository.SeedFacilities())
	packages := repository.NewMemoryPackageRepository(repository.SeedPackages())
	bookings := repository.NewMemoryBookingRepository(repository.SeedBookings)
	documents := storage.NewMemoryStore("http://files.test")

	svc := handlers.Services{
		Auth:       service.NewAuthService(upstream, sessions, log),
		Sessions:   sessions,
		Bookings:   service.NewBookingService(bookings, facilities, log),
		Members:    service.NewMemberService(repository.NewMemoryMemberRepository(), packages, repository.NewMemorySubscriptionRepository(repository.SeedSubscriptions), bookings),
		Payments:   service.NewPaymentService(repository.NewMemoryPaymentRepository(repository.SeedPayments)),
		KYC:        service.NewKYCService(repository.NewMemoryKYCRepository(), documents, log),
		Facilities: facilities,
		Packages:   packages,
	}
	handlerSet := handlers.NewHandlerSet(log, cfg, svc, map[string]handlers.Pinger{"storage": documents})
	return server.NewEngine(cfg, log, handlerSet, sessions)
}

func doJSON(engine *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func responseCookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func login(t *testing.T, engine *gin.Engine) *http.Cookie {
	t.Helper()
	w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": testProfile.Email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie, ok := responseCookies(w)[session.AccessTokenCookie]
	require.True(t, ok)
	return cookie
}

func TestLoginSetsSessionCookies(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())

	w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": testProfile.Email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)

	var data struct {
		Token   string         `json:"token"`
		Profile models.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.NotEqual(t, "upstream-token", data.Token)
	assert.Equal(t, testProfile, data.Profile)

	cookies := responseCookies(w)
	access, ok := cookies[session.AccessTokenCookie]
	require.True(t, ok)
	assert.Equal(t, data.Token, access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, 7*24*60*60, access.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.False(t, access.Secure)

	userData, ok := cookies[session.UserDataCookie]
	require.True(t, ok)
	raw, err := url.PathUnescape(userData.Value)
	require.NoError(t, err)
	var profile models.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &profile))
	assert.Equal(t, testProfile, profile)
}

func TestUserDataCookieEscapesSpacesAsPercent20(t *testing.T) {
	upstream := &fakeCSAPI{login: func(csapi.Credentials) (csapi.LoginResult, error) {
		p := testProfile
		p.FirstName = "Mary Ann"
		p.LastName = "O'Neil+Smith"
		return csapi.LoginResult{Success: true, Data: csapi.LoginPayload{Token: "upstream-token", Profile: &p}}, nil
	}}
	engine := newTestPortal(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": testProfile.Email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	userData, ok := responseCookies(w)[session.UserDataCookie]
	require.True(t, ok)
	assert.Contains(t, userData.Value, "Mary%20Ann")
	assert.NotContains(t, userData.Value, "Mary+Ann")

	raw, err := url.PathUnescape(userData.Value)
	require.NoError(t, err)
	var profile models.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &profile))
	assert.Equal(t, "Mary Ann", profile.FirstName)
	assert.Equal(t, "O'Neil+Smith", profile.LastName)
}

func TestProductionCookiesAreSecure(t *testing.T) {
	engine := newTestPortalIn(t, acceptingCSAPI(), "production")

	w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": testProfile.Email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	issued := responseCookies(w)
	require.Contains(t, issued, session.AccessTokenCookie)
	require.Contains(t, issued, session.UserDataCookie)
	for name, c := range issued {
		assert.True(t, c.Secure, name)
		assert.True(t, c.HttpOnly, name)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite, name)
	}

	w = doJSON(engine, http.MethodPost, "/api/auth/logout", nil, issued[session.AccessTokenCookie])
	require.Equal(t, http.StatusOK, w.Code)
	cleared := responseCookies(w)
	require.Len(t, cleared, 2)
	for name, c := range cleared {
		assert.True(t, c.Secure, name)
		assert.Less(t, c.MaxAge, 0, name)
	}

	w = doJSON(engine, http.MethodGet, "/api/sdb_booking", nil, &http.Cookie{Name: session.AccessTokenCookie, Value: "not-a-session"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	cleared = responseCookies(w)
	require.Len(t, cleared, 2)
	for name, c := range cleared {
		assert.True(t, c.Secure, name)
		assert.Less(t, c.MaxAge, 0, name)
	}
}

func TestLoginFailuresSetNoCookies(t *testing.T) {
	cases := []struct {
		name       string
		login      func(csapi.Credentials) (csapi.LoginResult, error)
		wantStatus int
		wantError  string
	}{
		{
			name: "upstream rejects",
			login: func(csapi.Credentials) (csapi.LoginResult, error) {
				return csapi.LoginResult{}, result.Upstream(http.StatusUnauthorized, "bad password")
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name: "success without token",
			login: func(csapi.Credentials) (csapi.LoginResult, error) {
				return csapi.LoginResult{Success: true}, nil
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name: "transport failure",
			login: func(csapi.Credentials) (csapi.LoginResult, error) {
				return csapi.LoginResult{}, result.Wrap(result.KindInternal, "call cs api", errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestPortal(t, &fakeCSAPI{login: tc.login})
			w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.co", "password": "x"})

			assert.Equal(t, tc.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantError, env.Error)
			assert.Empty(t, w.Header().Values("Set-Cookie"))
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	w := doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func validRegistration() map[string]string {
	return map[string]string{
		"member_type":      "INDIVIDUAL",
		"first_name":       "Jane",
		"last_name":        "Doe",
		"email":            "jane@example.com",
		"phone":            "0812345678",
		"password":         "password123",
		"confirm_password": "password123",
		"address":          "99 Silom Road",
		"city":             "Bangkok",
		"country":          "Thailand",
		"postal_code":      "10500",
		"date_of_birth":    "1990-01-01",
		"occupation":       "Engineer",
	}
}

func TestRegister(t *testing.T) {
	t.Run("validation failure never reaches upstream", func(t *testing.T) {
		upstream := acceptingCSAPI()
		engine := newTestPortal(t, upstream)

		form := validRegistration()
		delete(form, "occupation")
		form["email"] = "nope"

		w := doJSON(engine, http.MethodPost, "/api/auth/register", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, "Validation failed", env.Error)
		assert.Contains(t, env.Details, "email")
		assert.Contains(t, env.Details, "occupation")
		assert.Equal(t, 0, upstream.registerCalls)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("success", func(t *testing.T) {
		upstream := acceptingCSAPI()
		engine := newTestPortal(t, upstream)

		w := doJSON(engine, http.MethodPost, "/api/auth/register", validRegistration())
		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.Equal(t, "Registration successful! Please check your email for verification.", env.Message)
		assert.Equal(t, 1, upstream.registerCalls)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := acceptingCSAPI()
		upstream.register = func(any) (json.RawMessage, error) {
			return nil, result.Upstream(http.StatusConflict, "email exists")
		}
		engine := newTestPortal(t, upstream)

		w := doJSON(engine, http.MethodPost, "/api/auth/register", validRegistration())
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Registration failed", decode(t, w).Error)
	})
}

func TestLogoutEndsSession(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	w := doJSON(engine, http.MethodGet, "/api/sdb_booking", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := responseCookies(w)
	require.Contains(t, cleared, session.AccessTokenCookie)
	require.Contains(t, cleared, session.UserDataCookie)
	assert.Less(t, cleared[session.AccessTokenCookie].MaxAge, 0)
	assert.Less(t, cleared[session.UserDataCookie].MaxAge, 0)

	w = doJSON(engine, http.MethodGet, "/api/sdb_booking", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())

	w := doJSON(engine, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := login(t, engine)
	w = doJSON(engine, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Profile
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &profile))
	assert.Equal(t, testProfile.ID, profile.ID)
}

func TestVerifyOTPRejection(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	w := doJSON(engine, http.MethodPost, "/api/auth/verify-otp", map[string]string{"email": "a@b.co", "otp": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired code", decode(t, w).Error)
}

func TestGateOnPortalRoutes(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())

	w := doJSON(engine, http.MethodGet, "/api/sdb_facility", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(engine, http.MethodGet, "/member", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fmember", w.Header().Get("Location"))

	w = doJSON(engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReferenceDataIsCached(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	first := doJSON(engine, http.MethodGet, "/api/sdb_facility", nil, cookie)
	require.Equal(t, http.StatusOK, first.Code)
	var facilities []models.Facility
	require.NoError(t, json.Unmarshal(decode(t, first).Data, &facilities))
	assert.Len(t, facilities, 3)

	second := doJSON(engine, http.MethodGet, "/api/sdb_facility", nil, cookie)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestMemberRecordIsOwnOnly(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	w := doJSON(engine, http.MethodGet, "/api/sdb_member/m-1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodGet, "/api/sdb_member/someone-else", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodPut, "/api/sdb_member/m-1", map[string]string{"phone": "+66 999 999 999"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Member updated successfully", env.Message)
	var member models.Member
	require.NoError(t, json.Unmarshal(env.Data, &member))
	assert.Equal(t, "m-1", member.ID)
	assert.Equal(t, "+66 999 999 999", member.Phone)
}

func TestBookingVisitorFlow(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	form := map[string]any{
		"facility_id":  "1",
		"booking_date": "2030-01-10",
		"start_time":   "09:00",
		"end_time":     "11:30",
		"purpose":      "Quarterly vault review",
		"visitors": []map[string]string{{
			"full_name":     "Somchai Jaidee",
			"id_type":       "NATIONAL_ID",
			"id_number":     "1100700012345",
			"relationship":  "Partner",
			"visit_purpose": "Document signing",
		}},
	}
	w := doJSON(engine, http.MethodPost, "/api/sdb_booking", form, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &booking))
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 3000.0, booking.TotalCost)
	require.Len(t, booking.Visitors, 1)

	base := "/api/sdb_booking/" + booking.ID + "/visitors/" + booking.Visitors[0].ID

	w = doJSON(engine, http.MethodPost, base+"/check-out", nil, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(engine, http.MethodPost, base+"/check-in", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var visitor models.Visitor
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &visitor))
	assert.Equal(t, models.VisitorStatusCheckedIn, visitor.Status)
	assert.NotNil(t, visitor.CheckInTime)

	w = doJSON(engine, http.MethodPost, base+"/check-in", nil, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(engine, http.MethodPost, base+"/check-out", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &visitor))
	assert.Equal(t, models.VisitorStatusCheckedOut, visitor.Status)
	require.NotNil(t, visitor.CheckOutTime)
	assert.True(t, visitor.CheckOutTime.After(*visitor.CheckInTime))

	w = doJSON(engine, http.MethodGet, "/api/sdb_booking/"+booking.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &booking))
	assert.Equal(t, models.VisitorStatusCheckedOut, booking.Visitors[0].Status)
}

func TestBookingRejectsInvertedTimes(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	w := doJSON(engine, http.MethodPost, "/api/sdb_booking/estimate", map[string]string{
		"facility_id": "1",
		"start_time":  "11:00",
		"end_time":    "09:00",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(engine, http.MethodPost, "/api/sdb_booking/estimate", map[string]string{
		"facility_id": "3",
		"start_time":  "09:00",
		"end_time":    "10:15",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var estimate service.Estimate
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &estimate))
	assert.Equal(t, 2, estimate.BilledHours)
	assert.Equal(t, 1000.0, estimate.TotalCost)
}

func TestPaymentFilters(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	all := doJSON(engine, http.MethodGet, "/api/sdb_payment", nil, cookie)
	require.Equal(t, http.StatusOK, all.Code)
	var summary service.PaymentSummary
	require.NoError(t, json.Unmarshal(decode(t, all).Data, &summary))

	completed := doJSON(engine, http.MethodGet, "/api/sdb_payment?status=completed", nil, cookie)
	require.Equal(t, http.StatusOK, completed.Code)
	var filtered service.PaymentSummary
	require.NoError(t, json.Unmarshal(decode(t, completed).Data, &filtered))

	for _, p := range filtered.Payments {
		assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	}
	assert.LessOrEqual(t, len(filtered.Payments), len(summary.Payments))
	assert.Equal(t, summary.CompletedTotal, filtered.CompletedTotal)
	assert.Equal(t, summary.PendingTotal, filtered.PendingTotal)
}

func TestSubmitKYC(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	submit := func(content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("document_type", "PASSPORT"))
		require.NoError(t, mw.WriteField("document_number", "P123456789"))
		part, err := mw.CreateFormFile("document_image", "passport.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/sdb_kyc_record", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 64)...)
	w := submit(png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var record models.KYCRecord
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &record))
	assert.Equal(t, models.VerificationStatusPending, record.VerificationStatus)
	assert.Contains(t, record.DocumentImageURL, "http://files.test/kyc/m-1/")

	w = submit([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardPage(t *testing.T) {
	engine := newTestPortal(t, acceptingCSAPI())
	cookie := login(t, engine)

	w := doJSON(engine, http.MethodGet, "/member", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard service.Dashboard
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &dashboard))
	assert.Equal(t, testProfile.ID, dashboard.Profile.ID)
	assert.NotNil(t, dashboard.ActiveSubscription)
}
