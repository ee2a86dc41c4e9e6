package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/repository"
	"github.com/braian-rent/braian-api/internal/infrastructure/memory"
	"github.com/braian-rent/braian-api/internal/infrastructure/metrics"
	apphttp "github.com/braian-rent/braian-api/internal/interfaces/http"
	"github.com/braian-rent/braian-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: app completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID  = "00000000-0000-0000-0000-0000000000a1"
	otherID  = "00000000-0000-0000-0000-0000000000b2"
	tenantID = "00000000-0000-0000-0000-0000000000c3"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type fakeRenderer struct{}

func (fakeRenderer) RenderStatement(_ context.Context, data ports.StatementData) ([]byte, error) {
	return []byte("%PDF-" + data.Property.Address), nil
}

type envOptions struct {
	flags      config.FeatureFlags
	db         usecase.Pinger
	rateLimit  int
	properties repository.PropertyRepository // por defecto el del almacén
	reporter   apphttp.ErrorReporter
}

// recordingReporter guarda los errores enviados al reporte.
type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Capture(err error, _ map[string]string) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *recordingReporter) captured() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// failingPropertyRepo falla al listar.
type failingPropertyRepo struct {
	repository.PropertyRepository
	err error
}

func (f failingPropertyRepo) ListByOwner(context.Context, string, time.Time) ([]*entity.PropertyDetails, error) {
	return nil, f.err
}

type testEnv struct {
	app     *fiber.App
	store   *memory.Store
	auth    *auth.AuthUseCase
	metrics *metrics.Memory
}

func newEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	store := memory.NewStore(time.UTC)
	m := metrics.NewMemory()
	authUC := newAuthUseCase(store)
	features := usecase.NewFeatureService(opts.flags)
	var propertyRepo repository.PropertyRepository = store.Properties()
	if opts.properties != nil {
		propertyRepo = opts.properties
	}
	props := usecase.NewPropertyUseCase(propertyRepo, usecase.PropertyDeps{
		Metrics:    m,
		Statements: fakeRenderer{},
		Users:      store.Users(),
		Leases:     store.Leases(),
		Location:   time.UTC,
	})
	health := usecase.NewHealthUseCase(opts.db, m, features, usecase.HealthInfo{Version: "test", Environment: "test"})

	app := apphttp.NewApp(apphttp.ServerConfig{
		SessionSecret:   testJWTSecret,
		RateLimitMax:    opts.rateLimit,
		RateLimitWindow: time.Minute,
		Metrics:         m,
		Log:             zerolog.Nop(),
		Reporter:        opts.reporter,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		Auth:       authUC,
		Properties: props,
		Health:     health,
		Features:   features,
		Cookie:     apphttp.SessionCookie{Name: testCookie},
		Location:   time.UTC,
		Log:        zerolog.Nop(),
		Reporter:   opts.reporter,
	})

	ctx := context.Background()
	now := time.Now()
	for _, u := range []*entity.User{
		{ID: ownerID, Email: "marek@example.com", Name: "Marek Nowak", Role: entity.RoleOwner, CreatedAt: now},
		{ID: otherID, Email: "ewa@example.com", Name: "Ewa Kowal", Role: entity.RoleOwner, CreatedAt: now},
		{ID: tenantID, Email: "anna@example.com", Name: "Anna Kowalska", Phone: "+48 600 100 200", Role: entity.RoleTenant, CreatedAt: now},
	} {
		require.NoError(t, store.Users().Create(ctx, u))
	}
	return &testEnv{app: app, store: store, auth: authUC, metrics: m}
}

func (e *testEnv) bearer(t *testing.T, userID, role, name string) string {
	t.Helper()
	tok, err := e.auth.IssueToken(&auth.SessionIdentity{UserID: userID, Role: role, Name: name, Email: "x@example.com"})
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) addProperty(t *testing.T, id, owner string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, e.store.Properties().Create(context.Background(), &entity.Property{
		ID: id, OwnerID: owner, Address: "ul. Poznańska 12/3", City: "Warszawa", PostalCode: "00-680",
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (e *testEnv) addActiveLease(t *testing.T, propertyID string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, e.store.Leases().Create(context.Background(), &entity.Lease{
		ID: "lease-" + propertyID, PropertyID: propertyID, OwnerID: ownerID, TenantID: tenantID,
		StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(1, 0, 0), RentAmount: decimal.NewFromInt(2500),
	}))
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func formRequest(path string, values url.Values, authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func jsonRequest(method, path, body, authHeader string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func decodeResult(t *testing.T, resp *http.Response) dto.Result {
	t.Helper()
	defer resp.Body.Close()
	var out dto.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_JSONCreaPropietario(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"nowy@example.com","password":"TestPassword123!","name":"Jan Nowy","phone":"+48 500 000 000"}`, ""))
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body dto.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "nowy@example.com", body.User.Email)
}

func TestRegister_EmailDuplicadoYPasswordCorto(t *testing.T) {
	env := newEnv(t, envOptions{})

	resp := env.do(t, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"MAREK@example.com","password":"TestPassword123!","name":"Marek","phone":"1"}`, ""))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.MsgEmailExists, body.Error)

	resp = env.do(t, jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"krotki@example.com","password":"short","name":"Jan","phone":"1"}`, ""))
	body = decodeResult(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Error, "8")
}

func TestLogin_JSONEmiteCookieDeSesion(t *testing.T) {
	env := newEnv(t, envOptions{})
	_, err := env.auth.Register(context.Background(), dto.RegisterRequest{
		Email: "jan@example.com", Password: "TestPassword123!", Name: "Jan Nowy", Phone: "1",
	})
	require.NoError(t, err)

	resp := env.do(t, jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"jan@example.com","password":"TestPassword123!"}`, ""))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, testCookie+"=")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Lax")

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	// La cookie (cifrada) abre la sesión sin header Authorization.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	sess := env.do(t, req)
	defer sess.Body.Close()
	var body struct {
		Success bool                 `json:"success"`
		Data    *dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(sess.Body).Decode(&body))
	require.NotNil(t, body.Data)
	assert.Equal(t, "jan@example.com", body.Data.Email)
	assert.Equal(t, entity.RoleOwner, body.Data.Role)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, jsonRequest(http.MethodPost, "/auth/login", `{"email":"marek@example.com","password":"zla"}`, ""))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.MsgInvalidCredential, body.Error)
}

func TestLogin_FormularioRespetaSoloCallbacksRelativos(t *testing.T) {
	env := newEnv(t, envOptions{})
	_, err := env.auth.Register(context.Background(), dto.RegisterRequest{
		Email: "jan@example.com", Password: "TestPassword123!", Name: "Jan Nowy", Phone: "1",
	})
	require.NoError(t, err)

	cases := map[string]string{
		"/dashboard?property=1":    "/dashboard?property=1",
		"https://evil.example.com": "/dashboard",
		"//evil.example.com":       "/dashboard",
		"":                         "/dashboard",
	}
	for callback, want := range cases {
		resp := env.do(t, formRequest("/auth/login", url.Values{
			"email": {"jan@example.com"}, "password": {"TestPassword123!"}, "callbackUrl": {callback},
		}, ""))
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, callback)
		assert.Equal(t, want, resp.Header.Get("Location"), callback)
	}
}

func TestSession_SinSesionDevuelveNull(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":true,"data":null}`, string(raw))
}

func TestLoginPage_ConSesionRedirigeAlPanel(t *testing.T) {
	env := newEnv(t, envOptions{})
	for _, path := range []string{"/auth/login", "/auth/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
		resp := env.do(t, req)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"), path)
	}

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Logowanie")
}

func TestLogout_BorraCookie(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), testCookie+"=")
}

// ──────────────────────────────────────────────────────────────────────────────
// API de propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestAPIProperties_SinSesion401(t *testing.T) {
	env := newEnv(t, envOptions{})
	before := env.store.Calls()
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, before, env.store.Calls())
}

func TestAPIProperties_SoloLasDelPropietario(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-own", ownerID)
	env.addProperty(t, "p-other", otherID)
	env.addActiveLease(t, "p-own")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := env.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                          `json:"success"`
		Data    []dto.PropertyDetailsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p-own", body.Data[0].ID)
	require.NotNil(t, body.Data[0].Tenant)
	assert.Equal(t, "Anna Kowalska", body.Data[0].Tenant.Name)
}

func TestAPIProperty_AjenaEs404(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-other", otherID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/p-other", nil)
	req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := env.do(t, req)
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.MsgPropertyNotFound, body.Error)
}

func TestAPIStatement_DevuelvePDF(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-own", ownerID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/p-own/statement.pdf", nil)
	req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := env.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "zestawienie-p-own.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestAnalyticsSummary_SegunBandera(t *testing.T) {
	off := newEnv(t, envOptions{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	req.Header.Set("Authorization", off.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := off.do(t, req)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	on := newEnv(t, envOptions{flags: config.FeatureFlags{Analytics: true}})
	on.addProperty(t, "p-own", ownerID)
	on.addActiveLease(t, "p-own")
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	req.Header.Set("Authorization", on.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp = on.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data dto.PortfolioSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.Properties)
	assert.Equal(t, 1, body.Data.Occupied)
	assert.InDelta(t, 2500.0, body.Data.MonthlyRent, 0.001)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acciones de formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestActionCreate_SinSesion(t *testing.T) {
	env := newEnv(t, envOptions{})
	before := env.store.Calls()
	resp := env.do(t, formRequest("/actions/properties/create", url.Values{
		"address": {"ul. Długa 1"}, "city": {"Kraków"}, "postalCode": {"30-001"},
	}, ""))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.MsgCreateUnauthenticated, body.Error)
	assert.Equal(t, before, env.store.Calls())
}

func TestActionCreate_InquilinoNoPuede(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, formRequest("/actions/properties/create", url.Values{
		"address": {"ul. Długa 1"}, "city": {"Kraków"}, "postalCode": {"30-001"},
	}, env.bearer(t, tenantID, entity.RoleTenant, "Anna Kowalska")))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestActionCreate_ValidaYCrea(t *testing.T) {
	env := newEnv(t, envOptions{})
	authz := env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak")

	resp := env.do(t, formRequest("/actions/properties/create", url.Values{
		"address": {"ul. Długa 1"}, "city": {"Kraków"}, "postalCode": {"30001"},
	}, authz))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "postalCode", body.Field)

	resp = env.do(t, formRequest("/actions/properties/create", url.Values{
		"address": {"ul. Długa 1"}, "city": {"Kraków"}, "postalCode": {"30-001"},
	}, authz))
	body = decodeResult(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, body.Success)

	list, err := env.store.Properties().ListByOwner(context.Background(), ownerID, time.Now())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kraków", list[0].City)
}

func TestActionUpdate_ParcialYAjena(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-own", ownerID)
	env.addProperty(t, "p-other", otherID)
	authz := env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak")

	resp := env.do(t, formRequest("/actions/properties/update", url.Values{
		"propertyId": {"p-own"}, "city": {"Gdańsk"},
	}, authz))
	body := decodeResult(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	p, err := env.store.Properties().GetByOwner(context.Background(), "p-own", ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Gdańsk", p.City)
	assert.Equal(t, "ul. Poznańska 12/3", p.Address, "el campo ausente no cambia")

	resp = env.do(t, formRequest("/actions/properties/update", url.Values{
		"propertyId": {"p-other"}, "city": {"Gdańsk"},
	}, authz))
	body = decodeResult(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.MsgPropertyNotFound, body.Error)
}

func TestActionUpdate_CampoVacioPresenteSeValida(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-own", ownerID)

	resp := env.do(t, formRequest("/actions/properties/update", url.Values{
		"propertyId": {"p-own"}, "address": {""},
	}, env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak")))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "address", body.Field)
}

func TestActionDelete(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-rented", ownerID)
	env.addActiveLease(t, "p-rented")
	env.addProperty(t, "p-free", ownerID)
	authz := env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak")

	resp := env.do(t, formRequest("/actions/properties/delete", url.Values{"propertyId": {"p-rented"}}, authz))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, apphttp.MsgActiveLease, body.Error)

	resp = env.do(t, formRequest("/actions/properties/delete", url.Values{"propertyId": {"nie-istnieje"}}, authz))
	body = decodeResult(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.MsgDeleteNotFound, body.Error)

	resp = env.do(t, formRequest("/actions/properties/delete", url.Values{"propertyId": {"p-free"}}, authz))
	body = decodeResult(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, apphttp.MsgDeleted, body.Message)

	p, err := env.store.Properties().GetByOwner(context.Background(), "p-free", ownerID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_RenderizaPropiedadSeleccionada(t *testing.T) {
	env := newEnv(t, envOptions{})
	env.addProperty(t, "p-own", ownerID)
	env.addActiveLease(t, "p-own")

	for _, q := range []string{"", "?property=99", "?property=-3"} {
		req := httptest.NewRequest(http.MethodGet, "/dashboard"+q, nil)
		req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
		resp := env.do(t, req)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode, q)
		html := string(raw)
		assert.Contains(t, html, "Zalogowany jako Marek Nowak", q)
		assert.Contains(t, html, "ul. Poznańska 12/3", q)
		assert.Contains(t, html, "Anna Kowalska", q)
		assert.Contains(t, html, ">AK<", q)
	}
}

func TestDashboard_SinPropiedades(t *testing.T) {
	env := newEnv(t, envOptions{})
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := env.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Dodaj nieruchomość")
}

func TestDashboard_ErrorDeListadoSeReportaUnaVez(t *testing.T) {
	dbErr := errors.New("conexión perdida")
	reporter := &recordingReporter{}
	env := newEnv(t, envOptions{
		properties: failingPropertyRepo{err: dbErr},
		reporter:   reporter,
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", env.bearer(t, ownerID, entity.RoleOwner, "Marek Nowak"))
	resp := env.do(t, req)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), apphttp.MsgFetchPropertiesFailed)

	errs := reporter.captured()
	require.Len(t, errs, 1, "un fallo produce un único reporte")
	assert.ErrorIs(t, errs[0], dbErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y middlewares
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_CabecerasYRequestID(t *testing.T) {
	env := newEnv(t, envOptions{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp := env.do(t, req)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	assert.NotEmpty(t, resp.Header.Get("X-Response-Time"))

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, usecase.HealthHealthy, body.Status)
	assert.Equal(t, usecase.HealthUnknown, body.Services.Database.Status)
}

func TestHealthReady_BaseCaida503(t *testing.T) {
	env := newEnv(t, envOptions{db: pingerFunc(func(context.Context) error { return errors.New("down") })})
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), "se genera un id si no viene")
}

func TestMetricas_RegistranPeticiones(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))
	resp.Body.Close()
	resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	resp.Body.Close()

	snap := env.metrics.Snapshot()
	assert.Equal(t, int64(2), snap.Requests.Total)
	assert.Equal(t, int64(1), snap.Requests.ClientErrors)
}

func TestRateLimit_Devuelve429(t *testing.T) {
	env := newEnv(t, envOptions{rateLimit: 2})
	var last *http.Response
	for i := 0; i < 3; i++ {
		last = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))
		if i < 2 {
			last.Body.Close()
		}
	}
	body := decodeResult(t, last)
	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	assert.Equal(t, dto.CodeRateLimited, body.Code)

	// Las sondas de salud no cuentan para el límite.
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRutaInexistente_API404JSON(t *testing.T) {
	env := newEnv(t, envOptions{})
	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/nada", nil))
	body := decodeResult(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, dto.CodeNotFound, body.Code)
}
