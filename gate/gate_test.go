package gate_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-console-gateway/gate"
	"github.com/jrsteele09/go-console-gateway/internal/metrics"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *sessions.Store
	gate    *gate.Gate
	metrics *metrics.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()
	codec, err := sessions.NewCodec([]byte("gate-test-secret"), 0)
	require.NoError(t, err)
	store := sessions.NewStore(codec, sessions.StoreConfig{})

	routes, err := gate.ParseRoleRoutes(map[string][]string{
		"admin":   {"/", "/services/*", "/bookings/*", "/captains/*", "/customers/*", "/unauthorized"},
		"captain": {"/pos/*", "/table", "/unauthorized"},
		"R":       {"/services/*"},
	})
	require.NoError(t, err)

	m := metrics.New()
	g, err := gate.New(gate.Config{
		Store:   store,
		Routes:  routes,
		Public:  []string{"/login"},
		Metrics: m,
	})
	require.NoError(t, err)
	return &fixture{store: store, gate: g, metrics: m}
}

func (f *fixture) session(t *testing.T, role string) *sessions.Session {
	t.Helper()
	return &sessions.Session{
		Principal:   sessions.Principal{Name: "Test", Email: "t@example.com", Role: role},
		Credentials: sessions.Credentials{Access: "a", Refresh: "r"},
		IssuedAt:    time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func (f *fixture) cookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	signed, err := f.store.Codec().Encode(sessions.Principal{Name: "Test", Role: role}, sessions.Credentials{Access: "a"})
	require.NoError(t, err)
	return &http.Cookie{Name: f.store.CookieName(), Value: signed}
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := gate.New(gate.Config{})
	require.Error(t, err)
}

func TestDecide(t *testing.T) {
	f := setup(t)

	t.Run("public without session", func(t *testing.T) {
		d := f.gate.Decide("/login", nil)
		require.Equal(t, gate.PublicUnauthenticated, d.State)
		require.Empty(t, d.Redirect)
		require.True(t, d.State.Allowed())
	})

	t.Run("public with session", func(t *testing.T) {
		d := f.gate.Decide("/login", f.session(t, "admin"))
		require.Equal(t, gate.PublicAuthenticated, d.State)
		require.Equal(t, "/", d.Redirect)
		require.False(t, d.State.Allowed())
	})

	t.Run("protected without session", func(t *testing.T) {
		for _, p := range []string{"/", "/services/42", "/customers/a b?", "/bookings/7/edit"} {
			d := f.gate.Decide(p, nil)
			require.Equal(t, gate.ProtectedUnauthenticated, d.State)

			u, err := url.Parse(d.Redirect)
			require.NoError(t, err)
			require.Equal(t, "/login", u.Path)
			require.Equal(t, p, u.Query().Get("next"))
		}
	})

	t.Run("authorized", func(t *testing.T) {
		d := f.gate.Decide("/bookings/9", f.session(t, "admin"))
		require.Equal(t, gate.ProtectedAuthorized, d.State)
		require.Empty(t, d.Redirect)
	})

	t.Run("unauthorized", func(t *testing.T) {
		d := f.gate.Decide("/bookings/9", f.session(t, "captain"))
		require.Equal(t, gate.ProtectedUnauthorized, d.State)
		require.Equal(t, "/unauthorized", d.Redirect)
	})

	t.Run("unknown role", func(t *testing.T) {
		d := f.gate.Decide("/", f.session(t, "intruder"))
		require.Equal(t, gate.ProtectedUnauthorized, d.State)
	})

	t.Run("unauthorized page for any role", func(t *testing.T) {
		for _, role := range []string{"customer", "", "captain"} {
			d := f.gate.Decide("/unauthorized", f.session(t, role))
			require.Equal(t, gate.ProtectedAuthorized, d.State, role)
			require.Empty(t, d.Redirect, role)
		}
		require.Equal(t, gate.ProtectedUnauthenticated, f.gate.Decide("/unauthorized", nil).State)
	})

	t.Run("prefix role", func(t *testing.T) {
		s := f.session(t, "R")
		for _, p := range []string{"/services", "/services/42", "/services/42/edit"} {
			require.Equal(t, gate.ProtectedAuthorized, f.gate.Decide(p, s).State, p)
		}
		require.Equal(t, gate.ProtectedUnauthorized, f.gate.Decide("/servicesX", s).State)
	})
}

func TestMiddleware(t *testing.T) {
	f := setup(t)

	var (
		called bool
		gotReq *http.Request
	)
	handler := f.gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotReq = r
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(r *http.Request) *httptest.ResponseRecorder {
		called, gotReq = false, nil
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	t.Run("login page without session passes through", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("login page with session redirects home", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		r.AddCookie(f.cookie(t, "admin"))
		rec := serve(r)
		require.False(t, called)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("protected without session redirects to login", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/customers/12", nil))
		require.False(t, called)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		u, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "/login", u.Path)
		require.Equal(t, "/customers/12", u.Query().Get("next"))
	})

	t.Run("invalid cookie is treated as no session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/customers", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "forged"})
		rec := serve(r)
		require.False(t, called)
		require.Contains(t, rec.Header().Get("Location"), "/login?next=")
	})

	t.Run("authorized request carries role and device", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/services/42", nil)
		r.AddCookie(f.cookie(t, "admin"))
		r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1")
		rec := serve(r)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)

		role, ok := gate.RoleFromContext(gotReq.Context())
		require.True(t, ok)
		require.Equal(t, "admin", role)
		require.Equal(t, gate.DeviceMobile, gate.DeviceFromContext(gotReq.Context()))
		require.Equal(t, "admin", gotReq.Header.Get(gate.HeaderUserRole))
		require.Equal(t, "mobile", gotReq.Header.Get(gate.HeaderDeviceType))

		session, ok := sessions.FromContext(gotReq.Context())
		require.True(t, ok)
		require.Equal(t, "admin", session.Principal.Role)
	})

	t.Run("wrong role redirects to unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/services", nil)
		r.AddCookie(f.cookie(t, "captain"))
		rec := serve(r)
		require.False(t, called)
		require.Equal(t, "/unauthorized", rec.Header().Get("Location"))
	})

	t.Run("spoofed role header is dropped", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		r.Header.Set(gate.HeaderUserRole, "admin")
		serve(r)
		require.True(t, called)
		require.Empty(t, gotReq.Header.Get(gate.HeaderUserRole))
		_, ok := gate.RoleFromContext(gotReq.Context())
		require.False(t, ok)
	})

	t.Run("htmx redirect", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		r.Header.Set("HX-Request", "true")
		rec := serve(r)
		require.False(t, called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "/login?next=%2Fbookings", rec.Header().Get("HX-Redirect"))
	})

	t.Run("static assets bypass the gate", func(t *testing.T) {
		for _, p := range []string{"/logo.png", "/css/app.css", "/_next/static/chunk.js", "/api/health", "/metrics", "/healthz"} {
			rec := serve(httptest.NewRequest(http.MethodGet, p, nil))
			assert.True(t, called, p)
			assert.Equal(t, http.StatusOK, rec.Code, p)
		}
	})

	t.Run("bypassed paths keep the session without a role", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/services/DC.json", nil)
		r.AddCookie(f.cookie(t, "admin"))
		r.Header.Set(gate.HeaderUserRole, "admin")
		rec := serve(r)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)

		session, ok := sessions.FromContext(gotReq.Context())
		require.True(t, ok)
		require.Equal(t, "admin", session.Principal.Role)
		require.Empty(t, gotReq.Header.Get(gate.HeaderUserRole))
		_, ok = gate.RoleFromContext(gotReq.Context())
		require.False(t, ok)
	})

	t.Run("bypassed paths without a cookie have no session", func(t *testing.T) {
		serve(httptest.NewRequest(http.MethodGet, "/services/DC.json", nil))
		require.True(t, called)
		_, ok := sessions.FromContext(gotReq.Context())
		require.False(t, ok)
	})

	count, err := testutil.GatherAndCount(f.metrics.Registry(), "console_gateway_gate_decisions_total")
	require.NoError(t, err)
	require.Equal(t, 5, count)
}
