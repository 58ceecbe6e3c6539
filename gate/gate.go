package gate

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jrsteele09/go-console-gateway/internal/metrics"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLoginPath        = "/login"
	DefaultHomePath         = "/"
	DefaultUnauthorizedPath = "/unauthorized"

	HeaderUserRole   = "X-User-Role"
	HeaderDeviceType = "X-Device-Type"
)

// DefaultBypassPrefixes are never gated.
var DefaultBypassPrefixes = []string{"/api/", "/_next/static/", "/_next/image", "/static/", "/metrics", "/healthz"}

// DefaultBypassExtensions are static assets that are never gated.
var DefaultBypassExtensions = []string{
	".png", ".jpg", ".jpeg", ".svg", ".ico", ".webp", ".gif",
	".css", ".js", ".woff", ".woff2", ".ttf", ".eot", ".otf",
	".json", ".map", ".wav",
}

// Config holds the gate's immutable policy.
type Config struct {
	Store  *sessions.Store
	Routes RoleRoutes
	// Public paths are matched exactly and reachable only without a session.
	Public []string

	BypassPrefixes   []string
	BypassExtensions []string

	LoginPath        string
	HomePath         string
	UnauthorizedPath string

	Metrics *metrics.Metrics
}

// Gate decides, per request path, whether the caller may proceed.
// It holds no mutable state.
type Gate struct {
	store            *sessions.Store
	routes           RoleRoutes
	public           map[string]struct{}
	bypassPrefixes   []string
	bypassExtensions map[string]struct{}
	loginPath        string
	homePath         string
	unauthorizedPath string
	metrics          *metrics.Metrics
}

// New builds a gate from cfg.
func New(cfg Config) (*Gate, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("[Gate New] a session store is required")
	}

	g := &Gate{
		store:            cfg.Store,
		routes:           cfg.Routes,
		public:           make(map[string]struct{}, len(cfg.Public)),
		bypassPrefixes:   cfg.BypassPrefixes,
		bypassExtensions: make(map[string]struct{}),
		loginPath:        valueOr(cfg.LoginPath, DefaultLoginPath),
		homePath:         valueOr(cfg.HomePath, DefaultHomePath),
		unauthorizedPath: valueOr(cfg.UnauthorizedPath, DefaultUnauthorizedPath),
		metrics:          cfg.Metrics,
	}
	if g.routes == nil {
		g.routes = RoleRoutes{}
	}
	for _, p := range cfg.Public {
		g.public[p] = struct{}{}
	}
	if cfg.BypassPrefixes == nil {
		g.bypassPrefixes = DefaultBypassPrefixes
	}
	extensions := cfg.BypassExtensions
	if extensions == nil {
		extensions = DefaultBypassExtensions
	}
	for _, ext := range extensions {
		g.bypassExtensions[strings.ToLower(ext)] = struct{}{}
	}
	return g, nil
}

// Decide evaluates the request state machine for path and the caller's
// session (nil when there is none).
func (g *Gate) Decide(path string, session *sessions.Session) Decision {
	if _, ok := g.public[path]; ok {
		if session != nil {
			return Decision{State: PublicAuthenticated, Redirect: g.homePath}
		}
		return Decision{State: PublicUnauthenticated}
	}

	if session == nil {
		return Decision{State: ProtectedUnauthenticated, Redirect: g.loginRedirect(path)}
	}

	// Any signed in caller may see the unauthorized page.
	if path == g.unauthorizedPath || g.routes.HasAccess(session.Principal.Role, path) {
		return Decision{State: ProtectedAuthorized}
	}
	return Decision{State: ProtectedUnauthorized, Redirect: g.unauthorizedPath}
}

// Bypass reports whether path is excluded from gating.
func (g *Gate) Bypass(p string) bool {
	for _, prefix := range g.bypassPrefixes {
		if strings.HasPrefix(p, prefix) || p == strings.TrimSuffix(prefix, "/") {
			return true
		}
	}
	_, ok := g.bypassExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// Middleware gates every request that is not bypassed. Allowed protected
// requests carry the caller's role and device class in the context and in
// the forwarded X-User-Role / X-Device-Type headers. The session is bound to
// the context on every path, bypassed or not, for session aware backend calls.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never trust identity headers supplied by the client.
		r.Header.Del(HeaderUserRole)
		r.Header.Del(HeaderDeviceType)

		r, session := g.store.Bind(w, r)
		if g.Bypass(r.URL.Path) {
			// Bypassed paths skip the role check but keep the session binding.
			next.ServeHTTP(w, r)
			return
		}

		decision := g.Decide(r.URL.Path, session)
		g.metrics.ObserveGate(decision.State.String())

		switch decision.State {
		case PublicUnauthenticated:
			next.ServeHTTP(w, r)
		case ProtectedAuthorized:
			role := session.Principal.Role
			device := ClassifyDevice(r.UserAgent())
			r.Header.Set(HeaderUserRole, role)
			r.Header.Set(HeaderDeviceType, string(device))
			next.ServeHTTP(w, r.WithContext(newContext(r.Context(), role, device)))
		default:
			log.Debug().
				Str("path", r.URL.Path).
				Str("state", decision.State.String()).
				Str("redirect", decision.Redirect).
				Msg("gate redirect")
			redirect(w, r, decision.Redirect)
		}
	})
}

func (g *Gate) loginRedirect(path string) string {
	return g.loginPath + "?" + url.Values{"next": {path}}.Encode()
}

// redirect is htmx aware: htmx requests get an HX-Redirect instruction
// instead of a 3xx the browser would follow inside the fragment.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
