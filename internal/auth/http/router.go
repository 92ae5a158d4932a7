package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"

	_ "github.com/snehalbaghel/badgr-server/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	backoffStore Pinger

	TokenService        *service.TokenService
	AuthorizeService    *service.AuthorizeService
	RegistrationService *service.RegistrationService
	AuthcodeService     *service.AuthcodeService
	ManifestService     *service.ManifestService // Optional: manifest routes are skipped when nil
}

func NewRouter(
	buildVersion string,
	st store.Store,
	backoffStore Pinger,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slogx.Discard()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		backoffStore: backoffStore,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerAuthcode()
	r.registerTokens()
	r.registerManifest()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Badgr Authorization Service API
//	@version		0.1.0
//	@description	OAuth2 authorization server for Badgr: dynamic client registration, the authorization code flow with PKCE,
//	@description	refresh token rotation, the password grant with login backoff, client credentials and the authcode exchange.
//	@description
//	@description				Access and refresh tokens are opaque bearer values.
//
//	@license.name				AGPL-3.0
//	@license.url				https://www.gnu.org/licenses/agpl-3.0.html
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// POST /o/register - strict rate limit (creates credentials)
	registerHandler := &RegisterHandler{RegistrationService: r.RegistrationService}
	r.Mux.Handle("POST "+authsdk.PathRegister,
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	authorizeHandler := &AuthorizeHandler{
		AuthorizeService: r.AuthorizeService,
		Authenticator:    r.TokenService,
	}

	// GET /o/authorize - lenient rate limit (consent screen data)
	r.Mux.Handle("GET "+authsdk.PathAuthorize,
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /o/authorize - moderate rate limit (issues codes)
	r.Mux.Handle("POST "+authsdk.PathAuthorize,
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandlePost),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /o/token - strict rate limit by IP (covers all grant types)
	// The password grant is additionally guarded per account by the backoff guard
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST "+authsdk.PathToken,
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /o/revoke - moderate rate limit
	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST "+authsdk.PathRevoke,
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAuthcode() {
	// POST /o/authcode - bearer only, moderate limit by user
	mintHandler := &AuthcodeMintHandler{AuthcodeService: r.AuthcodeService}
	r.Mux.Handle("POST "+authsdk.PathAuthcode,
		httpx.Chain(mintHandler,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /o/token-exchange - anonymous, moderate limit by IP
	exchangeHandler := &TokenExchangeHandler{AuthcodeService: r.AuthcodeService}
	r.Mux.Handle("POST "+authsdk.PathTokenExchange,
		httpx.Chain(exchangeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTokens() {
	h := &TokensHandler{TokenService: r.TokenService}

	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService),
		httpx.RequireAnyScope(domain.ScopeWriteProfile),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET "+authsdk.PathTokens, secured)
}

func (r *Router) registerManifest() {
	if r.ManifestService == nil {
		return
	}
	h := &ManifestHandler{ManifestService: r.ManifestService}

	// Public discovery endpoints
	r.Mux.Handle("GET "+authsdk.PathManifest+"{domain}",
		httpx.Chain(http.HandlerFunc(h.HandleManifest),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET "+authsdk.PathWellKnownManifest,
		httpx.Chain(http.HandlerFunc(h.HandleWellKnown),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	h := &HealthHandler{
		StartTime: r.startTime,
		Version:   r.buildVersion,
		Database:  r.store,
		Backoff:   r.backoffStore,
	}

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET "+authsdk.PathLivez,
		httpx.Chain(http.HandlerFunc(h.HandleLivez),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET "+authsdk.PathReadyz,
		httpx.Chain(http.HandlerFunc(h.HandleReadyz),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
