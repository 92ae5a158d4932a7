package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// TokenHandler serves POST /o/token.
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues tokens using the authorization_code, refresh_token, password and client_credentials grants.
//	@Description	Client credentials may be sent with HTTP Basic (client_secret_basic) or in the form body.
//	@Description	Parameters in the query string are rejected.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(authorization_code, refresh_token, password, client_credentials)
//	@Param			code			formData	string					false	"Authorization code (authorization_code grant)"
//	@Param			redirect_uri	formData	string					false	"Redirect URI (authorization_code grant)"
//	@Param			code_verifier	formData	string					false	"PKCE code_verifier (required when PKCE was used)"
//	@Param			refresh_token	formData	string					false	"Refresh token (refresh_token grant)"
//	@Param			username		formData	string					false	"Username (password grant)"
//	@Param			password		formData	string					false	"Password (password grant)"
//	@Param			client_id		formData	string					false	"Client identifier; defaults to the public client for the password grant"
//	@Param			client_secret	formData	string					false	"Client secret (confidential clients not using Basic auth)"
//	@Param			scope			formData	string					false	"Space-delimited list of scopes"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, scope"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		429				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Header			429				{integer}	Retry-After				"seconds until the next attempt is allowed"
//	@Router			/o/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Grant parameters only travel in the body
	if r.URL.RawQuery != "" {
		authsdk.ErrQueryParameters.WriteError(w)
		return
	}

	// 2. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" && !httpx.IsForm(r) {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 3. Parse the form body
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 4. Handle the grant type
	switch r.PostForm.Get("grant_type") {
	case domain.GrantAuthorizationCode:
		h.handleAuthorizationCodeGrant(w, r, r.PostForm)
	case domain.GrantRefreshToken:
		h.handleRefreshGrant(w, r, r.PostForm)
	case domain.GrantPassword:
		h.handlePasswordGrant(w, r, r.PostForm)
	case domain.GrantClientCredentials:
		h.handleClientCredentialsGrant(w, r, r.PostForm)
	default:
		authsdk.ErrUnsupportedGrantType.WriteError(w)
	}
}

func (h *TokenHandler) handleAuthorizationCodeGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	code := strings.TrimSpace(form.Get("code"))
	redirectURI := strings.TrimSpace(form.Get("redirect_uri"))
	codeVerifier := strings.TrimSpace(form.Get("code_verifier"))
	clientID, clientSecret := clientCredentials(r, form)

	if code == "" || redirectURI == "" || clientID == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.ExchangeAuthorizationCode(r.Context(), clientID, clientSecret, code, redirectURI, codeVerifier)
	if err != nil {
		writeServiceError(w, r, "authorization_code grant", err)
		return
	}
	writeTokenResponse(w, pair)
}

func (h *TokenHandler) handleRefreshGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	refresh := strings.TrimSpace(form.Get("refresh_token"))
	requested := httpx.ParseSpaceDelimitedFields(form.Get("scope"))
	clientID, clientSecret := clientCredentials(r, form)

	if refresh == "" || clientID == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.ExchangeRefreshToken(r.Context(), clientID, clientSecret, refresh, requested)
	if err != nil {
		writeServiceError(w, r, "refresh grant", err)
		return
	}
	writeTokenResponse(w, pair)
}

func (h *TokenHandler) handlePasswordGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	username := strings.TrimSpace(form.Get("username"))
	password := form.Get("password")
	clientID, clientSecret := clientCredentials(r, form)

	if username == "" || password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.ExchangePassword(r.Context(), service.PasswordRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
		Scopes:       httpx.ParseSpaceDelimitedFields(form.Get("scope")),
		Address:      httpx.ClientIP(r),
		Endpoint:     r.URL.Path,
	})
	if err != nil {
		writeServiceError(w, r, "password grant", err)
		return
	}
	writeTokenResponse(w, pair)
}

func (h *TokenHandler) handleClientCredentialsGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	clientID, clientSecret := clientCredentials(r, form)
	if clientID == "" || clientSecret == "" {
		authsdk.ErrInvalidClient.WriteError(w)
		return
	}

	requested := httpx.ParseSpaceDelimitedFields(form.Get("scope"))
	pair, err := h.TokenService.ExchangeClientCredentials(r.Context(), clientID, clientSecret, requested)
	if err != nil {
		writeServiceError(w, r, "client_credentials grant", err)
		return
	}
	writeTokenResponse(w, pair)
}

// clientCredentials prefers HTTP Basic (RFC 6749 section 2.3.1, values
// form-urlencoded) and falls back to client_id/client_secret in the body.
func clientCredentials(r *http.Request, form url.Values) (string, string) {
	if id, secret, ok := r.BasicAuth(); ok {
		if u, err := url.QueryUnescape(id); err == nil {
			id = u
		}
		if u, err := url.QueryUnescape(secret); err == nil {
			secret = u
		}
		return strings.TrimSpace(id), secret
	}
	return strings.TrimSpace(form.Get("client_id")), form.Get("client_secret")
}

func writeTokenResponse(w http.ResponseWriter, pair *domain.TokenPair) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		Scope:        strings.Join(pair.Scopes, " "),
	})
}
