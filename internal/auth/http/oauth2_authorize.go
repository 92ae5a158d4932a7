package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// SessionCookieName carries the browser session. Its value is an access
// token of the signed-in user.
const SessionCookieName = "badgr_session"

// AuthorizeHandler serves the consent half of the authorization code flow.
// The user is identified by a bearer token or the session cookie.
type AuthorizeHandler struct {
	AuthorizeService *service.AuthorizeService
	Authenticator    httpx.TokenAuthenticator
}

// HandleGet godoc
//
//	@Summary		OAuth2 authorization preflight
//	@Description	Validates an authorization request and returns what the consent screen needs.
//	@Description	When the client skips authorization, or approval_prompt=auto and an earlier grant already covers the scopes, success_url is returned instead.
//	@Tags			OAuth2
//	@Produce		json
//	@Security		BearerAuth
//	@Param			response_type			query		string								true	"Must be 'code'"	default(code)
//	@Param			client_id				query		string								true	"OAuth2 client identifier"
//	@Param			redirect_uri			query		string								true	"Callback URI (must match a registered redirect URI)"
//	@Param			scope					query		string								false	"Space-delimited list of scopes"
//	@Param			state					query		string								false	"Opaque value for CSRF protection"
//	@Param			code_challenge			query		string								false	"PKCE code challenge (required for public clients)"
//	@Param			code_challenge_method	query		string								false	"PKCE method"	default(S256)	Enums(S256, plain)
//	@Param			approval_prompt			query		string								false	"Set to 'auto' to skip consent for an existing grant"
//	@Success		200						{object}	authsdk.AuthorizePreflightResponse	"application, scopes, redirect_uri, state or success_url"
//	@Failure		400						{object}	authsdk.ErrorResponse				"error, error_description"
//	@Failure		401						{object}	authsdk.ErrorResponse				"login_required"
//	@Router			/o/authorize [get]
func (h *AuthorizeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := authorizeRequestFromValues(q)
	req.ApprovalPrompt = strings.TrimSpace(q.Get("approval_prompt"))
	req.UserID = h.resolveUser(r)

	res, err := h.AuthorizeService.Preflight(r.Context(), req)
	if err != nil {
		writeAuthorizeError(w, r, "authorize preflight", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthorizePreflightResponse{
		Application: applicationInfo(res.Client),
		Scopes:      res.Scopes,
		RedirectURI: res.RedirectURI,
		State:       res.State,
		SuccessURL:  res.SuccessURL,
	})
}

// HandlePost godoc
//
//	@Summary		OAuth2 authorization consent
//	@Description	Records the user's consent. With allow=true a single-use code is issued and success_url is {redirect_uri}?code=...&state=...
//	@Description	With allow=false success_url carries error=access_denied.
//	@Description	The body may be JSON or a url-encoded form.
//	@Tags			OAuth2
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.AuthorizeRequest	true	"Consent decision"
//	@Success		200		{object}	authsdk.AuthorizeResponse	"success_url"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse		"login_required"
//	@Router			/o/authorize [post]
func (h *AuthorizeHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req service.AuthorizeRequest

	switch {
	case httpx.IsJSON(r):
		var body authsdk.AuthorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			authsdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
			return
		}
		scopes := body.Scopes
		if len(scopes) == 0 {
			scopes = httpx.ParseSpaceDelimitedFields(body.Scope)
		}
		req = service.AuthorizeRequest{
			ResponseType:        body.ResponseType,
			ClientID:            strings.TrimSpace(body.ClientID),
			RedirectURI:         strings.TrimSpace(body.RedirectURI),
			Scopes:              scopes,
			State:               body.State,
			CodeChallenge:       body.CodeChallenge,
			CodeChallengeMethod: body.CodeChallengeMethod,
			Allow:               body.Allow,
		}
	case httpx.IsForm(r):
		if err := r.ParseForm(); err != nil {
			authsdk.ErrInvalidFormBody.WriteError(w)
			return
		}
		req = authorizeRequestFromValues(r.PostForm)
		req.Allow, _ = strconv.ParseBool(r.PostForm.Get("allow"))
	default:
		authsdk.ErrInvalidRequest.
			WithDescription("content-type must be application/json or application/x-www-form-urlencoded").
			WriteError(w)
		return
	}

	req.UserID = h.resolveUser(r)

	successURL, err := h.AuthorizeService.Authorize(r.Context(), req)
	if err != nil {
		writeAuthorizeError(w, r, "authorize", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthorizeResponse{SuccessURL: successURL})
}

// resolveUser returns the user behind the bearer token or session cookie, or
// "" when neither authenticates a user.
func (h *AuthorizeHandler) resolveUser(r *http.Request) string {
	token := httpx.ExtractBearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return ""
	}

	id, err := h.Authenticator.AuthenticateToken(r.Context(), token)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("authorize session rejected", "error", err)
		return ""
	}
	return id.UserID
}

// writeAuthorizeError answers an unknown client_id as a bad request; the
// user agent, not the client, is talking to this endpoint.
func writeAuthorizeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, service.ErrInvalidClient) {
		authsdk.ErrInvalidRequest.WithDescription("unknown client_id").WriteError(w)
		return
	}
	writeServiceError(w, r, op, err)
}

func authorizeRequestFromValues(v url.Values) service.AuthorizeRequest {
	return service.AuthorizeRequest{
		ResponseType:        strings.TrimSpace(v.Get("response_type")),
		ClientID:            strings.TrimSpace(v.Get("client_id")),
		RedirectURI:         strings.TrimSpace(v.Get("redirect_uri")),
		Scopes:              httpx.ParseSpaceDelimitedFields(v.Get("scope")),
		State:               v.Get("state"),
		CodeChallenge:       strings.TrimSpace(v.Get("code_challenge")),
		CodeChallengeMethod: strings.TrimSpace(v.Get("code_challenge_method")),
	}
}

// applicationInfo is the client as shown to end users.
func applicationInfo(c domain.Client) authsdk.ApplicationInfo {
	return authsdk.ApplicationInfo{
		Name:      c.Name,
		URL:       c.ClientURI,
		Image:     c.LogoURI,
		ClientID:  c.ID,
		PolicyURI: c.PolicyURI,
		TermsURI:  c.TOSURI,
	}
}
