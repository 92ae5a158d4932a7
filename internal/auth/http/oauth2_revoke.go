package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// RevokeHandler serves POST /o/revoke following RFC 7009. Refresh and access
// tokens can both be revoked; revoking a refresh token also drops the access
// token issued with it. Unknown tokens still get 200 OK so the endpoint
// cannot be used to probe for tokens.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Revocation Endpoint
//	@Description	Revokes a previously issued token (RFC 7009).
//	@Description	The endpoint is idempotent and returns 200 OK even for invalid or unknown tokens.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			token			formData	string	true	"The token to revoke"
//	@Param			token_type_hint	formData	string	false	"Hint about token type"	Enums(access_token, refresh_token)
//	@Param			client_id		formData	string	false	"Client identifier (when not using Basic auth)"
//	@Param			client_secret	formData	string	false	"Client secret (when not using Basic auth)"
//	@Success		200				"Token revoked (or was already invalid)"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description or invalid_client"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/o/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" && !httpx.IsForm(r) {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	token := strings.TrimSpace(r.PostForm.Get("token"))
	hint := r.PostForm.Get("token_type_hint")
	clientID, clientSecret := clientCredentials(r, r.PostForm)

	if token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// 3. Revoke; only a failed client authentication is reported back
	if err := h.TokenService.Revoke(ctx, clientID, clientSecret, token, hint); err != nil {
		if errors.Is(err, service.ErrInvalidClient) {
			authsdk.ErrInvalidClient.WriteError(w)
			return
		}
		log.Warn("revoke failed", "err", err)
	}

	// 4. Return 200 OK with an empty object
	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
