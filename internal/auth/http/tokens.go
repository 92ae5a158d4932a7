package http

import (
	"net/http"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// TokensHandler serves GET /v2/auth/tokens behind AuthnMiddleware.
type TokensHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		List issued tokens
//	@Description	Lists the caller's live access tokens across applications. Requires rw:profile and a verified email address.
//	@Tags			Tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.TokenListResponse	"status, result"
//	@Failure		401	{object}	authsdk.ErrorResponse		"invalid_token"
//	@Failure		403	{object}	authsdk.ErrorResponse		"insufficient_scope or unverified email"
//	@Router			/v2/auth/tokens [get]
func (h *TokensHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	tokens, err := h.TokenService.ListIssuedTokens(r.Context(), id.UserID, id.EmailVerified)
	if err != nil {
		writeServiceError(w, r, "list tokens", err)
		return
	}

	result := make([]authsdk.IssuedToken, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, authsdk.IssuedToken{
			EntityType:  "AccessToken",
			EntityID:    t.Token.ID,
			Application: applicationInfo(t.Client),
			Scope:       t.Token.Scopes,
			Expires:     t.Token.ExpiresAt.UTC().Format(time.RFC3339),
			Created:     t.Token.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenListResponse{
		Status: authsdk.Status{Success: true, Description: "ok"},
		Result: result,
	})
}
