package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// AuthcodeMintHandler serves POST /o/authcode. It runs behind
// AuthnMiddleware and wraps the presented bearer token in an authcode.
type AuthcodeMintHandler struct {
	AuthcodeService *service.AuthcodeService
}

// ServeHTTP godoc
//
//	@Summary		Mint an authcode
//	@Description	Encrypts the caller's access token into a short-lived code that can cross a browser redirect.
//	@Tags			Authcode
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.AuthcodeMintResponse	"code, expires_in"
//	@Failure		401	{object}	authsdk.ErrorResponse			"invalid_token"
//	@Router			/o/authcode [post]
func (h *AuthcodeMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code, ttl, err := h.AuthcodeService.Mint(r.Context(), httpx.ExtractBearerToken(r))
	if err != nil {
		writeServiceError(w, r, "authcode mint", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthcodeMintResponse{
		Code:      code,
		ExpiresIn: int(ttl.Seconds()),
	})
}

// TokenExchangeHandler serves POST /o/token-exchange.
type TokenExchangeHandler struct {
	AuthcodeService *service.AuthcodeService
}

// ServeHTTP godoc
//
//	@Summary		Exchange an authcode
//	@Description	Redeems an authcode for the access token it refers to. Every failure yields the same 400 "invalid or expired code".
//	@Tags			Authcode
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		authsdk.AuthcodeRequest	true	"Authcode"
//	@Success		200		{object}	authsdk.TokenResponse	"access_token, token_type, scope, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid or expired code"
//	@Router			/o/token-exchange [post]
func (h *TokenExchangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var code string
	if httpx.IsJSON(r) {
		var body authsdk.AuthcodeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			authsdk.ErrInvalidAuthcode.WriteError(w)
			return
		}
		code = body.Code
	} else {
		if err := r.ParseForm(); err != nil {
			authsdk.ErrInvalidAuthcode.WriteError(w)
			return
		}
		code = r.PostForm.Get("code")
	}

	if strings.TrimSpace(code) == "" {
		authsdk.ErrInvalidAuthcode.WriteError(w)
		return
	}

	pair, err := h.AuthcodeService.Exchange(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, "authcode exchange", err)
		return
	}
	writeTokenResponse(w, pair)
}
