package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// RegisterHandler serves POST /o/register (dynamic client registration).
type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Dynamic client registration
//	@Description	Registers a Badge Connect client. Rejections are returned with HTTP 200 and a body of the form {"error": "message"}.
//	@Tags			OAuth2
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegistrationRequest		true	"Client metadata"
//	@Success		200		{object}	authsdk.RegistrationResponse	"client_id, client_secret, client_id_issued_at, client_secret_expires_at"
//	@Failure		400		{object}	authsdk.ErrorResponse			"invalid JSON body"
//	@Router			/o/register [post]
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body authsdk.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		authsdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
		return
	}

	res, err := h.RegistrationService.Register(r.Context(), service.RegistrationRequest{
		ClientName:              body.ClientName,
		ClientURI:               body.ClientURI,
		RedirectURIs:            body.RedirectURIs,
		GrantTypes:              body.GrantTypes,
		ResponseTypes:           body.ResponseTypes,
		LogoURI:                 body.LogoURI,
		TOSURI:                  body.TOSURI,
		PolicyURI:               body.PolicyURI,
		SoftwareID:              body.SoftwareID,
		SoftwareVersion:         body.SoftwareVersion,
		Scope:                   body.Scope,
		TokenEndpointAuthMethod: body.TokenEndpointAuthMethod,
	})
	if err != nil {
		var regErr *service.RegistrationError
		if errors.As(err, &regErr) {
			httpx.WriteJSON(w, http.StatusOK, authsdk.RegistrationError{Message: regErr.Message})
			return
		}
		writeServiceError(w, r, "client registration", err)
		return
	}

	c := res.Client
	httpx.WriteJSON(w, http.StatusOK, authsdk.RegistrationResponse{
		ClientID:                c.ID,
		ClientSecret:            res.Secret,
		ClientIDIssuedAt:        c.CreatedAt.Unix(),
		ClientSecretExpiresAt:   0,
		ClientName:              c.Name,
		ClientURI:               c.ClientURI,
		RedirectURIs:            c.RedirectURIs,
		GrantTypes:              c.GrantTypes,
		ResponseTypes:           c.ResponseTypes,
		Scope:                   strings.Join(c.Scopes, " "),
		TokenEndpointAuthMethod: c.TokenEndpointAuthMethod,
	})
}
