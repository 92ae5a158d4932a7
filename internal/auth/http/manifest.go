package http

import (
	"errors"
	"net/http"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

var errManifestNotFound = authsdk.NewOAuth2Error(http.StatusNotFound, "not_found", "no manifest for this domain")

// ManifestHandler serves the Badge Connect manifests.
type ManifestHandler struct {
	ManifestService *service.ManifestService
}

// HandleManifest godoc
//
//	@Summary		Badge Connect manifest
//	@Description	Returns the Badge Connect manifest describing the API offered for an application domain.
//	@Tags			BadgeConnect
//	@Produce		json
//	@Param			domain	path		string				true	"Application domain"
//	@Success		200		{object}	authsdk.Manifest	"manifest"
//	@Failure		404		{object}	authsdk.ErrorResponse
//	@Router			/bcv1/manifest/{domain} [get]
func (h *ManifestHandler) HandleManifest(w http.ResponseWriter, r *http.Request) {
	m, err := h.ManifestService.Manifest(r.PathValue("domain"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

// HandleWellKnown godoc
//
//	@Summary		Badge Connect discovery
//	@Description	Redirects to the manifest of the application served at the request host.
//	@Tags			BadgeConnect
//	@Success		302
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/.well-known/badgeconnect.json [get]
func (h *ManifestHandler) HandleWellKnown(w http.ResponseWriter, r *http.Request) {
	domainName, err := h.ManifestService.DomainForHost(r.Host)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, h.ManifestService.ManifestURL(domainName), http.StatusFound)
}

func (h *ManifestHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrManifestNotFound) {
		errManifestNotFound.WriteError(w)
		return
	}
	slogx.FromContext(r.Context()).Error("manifest lookup failed", "error", err)
	authsdk.ErrServerError.WriteError(w)
}
