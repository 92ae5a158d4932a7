package http

import (
	"errors"
	"net/http"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// writeServiceError maps a service error onto the OAuth2 error body. Unknown
// errors are logged under op and answered with server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var locked *service.LockedError
	if errors.As(err, &locked) {
		e := *authsdk.ErrTooManyAttempts
		e.RetryAfter = locked.RetryAfterSeconds()
		e.WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidClient):
		authsdk.ErrInvalidClient.WriteError(w)
	case errors.Is(err, service.ErrUnauthorizedClient):
		authsdk.ErrUnauthorizedClient.WriteError(w)
	case errors.Is(err, service.ErrInvalidGrant),
		errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidGrant.WriteError(w)
	case errors.Is(err, service.ErrInvalidScope):
		authsdk.ErrInvalidScope.WriteError(w)
	case errors.Is(err, service.ErrInvalidRequest):
		authsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrRedirectURIMismatch):
		authsdk.ErrInvalidRequest.
			WithDescription("redirect_uri does not match a registered URI for the client").
			WriteError(w)
	case errors.Is(err, service.ErrUnsupportedResponseType):
		authsdk.ErrUnsupportedResponseType.WriteError(w)
	case errors.Is(err, service.ErrLoginRequired):
		authsdk.ErrLoginRequired.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrInvalidAuthcode):
		authsdk.ErrInvalidAuthcode.WriteError(w)
	case errors.Is(err, service.ErrEmailNotVerified):
		authsdk.ErrAccessDenied.WithDescription("email address is not verified").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
