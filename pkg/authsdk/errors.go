package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// OAuth2 error codes (RFC 6749 section 5.2 plus the few we add).
const (
	ErrorCodeInvalidRequest          = "invalid_request"
	ErrorCodeInvalidClient           = "invalid_client"
	ErrorCodeInvalidGrant            = "invalid_grant"
	ErrorCodeUnauthorizedClient      = "unauthorized_client"
	ErrorCodeUnsupportedGrantType    = "unsupported_grant_type"
	ErrorCodeInvalidScope            = "invalid_scope"
	ErrorCodeServerError             = "server_error"
	ErrorCodeInvalidToken            = "invalid_token"
	ErrorCodeInsufficientScope       = "insufficient_scope"
	ErrorCodeAccessDenied            = "access_denied"
	ErrorCodeUnsupportedResponseType = "unsupported_response_type"
	ErrorCodeLoginRequired           = "login_required"
	ErrorCodeTooManyAttempts         = "too_many_attempts"
)

// OAuth2Error is the error body shared by the server (WriteError) and the
// SDK (parsed from responses).
type OAuth2Error struct {
	StatusCode int `json:"-"`

	// RetryAfter is the lockout remaining in seconds on 429 responses.
	RetryAfter int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a non-cacheable JSON response.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	if e.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(e.RetryAfter))
	}
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Error: e.Code, ErrorDescription: e.Description})
}

// WithDescription returns a copy of e with a different description.
func (e *OAuth2Error) WithDescription(desc string) *OAuth2Error {
	c := *e
	c.Description = desc
	return &c
}

// Is matches on status and code so errors.Is works across copies.
func (e *OAuth2Error) Is(target error) bool {
	t, ok := target.(*OAuth2Error)
	return ok && t.StatusCode == e.StatusCode && t.Code == e.Code
}

var (
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidClient covers unknown clients and bad client secrets. It is a
	// 400 like every other credential failure on the exchange endpoints; 401
	// is kept for a missing or invalid bearer or session.
	ErrInvalidClient = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidClient,
		Description: "invalid client",
	}

	// ErrInvalidGrant covers every code, refresh token and password failure.
	// Missing, expired, consumed and PKCE mismatches all look the same.
	ErrInvalidGrant = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid grant",
	}

	ErrUnauthorizedClient = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnauthorizedClient,
		Description: "the client is not authorized to use this grant type",
	}

	ErrUnsupportedGrantType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnsupportedGrantType,
		Description: "grant type not supported",
	}

	ErrInvalidScope = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidScope,
		Description: "invalid scope requested",
	}

	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrInvalidContentType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/x-www-form-urlencoded",
	}

	ErrQueryParameters = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Token grant parameters must be sent in post body, not query parameters",
	}

	ErrInvalidFormBody = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid request body",
	}

	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid, expired or revoked",
	}

	// ErrLoginRequired is returned by the authorize endpoint without a
	// live user session.
	ErrLoginRequired = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeLoginRequired,
		Description: "Incorrect authentication credentials.",
	}

	ErrAccessDenied = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	ErrUnsupportedResponseType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnsupportedResponseType,
		Description: "response type not supported",
	}

	// ErrInvalidAuthcode is the single answer for every authcode exchange
	// failure.
	ErrInvalidAuthcode = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid or expired code",
	}

	ErrTooManyAttempts = &OAuth2Error{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeTooManyAttempts,
		Description: "too many failed login attempts",
	}
)

// NewOAuth2Error creates a custom error.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{StatusCode: statusCode, Code: code, Description: description}
}

// RegistrationError is a rejected dynamic client registration. The server
// answers these with HTTP 200 and a bare {"error": message} body.
type RegistrationError struct {
	Message string `json:"error"`
}

func (e *RegistrationError) Error() string { return e.Message }

// parseErrorResponse maps a non-2xx response to *OAuth2Error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	out := &OAuth2Error{StatusCode: resp.StatusCode}
	if ra, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		out.RetryAfter = ra
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		out.Code = errResp.Error
		out.Description = errResp.ErrorDescription
		return out
	}

	out.Code = ErrorCodeServerError
	out.Description = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return out
}
