package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// Endpoint paths served by the authorization service.
const (
	PathRegister      = "/o/register"
	PathAuthorize     = "/o/authorize"
	PathToken         = "/o/token"
	PathTokenExchange = "/o/token-exchange"
	PathAuthcode      = "/o/authcode"
	PathRevoke        = "/o/revoke"
	PathTokens        = "/v2/auth/tokens"
	PathLivez         = "/livez"
	PathReadyz        = "/readyz"

	// PathManifest is followed by the domain.
	PathManifest          = "/bcv1/manifest/"
	PathWellKnownManifest = "/.well-known/badgeconnect.json"
)

// SDKClient talks to the authorization service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for baseURL with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}
