package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"gopkg.in/yaml.v3"
)

var ErrManifestNotFound = errors.New("manifest not found")

const (
	manifestContext = "https://purl.imsglobal.org/spec/ob/v2p1/ob_v2p1.jsonld"
	manifestVersion = "v1p0"
)

// ManifestConfig is the YAML document listing the front-end apps that offer
// Badge Connect. Origin is the public base URL of this service.
type ManifestConfig struct {
	Origin        string        `yaml:"origin"`
	DefaultDomain string        `yaml:"default_domain"`
	Apps          []ManifestApp `yaml:"apps"`
}

// ManifestApp is one front-end app, keyed by its domain.
type ManifestApp struct {
	Domain            string `yaml:"domain"`
	Name              string `yaml:"name"`
	Image             string `yaml:"image"`
	TermsOfServiceURL string `yaml:"terms_of_service_url"`
	PrivacyPolicyURL  string `yaml:"privacy_policy_url"`

	// AuthorizationURL defaults to https://{domain}/auth/oauth2/authorize.
	AuthorizationURL string `yaml:"authorization_url"`
}

// LoadManifest reads a ManifestConfig from a YAML file.
func LoadManifest(path string) (*ManifestConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest config: %w", err)
	}

	var cfg ManifestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse manifest config: %w", err)
	}
	if cfg.Origin == "" {
		return nil, errors.New("manifest config: origin is required")
	}
	cfg.Origin = strings.TrimSuffix(cfg.Origin, "/")
	return &cfg, nil
}

// ManifestService builds Badge Connect manifests.
type ManifestService struct {
	Config *ManifestConfig
}

func (s *ManifestService) app(domainName string) (ManifestApp, bool) {
	if s.Config == nil {
		return ManifestApp{}, false
	}
	for _, a := range s.Config.Apps {
		if strings.EqualFold(a.Domain, domainName) {
			return a, true
		}
	}
	return ManifestApp{}, false
}

// Manifest returns the manifest for the app serving domainName.
func (s *ManifestService) Manifest(domainName string) (authsdk.Manifest, error) {
	app, ok := s.app(domainName)
	if !ok {
		return authsdk.Manifest{}, ErrManifestNotFound
	}
	origin := s.Config.Origin

	authzURL := app.AuthorizationURL
	if authzURL == "" {
		authzURL = "https://" + app.Domain + "/auth/oauth2/authorize"
	}

	return authsdk.Manifest{
		Context: manifestContext,
		ID:      s.ManifestURL(app.Domain),
		BadgeConnectAPI: []authsdk.ManifestEntry{{
			Name:              app.Name,
			Image:             app.Image,
			APIBase:           origin + "/bcv1",
			Version:           manifestVersion,
			TermsOfServiceURL: app.TermsOfServiceURL,
			PrivacyPolicyURL:  app.PrivacyPolicyURL,
			ScopesOffered:     domain.BadgeConnectScopes(),
			RegistrationURL:   origin + authsdk.PathRegister,
			AuthorizationURL:  authzURL,
			TokenURL:          origin + authsdk.PathToken,
		}},
	}, nil
}

// ManifestURL is the absolute manifest location for domainName.
func (s *ManifestService) ManifestURL(domainName string) string {
	return s.Config.Origin + authsdk.PathManifest + domainName
}

// DomainForHost picks the app domain the well-known redirect points at:
// host itself when it is a known app, otherwise the default domain.
func (s *ManifestService) DomainForHost(host string) (string, error) {
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if app, ok := s.app(host); ok {
		return app.Domain, nil
	}
	if s.Config != nil && s.Config.DefaultDomain != "" {
		return s.Config.DefaultDomain, nil
	}
	return "", ErrManifestNotFound
}
