package domain

import (
	"slices"
	"strings"
)

// Badge Connect scopes offered to dynamically registered clients.
const (
	ScopeAssertionReadonly = "https://purl.imsglobal.org/spec/ob/v2p1/scope/assertion.readonly"
	ScopeAssertionCreate   = "https://purl.imsglobal.org/spec/ob/v2p1/scope/assertion.create"
	ScopeProfileReadonly   = "https://purl.imsglobal.org/spec/ob/v2p1/scope/profile.readonly"
)

// Native scopes used by first-party clients.
const (
	ScopeReadProfile   = "r:profile"
	ScopeWriteProfile  = "rw:profile"
	ScopeReadBackpack  = "r:backpack"
	ScopeWriteBackpack = "rw:backpack"
	ScopeWriteIssuer   = "rw:issuer"
	ScopeIssuerPrefix  = "rw:issuer:"
	ScopeIssuerAny     = "rw:issuer:*"
)

// BadgeConnectScopes returns the scopes a registered client may ask for.
func BadgeConnectScopes() []string {
	return []string{ScopeAssertionReadonly, ScopeAssertionCreate, ScopeProfileReadonly}
}

// ScopeAllowed reports whether scope is granted by allowed. An allowed
// "rw:issuer:*" admits any single issuer scope "rw:issuer:<id>".
func ScopeAllowed(allowed []string, scope string) bool {
	if slices.Contains(allowed, scope) {
		return true
	}
	if strings.HasPrefix(scope, ScopeIssuerPrefix) && len(scope) > len(ScopeIssuerPrefix) {
		return slices.Contains(allowed, ScopeIssuerAny)
	}
	return false
}

// ScopesAllowed reports whether every requested scope is allowed.
func ScopesAllowed(allowed, requested []string) bool {
	for _, s := range requested {
		if !ScopeAllowed(allowed, s) {
			return false
		}
	}
	return true
}

// ScopesCover reports whether have contains every scope in want.
func ScopesCover(have, want []string) bool {
	for _, s := range want {
		if !slices.Contains(have, s) {
			return false
		}
	}
	return true
}

// NormalizeScopes cleans a requested scope list with NormalizeFields.
func NormalizeScopes(scopes []string) []string {
	return NormalizeFields(scopes)
}

// NormalizeFields trims a multi-valued field such as redirect_uris or
// grant_types, dropping blanks and duplicates while keeping order.
func NormalizeFields(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
