package otelx

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the counters recorded by the OAuth flows.
type Metrics struct {
	ClientRegistered     metric.Int64Counter
	RegistrationRejected metric.Int64Counter
	CodeIssued           metric.Int64Counter
	CodeExchanged        metric.Int64Counter
	PKCEValidationFailed metric.Int64Counter
	TokenIssued          metric.Int64Counter
	TokenRefreshed       metric.Int64Counter
	TokenRevoked         metric.Int64Counter
	AuthcodeMinted       metric.Int64Counter
	AuthcodeRejected     metric.Int64Counter
	LoginFailed          metric.Int64Counter
	LoginLocked          metric.Int64Counter
}

type counterSpec struct {
	dst  *metric.Int64Counter
	name string
	desc string
	unit string
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	specs := []counterSpec{
		{&m.ClientRegistered, "oauth.client.registered", "Number of clients registered", "{client}"},
		{&m.RegistrationRejected, "oauth.client.registration_rejected", "Number of rejected client registrations", "{registration}"},
		{&m.CodeIssued, "oauth.code.issued", "Number of authorization codes issued", "{code}"},
		{&m.CodeExchanged, "oauth.code.exchanged", "Number of authorization codes exchanged for tokens", "{exchange}"},
		{&m.PKCEValidationFailed, "oauth.pkce.validation_failed", "Number of PKCE verifier mismatches", "{failure}"},
		{&m.TokenIssued, "oauth.token.issued", "Number of access tokens issued", "{token}"},
		{&m.TokenRefreshed, "oauth.token.refreshed", "Number of refresh token rotations", "{refresh}"},
		{&m.TokenRevoked, "oauth.token.revoked", "Number of tokens revoked", "{revocation}"},
		{&m.AuthcodeMinted, "oauth.authcode.minted", "Number of authcodes minted", "{authcode}"},
		{&m.AuthcodeRejected, "oauth.authcode.rejected", "Number of authcodes rejected at exchange", "{authcode}"},
		{&m.LoginFailed, "oauth.login.failed", "Number of failed password logins", "{attempt}"},
		{&m.LoginLocked, "oauth.login.locked", "Number of password logins refused by backoff", "{attempt}"},
	}

	for _, s := range specs {
		c, err := meter.Int64Counter(s.name, metric.WithDescription(s.desc), metric.WithUnit(s.unit))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", s.name, err)
		}
		*s.dst = c
	}

	return m, nil
}

func (m *Metrics) RecordClientRegistration(ctx context.Context) {
	m.ClientRegistered.Add(ctx, 1)
}

// RecordRegistrationRejected records a rejection labelled with its message.
func (m *Metrics) RecordRegistrationRejected(ctx context.Context, reason string) {
	m.RegistrationRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) RecordCodeIssued(ctx context.Context, clientID, pkceMethod string) {
	m.CodeIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("pkce_method", pkceMethod),
	))
}

func (m *Metrics) RecordCodeExchange(ctx context.Context, clientID, pkceMethod string) {
	m.CodeExchanged.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("pkce_method", pkceMethod),
	))
}

func (m *Metrics) RecordPKCEValidationFailed(ctx context.Context, method string) {
	m.PKCEValidationFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
}

func (m *Metrics) RecordTokenIssued(ctx context.Context, clientID, grantType string) {
	m.TokenIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("grant_type", grantType),
	))
}

func (m *Metrics) RecordTokenRefresh(ctx context.Context, clientID string) {
	m.TokenRefreshed.Add(ctx, 1, metric.WithAttributes(attribute.String("client_id", clientID)))
}

func (m *Metrics) RecordTokenRevocation(ctx context.Context, kind string) {
	m.TokenRevoked.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) RecordAuthcodeMinted(ctx context.Context) {
	m.AuthcodeMinted.Add(ctx, 1)
}

// RecordAuthcodeRejected keeps the reason (malformed, expired, revoked)
// that the HTTP response deliberately hides.
func (m *Metrics) RecordAuthcodeRejected(ctx context.Context, reason string) {
	m.AuthcodeRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) RecordLoginFailed(ctx context.Context) {
	m.LoginFailed.Add(ctx, 1)
}

func (m *Metrics) RecordLoginLocked(ctx context.Context) {
	m.LoginLocked.Add(ctx, 1)
}
