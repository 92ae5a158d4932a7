// Package audit publishes security events raised by the token endpoint.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// Event types.
const (
	EventFailedLogin = "FailedLoginAttempt"
	EventLockedOut   = "LoginLockedOut"
)

// Event describes one security relevant occurrence.
type Event struct {
	Type       string        `json:"type"`
	Account    string        `json:"username"`
	Address    string        `json:"client_ip"`
	Endpoint   string        `json:"endpoint"`
	ClientID   string        `json:"client_id,omitempty"`
	Failures   int           `json:"failures,omitempty"`
	RetryAfter time.Duration `json:"retry_after_ns,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// LogPublisher writes events to the request logger.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, e Event) error {
	slogx.FromContext(ctx).LogAttrs(ctx, slog.LevelWarn, "audit_event",
		slog.String("event", e.Type),
		slog.String("username", e.Account),
		slog.String("client_ip", e.Address),
		slog.String("endpoint", e.Endpoint),
		slog.String("client_id", e.ClientID),
		slog.Int("failures", e.Failures),
		slog.Duration("retry_after", e.RetryAfter),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

type multi []Publisher

// Multi fans events out to every publisher and joins their errors.
func Multi(pubs ...Publisher) Publisher { return multi(pubs) }

func (m multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
