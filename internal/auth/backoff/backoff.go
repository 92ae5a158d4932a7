// Package backoff implements the failed-login lockout applied to password
// grants. Each (account, address) pair carries a failure count and a
// lockout deadline that grows exponentially with consecutive failures.
package backoff

import (
	"context"
	"strings"
	"time"
)

// Record is the stored state for one (account, address) key.
type Record struct {
	Count int
	Until time.Time
}

// Policy bounds the lockout. The n-th consecutive failure locks the key for
// min(Max, Base*2^(n-1)); the record is forgotten Max after it unlocks.
type Policy struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the lockout applied after count failures.
func (p Policy) Delay(count int) time.Duration {
	if count < 1 {
		return 0
	}
	d := p.Base
	for i := 1; i < count; i++ {
		if d >= p.Max {
			break
		}
		d *= 2
	}
	return min(d, p.Max)
}

// Stale reports whether rec has outlived its lockout by more than Max.
func (p Policy) Stale(rec Record, now time.Time) bool {
	return now.After(rec.Until.Add(p.Max))
}

// Store persists records. Increment must be atomic per key.
type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	// Increment adds a failure to key at now, resetting a stale record
	// first, and returns the updated record.
	Increment(ctx context.Context, key string, now time.Time, p Policy) (Record, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Decision is the outcome of Check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
	Record     Record
}

type Guard struct {
	Store  Store
	Policy Policy
	Clock  func() time.Time
}

// New returns a Guard over store.
func New(store Store, base, max time.Duration) *Guard {
	return &Guard{
		Store:  store,
		Policy: Policy{Base: base, Max: max},
		Clock:  time.Now,
	}
}

// Key is the store key for an account and client address.
func Key(account, address string) string {
	return "backoff:" + strings.ToLower(strings.TrimSpace(account)) + ":" + address
}

func (g *Guard) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

// Check reports whether a password attempt may proceed. A locked key is
// left untouched.
func (g *Guard) Check(ctx context.Context, account, address string) (Decision, error) {
	key := Key(account, address)
	rec, ok, err := g.Store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Decision{Allowed: true}, nil
	}

	now := g.now()
	if g.Policy.Stale(rec, now) {
		if err := g.Store.Delete(ctx, key); err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: true}, nil
	}
	if now.Before(rec.Until) {
		return Decision{RetryAfter: rec.Until.Sub(now), Record: rec}, nil
	}
	return Decision{Allowed: true, Record: rec}, nil
}

// RecordFailure counts a failed attempt and extends the lockout.
func (g *Guard) RecordFailure(ctx context.Context, account, address string) (Record, error) {
	return g.Store.Increment(ctx, Key(account, address), g.now(), g.Policy)
}

// RecordSuccess clears the key.
func (g *Guard) RecordSuccess(ctx context.Context, account, address string) error {
	return g.Store.Delete(ctx, Key(account, address))
}
