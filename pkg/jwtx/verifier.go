package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrPurpose     = errors.New("jwtx: purpose mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// VerifyOptions captures the expectations checked after the signature.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string

	// Purpose the token must carry. Empty means "don't care".
	Purpose string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// HS256Verifier validates tokens produced by HS256Signer.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier for secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) *HS256Verifier {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HS256Verifier{secret: secret, opts: opts}
}

// Verify parses tokenStr, checks its signature and registered claims, and
// returns the claims. Expiry is reported as ErrExpired so callers can tell
// it apart from tampering.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.opts.Now),
		jwt.WithLeeway(v.opts.Leeway),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return Claims{}, ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, ErrInvalidSig
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidatePurpose(v.opts.Purpose); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
