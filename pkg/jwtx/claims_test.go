package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/snehalbaghel/badgr-server/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewClaims("ref-1", "authcode", "badgr", time.Minute, now)

	require.Equal(t, "ref-1", c.Subject)
	require.Equal(t, "authcode", c.Purpose)
	require.Equal(t, "badgr", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Minute), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "badgr"}}

	require.NoError(t, c.ValidateIssuer("badgr"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}

func TestValidatePurpose(t *testing.T) {
	c := &jwtx.Claims{Purpose: "authcode"}

	require.NoError(t, c.ValidatePurpose("authcode"))
	require.NoError(t, c.ValidatePurpose(""))
	require.ErrorIs(t, c.ValidatePurpose("invite"), jwtx.ErrPurpose)
}
