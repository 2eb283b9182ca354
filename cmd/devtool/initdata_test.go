package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/identity"
)

const testToken = "123456:devtool-token"

func TestMintInitData_VerifiesWithSameToken(t *testing.T) {
	raw, err := mintInitData(initDataUser{ID: 42, FirstName: "Ada", Username: "ada", LanguageCode: "de"}, time.Now(), testToken)
	require.NoError(t, err)

	got, err := identity.NewVerifier(testToken, 24*time.Hour).Verify(raw)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "de", got.LanguageCode)
}

func TestMintInitData_OtherTokenRejected(t *testing.T) {
	raw, err := mintInitData(initDataUser{ID: 42, FirstName: "Ada"}, time.Now(), testToken)
	require.NoError(t, err)

	_, err = identity.NewVerifier("654321:other", 24*time.Hour).Verify(raw)

	assert.ErrorIs(t, err, domain.ErrBadSignature)
}

func TestMintInitData_Backdated(t *testing.T) {
	raw, err := mintInitData(initDataUser{ID: 42, FirstName: "Ada"}, time.Now().Add(-48*time.Hour), testToken)
	require.NoError(t, err)

	_, err = identity.NewVerifier(testToken, 24*time.Hour).Verify(raw)

	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestMintInitData_RequiresToken(t *testing.T) {
	_, err := mintInitData(initDataUser{ID: 42}, time.Now(), "")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&InitDataCommand{})

	cmd, ok := r.Get("init-data")
	require.True(t, ok)
	assert.Equal(t, "init-data", cmd.Name())

	names := []string{}
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"init-data", "migrate"}, names)

	_, ok = r.Get("deploy")
	assert.False(t, ok)
}
