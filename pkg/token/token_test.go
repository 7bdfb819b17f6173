package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func TestMintAndVerify(t *testing.T) {
	m, err := NewMinter(testSecret, time.Hour)
	require.NoError(t, err)

	raw, err := m.Mint("10001", "1300", "/eos/user/j/jdoe/budget.xlsx", true, 1700000000)
	require.NoError(t, err)

	claims, err := Verify(testSecret, raw)
	require.NoError(t, err)

	assert.Equal(t, "10001", claims.RUID)
	assert.Equal(t, "1300", claims.RGID)
	assert.Equal(t, "/eos/user/j/jdoe/budget.xlsx", claims.Filename)
	assert.True(t, claims.CanEdit)
	assert.Equal(t, int64(1700000000), claims.MTime)
	assert.NotEmpty(t, claims.ID)
}

func TestMint_UniqueTokenIDs(t *testing.T) {
	m, err := NewMinter(testSecret, time.Hour)
	require.NoError(t, err)

	a, err := m.Mint("1", "1", "/f", false, 0)
	require.NoError(t, err)
	b, err := m.Mint("1", "1", "/f", false, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_WrongSecret(t *testing.T) {
	m, err := NewMinter(testSecret, time.Hour)
	require.NoError(t, err)

	raw, err := m.Mint("10001", "1300", "/f.docx", false, 0)
	require.NoError(t, err)

	_, err = Verify([]byte("a-different-secret"), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Expired(t *testing.T) {
	m, err := NewMinter(testSecret, time.Millisecond)
	require.NoError(t, err)

	raw, err := m.Mint("10001", "1300", "/f.docx", false, 0)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = Verify(testSecret, raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestVerify_MissingExpiry(t *testing.T) {
	// Correctly signed, but no exp claim: must not verify as a
	// never-expiring token
	claims := Claims{RUID: "10001", RGID: "1300", Filename: "/f.docx"}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Verify(testSecret, raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify(testSecret, "not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNewMinter_Validation(t *testing.T) {
	_, err := NewMinter(nil, time.Hour)
	assert.Error(t, err)

	_, err = NewMinter(testSecret, 0)
	assert.Error(t, err)
}
