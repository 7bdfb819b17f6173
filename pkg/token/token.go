// Package token mints and verifies the JWT access tokens the bridge hands
// to the document-editing frontend.
//
// Tokens are signed with HMAC-SHA256 using the WOPI shared secret; calls
// between bridge components use the same scheme keyed with the IOP secret.
// Token lifetime comes from the general.tokenvalidity configuration key.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired is returned when a token's exp claim is in the past.
	ErrExpired = errors.New("access token expired")

	// ErrInvalid is returned for tokens that fail signature or format
	// checks.
	ErrInvalid = errors.New("invalid access token")
)

// Claims is the payload of an access token.
//
// ruid/rgid identify the remote user on the storage, filename is the full
// path the token grants access to, canedit selects view-only vs editable
// sessions and mtime carries the file version observed at mint time for
// later conflict checks.
type Claims struct {
	RUID     string `json:"ruid"`
	RGID     string `json:"rgid"`
	Filename string `json:"filename"`
	CanEdit  bool   `json:"canedit"`
	MTime    int64  `json:"mtime"`

	jwt.RegisteredClaims
}

// Minter issues access tokens with a fixed secret and validity.
type Minter struct {
	secret   []byte
	validity time.Duration
}

// NewMinter returns a Minter. validity is typically
// time.Duration(cfg.General.TokenValidity) * time.Second.
func NewMinter(secret []byte, validity time.Duration) (*Minter, error) {
	if len(secret) == 0 {
		return nil, errors.New("token minter requires a non-empty secret")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %v", validity)
	}
	return &Minter{secret: secret, validity: validity}, nil
}

// Mint generates a signed access token for the given file and user.
func (m *Minter) Mint(ruid, rgid, filename string, canEdit bool, mtime int64) (string, error) {
	now := time.Now()
	claims := Claims{
		RUID:     ruid,
		RGID:     rgid,
		Filename: filename,
		CanEdit:  canEdit,
		MTime:    mtime,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry of a token and returns its claims.
//
// A token without an exp claim is rejected: every token the bridge mints
// carries one, and accepting its absence would turn a truncated payload into
// a never-expiring credential. The error is ErrExpired for
// expired-but-otherwise-valid tokens, so that callers can distinguish a stale
// session from a forged request; every other failure wraps ErrInvalid.
func Verify(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if claims.Filename == "" {
		return nil, fmt.Errorf("%w: missing filename claim", ErrInvalid)
	}
	return claims, nil
}
