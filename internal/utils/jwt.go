package utils // package utils provides helpers for session tokens and passphrase hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The desktop shell sends it in the Authorization header of every API
// call.
type AccessToken struct {
	Token string    `json:"access_token"` // the serialized JWT string
	Exp   time.Time `json:"expires_at"`   // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a session.  The subject
// is the store name so that a token issued for one store is recognisable
// in logs; role is EDITOR or USHER.
func NewAccessToken(secret, store, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  store,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
