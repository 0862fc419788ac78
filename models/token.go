package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued to a syncing device.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token ready to be
// transmitted in the Authorization header.
//
// DeviceID is a cached copy of the "sub" (subject) claim.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// DeviceID is the subject the token was issued for.
	DeviceID string `json:"-"`
}

// String returns the compact JWS serialization of the token
// (the value that should be placed in the "Authorization: Bearer" header).
func (t *Token) String() string {
	return t.SignedString
}
