// Package token issues and validates the signed session tokens carried in the
// auth cookie.
//
// Wire format: b64u(ident) "." b64u(exp) "." signature, where signature is already
// base64url text produced by Sign. All base64 is URL safe without padding.
package token

import (
	"encoding/base64"
	"strings"
	"time"
	"unicode/utf8"
)

// b64u decodes strictly so that each segment has exactly one wire form.
var b64u = base64.RawURLEncoding.Strict()

// Token is a parsed session token. Values are immutable once built.
type Token struct {
	// Ident identifies the principal, the username for user tokens.
	Ident string
	// Exp is the expiration instant in RFC3339.
	Exp string
	// Signature is the base64url encoded MAC over ident, exp and salt.
	Signature string
}

// Parse decodes a token from its wire string.
func Parse(s string) (Token, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Token{}, ErrInvalidFormat
	}

	ident, ok := b64uDecode(parts[0])
	if !ok {
		return Token{}, ErrCannotDecodeIdent
	}
	exp, ok := b64uDecode(parts[1])
	if !ok {
		return Token{}, ErrCannotDecodeExp
	}

	return Token{Ident: ident, Exp: exp, Signature: parts[2]}, nil
}

// String formats the token for the wire.
func (t Token) String() string {
	return content(t.Ident, t.Exp) + "." + t.Signature
}

// ExpiresAt parses the exp field.
func (t Token) ExpiresAt() (time.Time, error) {
	exp, err := time.Parse(time.RFC3339, t.Exp)
	if err != nil {
		return time.Time{}, ErrExpNotIso
	}
	return exp, nil
}

// content is the signed portion of a token.
func content(ident, exp string) string {
	return b64uEncode(ident) + "." + b64uEncode(exp)
}

func b64uEncode(s string) string {
	return b64u.EncodeToString([]byte(s))
}

func b64uDecode(s string) (string, bool) {
	// Strict still skips CR and LF.
	if strings.ContainsAny(s, "\r\n") {
		return "", false
	}
	raw, err := b64u.DecodeString(s)
	if err != nil || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}
