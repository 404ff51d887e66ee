package token

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
)

// Sign computes the base64url HMAC-SHA512 of content followed by salt.
// The result is deterministic for identical inputs.
func Sign(content, salt string, key []byte) (string, error) {
	if len(key) == 0 {
		return "", ErrKeyFailHmac
	}
	mac := hmac.New(sha512.New, key)
	_, _ = mac.Write([]byte(content))
	_, _ = mac.Write([]byte(salt))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// signatureFor signs the content of a token with ident and exp.
func signatureFor(ident, exp, salt string, key []byte) (string, error) {
	return Sign(content(ident, exp), salt, key)
}
