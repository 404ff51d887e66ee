package token

// Error is a token failure kind. Values are compared with errors.Is.
type Error struct {
	kind string
	msg  string
}

func (e *Error) Error() string {
	return "token: " + e.msg
}

// Kind returns the stable identifier used in server-side error records.
func (e *Error) Kind() string {
	return e.kind
}

var (
	// ErrInvalidFormat indicates the wire string is not three dot separated parts.
	ErrInvalidFormat = &Error{kind: "TokenInvalidFormat", msg: "invalid format"}
	// ErrCannotDecodeIdent indicates the ident part is not base64url text.
	ErrCannotDecodeIdent = &Error{kind: "TokenCannotDecodeIdent", msg: "cannot decode ident"}
	// ErrCannotDecodeExp indicates the exp part is not base64url text.
	ErrCannotDecodeExp = &Error{kind: "TokenCannotDecodeExp", msg: "cannot decode exp"}
	// ErrSignatureNotMatching indicates the token was not signed with this key and salt.
	ErrSignatureNotMatching = &Error{kind: "TokenSignatureNotMatching", msg: "signature not matching"}
	// ErrExpNotIso indicates exp is not an RFC3339 timestamp.
	ErrExpNotIso = &Error{kind: "TokenExpNotIso", msg: "exp is not rfc3339"}
	// ErrExpired indicates exp is not in the future.
	ErrExpired = &Error{kind: "TokenExpired", msg: "expired"}
	// ErrKeyFailHmac indicates the signing key cannot key the MAC.
	ErrKeyFailHmac = &Error{kind: "KeyFailHmac", msg: "key cannot init hmac"}
)
