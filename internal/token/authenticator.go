package token

import (
	"crypto/hmac"
	"errors"
	"time"
)

// Generate issues a token for ident valid for duration from now.
func Generate(ident string, duration time.Duration, salt string, key []byte) (Token, error) {
	return generate(ident, duration, salt, key, time.Now())
}

// Validate checks the signature of tok against salt and key, then its expiry.
// The signature check runs first so tampered and expired tokens fail with
// different errors.
func Validate(tok Token, salt string, key []byte) error {
	return validate(tok, salt, key, time.Now())
}

func generate(ident string, duration time.Duration, salt string, key []byte, now time.Time) (Token, error) {
	exp := now.Add(duration).UTC().Format(time.RFC3339Nano)
	sig, err := signatureFor(ident, exp, salt, key)
	if err != nil {
		return Token{}, err
	}
	return Token{Ident: ident, Exp: exp, Signature: sig}, nil
}

func validate(tok Token, salt string, key []byte, now time.Time) error {
	expected, err := signatureFor(tok.Ident, tok.Exp, salt, key)
	if err != nil {
		return err
	}
	if !hmac.Equal([]byte(expected), []byte(tok.Signature)) {
		return ErrSignatureNotMatching
	}

	exp, err := tok.ExpiresAt()
	if err != nil {
		return err
	}
	// Strict: a token is expired at its exp instant.
	if !exp.After(now) {
		return ErrExpired
	}
	return nil
}

// Config holds the process wide token policy.
type Config struct {
	Key      []byte
	Duration time.Duration
}

// Authenticator binds generate and validate to a fixed key and duration so that
// callers only supply the principal and its salt.
type Authenticator struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
}

// NewAuthenticator constructs an Authenticator from cfg.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if len(cfg.Key) == 0 {
		return nil, ErrKeyFailHmac
	}
	if cfg.Duration <= 0 {
		return nil, errors.New("token: duration must be positive")
	}
	key := make([]byte, len(cfg.Key))
	copy(key, cfg.Key)
	return &Authenticator{key: key, duration: cfg.Duration, now: time.Now}, nil
}

// GenerateToken issues a token for user bound to salt.
func (a *Authenticator) GenerateToken(user, salt string) (Token, error) {
	return generate(user, a.duration, salt, a.key, a.now())
}

// ValidateToken checks tok against salt.
func (a *Authenticator) ValidateToken(tok Token, salt string) error {
	return validate(tok, salt, a.key, a.now())
}

// Remaining returns how long tok stays valid from now.
func (a *Authenticator) Remaining(tok Token) (time.Duration, error) {
	exp, err := tok.ExpiresAt()
	if err != nil {
		return 0, err
	}
	return exp.Sub(a.now()), nil
}

// WithClock returns a copy of a reading time from now. Intended for tests.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	cp := *a
	cp.now = now
	return &cp
}
