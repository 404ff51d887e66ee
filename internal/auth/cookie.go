package auth

import (
	"net/http"

	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

// CookieName is the cookie carrying the auth token.
const CookieName = "auth-token"

// setTokenCookie writes tok as the auth cookie. The cookie expires with the token.
func setTokenCookie(w http.ResponseWriter, tok token.Token, secure bool) error {
	exp, err := tok.ExpiresAt()
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok.String(),
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func removeTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
