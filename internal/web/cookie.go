// ABOUTME: Signed session cookie handling for per-client identity
// ABOUTME: Mints an opaque uuid token on first contact, verified on every request
package web

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const sessionCookieName = "chatbot_session"

type sessionCodec struct {
	sc *securecookie.SecureCookie
}

// newSessionCodec builds the cookie signer. Without SESSION_SECRET a random
// per-process key is used, so tokens do not survive a restart. Neither do
// the histories they point at.
func newSessionCodec(secret string) *sessionCodec {
	hashKey := []byte(secret)
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	return &sessionCodec{sc: securecookie.New(hashKey, nil)}
}

// sessionID returns the caller's session token, creating and setting a new
// signed cookie when the request carries none (or a tampered one).
func (c *sessionCodec) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		var id string
		if err := c.sc.Decode(sessionCookieName, cookie.Value, &id); err == nil && id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if encoded, err := c.sc.Encode(sessionCookieName, id); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    encoded,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}
