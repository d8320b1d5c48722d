package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "user_session"

	cookieLifetime = 24 * time.Hour
)

// FromRequest returns the session id carried by the request cookie.
func FromRequest(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

// NewCookie issues a cookie for a fresh session id.
func NewCookie(path string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    uuid.NewString(),
		Expires:  time.Now().Add(cookieLifetime),
		Path:     path,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Ensure returns the request's session id, setting a new session cookie on writer when there is none.
func Ensure(writer http.ResponseWriter, req *http.Request, path string) string {
	if id, ok := FromRequest(req); ok {
		return id
	}

	cookie := NewCookie(path)
	http.SetCookie(writer, cookie)

	return cookie.Value
}
