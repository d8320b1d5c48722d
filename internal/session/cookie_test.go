package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure(t *testing.T) {
	t.Run("Reuses the existing cookie", func(t *testing.T) {
		// Given: a request carrying a session cookie
		req := httptest.NewRequest(http.MethodGet, "/api/game", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
		recorder := httptest.NewRecorder()

		// When: the session is ensured
		id := Ensure(recorder, req, "/")

		// Then: the same id is returned and no cookie is set
		assert.Equal(t, "abc", id)
		assert.Empty(t, recorder.Result().Cookies())
	})

	t.Run("Issues a new cookie", func(t *testing.T) {
		// Given: a request without a session cookie
		req := httptest.NewRequest(http.MethodGet, "/api/game", nil)
		recorder := httptest.NewRecorder()

		// When: the session is ensured
		id := Ensure(recorder, req, "/api")

		// Then: a uuid session cookie is set
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.Equal(t, "/api", cookies[0].Path)
	})
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := FromRequest(req)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: CookieName, Value: ""})
	_, ok = FromRequest(req)
	assert.False(t, ok)
}
