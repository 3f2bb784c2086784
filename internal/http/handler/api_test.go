package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"abcip/internal/http/middleware"
	"abcip/internal/model"
	"abcip/internal/service"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestIncrementCounter(t *testing.T) {
	env := newTestEnv(t, false)
	id := uuid.NewString()

	t.Run("likes", func(t *testing.T) {
		env.posts.On("Engage", mock.Anything, id, model.CounterLikes).Return(8, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/posts/"+id+"/likes", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body countResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 8, body.Count)
	})

	t.Run("views and shares use their own counters", func(t *testing.T) {
		env.posts.On("Engage", mock.Anything, id, model.CounterViews).Return(1, nil).Once()
		env.posts.On("Engage", mock.Anything, id, model.CounterShares).Return(2, nil).Once()

		assert.Equal(t, http.StatusOK, env.do(t, httptest.NewRequest(http.MethodPost, "/api/posts/"+id+"/views", nil)).StatusCode)
		assert.Equal(t, http.StatusOK, env.do(t, httptest.NewRequest(http.MethodPost, "/api/posts/"+id+"/shares", nil)).StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/posts/not-a-uuid/likes", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("draft or missing post", func(t *testing.T) {
		other := uuid.NewString()
		env.posts.On("Engage", mock.Anything, other, model.CounterLikes).Return(0, service.ErrNotFound).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/posts/"+other+"/likes", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	env.posts.AssertExpectations(t)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t, false)
	id := uuid.NewString()

	t.Run("list returns an empty array rather than null", func(t *testing.T) {
		env.posts.On("Comments", mock.Anything, id).Return(nil, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/posts/"+id+"/comments", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", readBody(t, resp))
	})

	t.Run("add", func(t *testing.T) {
		env.posts.On("AddComment", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
			return c.PostID == id && c.AuthorName == "Ana" && c.Content == "Ótima notícia"
		})).Return(&model.Comment{ID: "c1", PostID: id, AuthorName: "Ana", Content: "Ótima notícia"}, nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/posts/"+id+"/comments",
			`{"author_name":"Ana","content":"Ótima notícia"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var c model.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
		assert.Equal(t, "c1", c.ID)
	})

	t.Run("validation message is returned", func(t *testing.T) {
		env.posts.On("AddComment", mock.Anything, mock.Anything).
			Return(nil, errors.Join(service.ErrInvalidInput, errors.New("content is required"))).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/posts/"+id+"/comments", `{"author_name":"Ana"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_INPUT", body.Error.Code)
		assert.Contains(t, body.Error.Message, "content is required")
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/posts/"+id+"/comments", `{`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestAdminAPI_RequiresSession(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.do(t, jsonRequest(http.MethodPost, "/api/admin/banners", `{"title":"x"}`))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	env.banners.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestBannerAPI(t *testing.T) {
	env := newTestEnv(t, false)
	id := uuid.NewString()

	t.Run("create defaults to active", func(t *testing.T) {
		env.banners.On("Save", mock.Anything, mock.MatchedBy(func(b *model.Banner) bool {
			return b.ID == "" && b.Title == "Congresso" && b.ImageURL == "https://cdn.test/media/banners/a.jpg" && b.Active
		}), (*service.Upload)(nil)).Return(&model.Banner{ID: id, Title: "Congresso", DisplayOrder: 4}, nil).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPost, "/api/admin/banners",
			`{"title":"Congresso","image_url":"https://cdn.test/media/banners/a.jpg"}`)))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var b model.Banner
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
		assert.Equal(t, 4, b.DisplayOrder)
	})

	t.Run("update keeps image and active when omitted", func(t *testing.T) {
		current := &model.Banner{ID: id, Title: "Old", ImageURL: "https://cdn.test/media/banners/a.jpg", Active: false, DisplayOrder: 2}
		env.banners.On("Get", mock.Anything, id).Return(current, nil).Once()
		env.banners.On("Save", mock.Anything, mock.MatchedBy(func(b *model.Banner) bool {
			return b.ID == id && b.Title == "New" && b.ImageURL == current.ImageURL && !b.Active
		}), (*service.Upload)(nil)).Return(current, nil).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPut, "/api/admin/banners/"+id, `{"title":"New"}`)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("update of a missing banner", func(t *testing.T) {
		missing := uuid.NewString()
		env.banners.On("Get", mock.Anything, missing).Return(nil, service.ErrNotFound).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPut, "/api/admin/banners/"+missing, `{"title":"x"}`)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	env.banners.AssertExpectations(t)
}

func TestAssociateAPI(t *testing.T) {
	env := newTestEnv(t, false)
	id := uuid.NewString()

	t.Run("bulk delete", func(t *testing.T) {
		env.associates.On("BulkDelete", mock.Anything, []string{"a", "b"}).Return(int64(2), nil).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPost, "/api/admin/associates/bulk-delete", `{"ids":["a","b"]}`)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deleted":2}`, readBody(t, resp))
	})

	t.Run("bulk delete rejects invalid ids", func(t *testing.T) {
		env.associates.On("BulkDelete", mock.Anything, []string{"x"}).Return(int64(0), service.ErrInvalidInput).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPost, "/api/admin/associates/bulk-delete", `{"ids":["x"]}`)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("move", func(t *testing.T) {
		env.associates.On("Move", mock.Anything, id, "up").Return(nil).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPost, "/api/admin/associates/"+id+"/move", `{"direction":"up"}`)))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("move with unknown direction", func(t *testing.T) {
		env.associates.On("Move", mock.Anything, id, "left").Return(service.ErrInvalidDirection).Once()

		resp := env.do(t, asAdmin(jsonRequest(http.MethodPost, "/api/admin/associates/"+id+"/move", `{"direction":"left"}`)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DIRECTION", decodeError(t, resp).Error.Code)
	})

	env.associates.AssertExpectations(t)
}

func TestConvertLinksAPI(t *testing.T) {
	env := newTestEnv(t, false)
	env.posts.On("ConvertLegacyLinks", mock.Anything).Return(&service.LinkConversion{Scanned: 10, Updated: 3}, nil).Once()

	resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/posts/convert-links", nil)))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"scanned":10,"updated":3}`, readBody(t, resp))
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginAPI(t *testing.T) {
	env := newTestEnv(t, false)

	t.Run("success sets cookie", func(t *testing.T) {
		sess := &service.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: model.AdminUser{ID: "u1"}}
		env.auth.On("Login", mock.Anything, "admin@abcip.org.br", "secret").Return(sess, nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"admin@abcip.org.br","password":"secret"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body loginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "tok", body.AccessToken)
		assert.InDelta(t, 3600, body.ExpiresIn, 5)

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Equal(t, "tok", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("bad credentials", func(t *testing.T) {
		env.auth.On("Login", mock.Anything, "admin@abcip.org.br", "nope").Return(nil, service.ErrInvalidCredentials).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"admin@abcip.org.br","password":"nope"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Nil(t, sessionCookie(resp))
	})
}

func TestSyncSessionAPI(t *testing.T) {
	env := newTestEnv(t, false)
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	t.Run("signed in sets cookie", func(t *testing.T) {
		env.auth.On("Verify", "fresh").Return(&service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		}, nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/session", `{"event":"SIGNED_IN","access_token":"fresh"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Equal(t, "fresh", cookie.Value)
	})

	t.Run("refreshed with a forged token clears cookie", func(t *testing.T) {
		env.auth.On("Verify", "forged").Return(nil, service.ErrInvalidToken).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/session", `{"event":"TOKEN_REFRESHED","access_token":"forged"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
	})

	t.Run("signed out clears cookie", func(t *testing.T) {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/session", `{"event":"SIGNED_OUT"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
	})

	t.Run("unknown event", func(t *testing.T) {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/session", `{"event":"PASSWORD_RECOVERY"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_EVENT", decodeError(t, resp).Error.Code)
	})
}

func TestLogoutAPI(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
