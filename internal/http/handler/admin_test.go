package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"abcip/internal/model"
	"abcip/internal/service"
)

func multipartRequest(t *testing.T, target string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func toastOf(t *testing.T, resp *http.Response) (path, kind, msg string) {
	t.Helper()
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	return loc.Path, loc.Query().Get("kind"), loc.Query().Get("toast")
}

func TestAdminPages_RedirectAnonymous(t *testing.T) {
	env := newTestEnv(t, true)

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/admin/posts", nil))

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fposts", resp.Header.Get("Location"))
	env.posts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t, true)

	t.Run("form renders", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/admin/login?next=/admin/banners", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
		body := readBody(t, resp)
		assert.Contains(t, body, `name="next" value="/admin/banners"`)
	})

	t.Run("signed in admin skips the form", func(t *testing.T) {
		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/login", nil)))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	})

	t.Run("success follows next inside admin only", func(t *testing.T) {
		sess := &service.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: model.AdminUser{ID: "u1"}}
		env.auth.On("Login", mock.Anything, "admin@abcip.org.br", "secret").Return(sess, nil).Twice()

		resp := env.do(t, formRequest("/admin/login", url.Values{
			"email": {"admin@abcip.org.br"}, "password": {"secret"}, "next": {"/admin/banners"},
		}))
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin/banners", resp.Header.Get("Location"))
		require.NotNil(t, sessionCookie(resp))

		resp = env.do(t, formRequest("/admin/login", url.Values{
			"email": {"admin@abcip.org.br"}, "password": {"secret"}, "next": {"https://evil.example"},
		}))
		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	})

	t.Run("bad credentials", func(t *testing.T) {
		env.auth.On("Login", mock.Anything, "admin@abcip.org.br", "nope").Return(nil, service.ErrInvalidCredentials).Once()

		resp := env.do(t, formRequest("/admin/login", url.Values{"email": {"admin@abcip.org.br"}, "password": {"nope"}}))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		path, kind, msg := toastOf(t, resp)
		assert.Equal(t, "/admin/login", path)
		assert.Equal(t, "error", kind)
		assert.Equal(t, "E-mail ou senha inválidos.", msg)
		assert.Nil(t, sessionCookie(resp))
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/logout", nil)))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
	})
}

func TestAdminDashboard(t *testing.T) {
	env := newTestEnv(t, true)
	env.dashboard.On("Stats", mock.Anything).Return(&model.DashboardStats{Posts: 12, UnreadMessages: 3, TotalViews: 45210}, nil)

	resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin", nil)))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "45.210")
	assert.Contains(t, body, "admin@abcip.org.br")
}

func TestAdminOrderedResource(t *testing.T) {
	env := newTestEnv(t, true)
	id := uuid.NewString()

	t.Run("list", func(t *testing.T) {
		env.banners.On("List", mock.Anything, false).Return([]model.Banner{{ID: id, Title: "Slide 1", DisplayOrder: 1}}, nil).Once()

		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/banners", nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Slide 1")
		assert.Contains(t, body, `action="/admin/banners/`+id+`/move"`)
	})

	t.Run("create with image upload", func(t *testing.T) {
		env.banners.On("Save", mock.Anything,
			mock.MatchedBy(func(b *model.Banner) bool { return b.ID == "" && b.Title == "Novo" && b.Active }),
			mock.MatchedBy(func(u *service.Upload) bool {
				return u != nil && u.Filename == "slide.PNG" && u.Reader != nil && u.Size == int64(len("fake image bytes"))
			}),
		).Return(&model.Banner{ID: id}, nil).Once()

		resp := env.do(t, asAdmin(multipartRequest(t, "/admin/banners",
			map[string]string{"title": "Novo", "active": "true"},
			map[string]string{"image": "slide.PNG"})))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		path, kind, _ := toastOf(t, resp)
		assert.Equal(t, "/admin/banners", path)
		assert.Equal(t, "success", kind)
	})

	t.Run("update without a new image", func(t *testing.T) {
		env.banners.On("Save", mock.Anything,
			mock.MatchedBy(func(b *model.Banner) bool { return b.ID == id && !b.Active }),
			(*service.Upload)(nil),
		).Return(&model.Banner{ID: id}, nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/banners/"+id, url.Values{"title": {"Editado"}})))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})

	t.Run("save failure shows validation detail", func(t *testing.T) {
		env.committees.On("Save", mock.Anything, mock.Anything, (*service.Upload)(nil)).
			Return(nil, service.ErrInvalidInput).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/committees", url.Values{"name": {""}})))

		_, kind, msg := toastOf(t, resp)
		assert.Equal(t, "error", kind)
		assert.Contains(t, msg, "invalid input")
	})

	t.Run("move", func(t *testing.T) {
		env.videos.On("Move", mock.Anything, id, "down").Return(nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/videos/"+id+"/move", url.Values{"direction": {"down"}})))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin/videos", resp.Header.Get("Location"))
	})

	t.Run("delete", func(t *testing.T) {
		env.team.On("Delete", mock.Anything, id).Return(nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/team/"+id+"/delete", nil)))

		path, kind, _ := toastOf(t, resp)
		assert.Equal(t, "/admin/team", path)
		assert.Equal(t, "success", kind)
	})

	t.Run("edit form of a missing record", func(t *testing.T) {
		missing := uuid.NewString()
		env.associates.On("Get", mock.Anything, missing).Return(nil, service.ErrNotFound).Once()

		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/associates/"+missing+"/edit", nil)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	env.banners.AssertExpectations(t)
	env.videos.AssertExpectations(t)
	env.team.AssertExpectations(t)
}

func TestAdminPosts(t *testing.T) {
	env := newTestEnv(t, true)
	id := uuid.NewString()

	t.Run("save parses publish date in the configured zone", func(t *testing.T) {
		env.posts.On("Save", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
			want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
			return p.ID == id && p.Title == "Título" && p.Published &&
				p.PublishedAt != nil && p.PublishedAt.Equal(want) && p.Content == "<p>corpo</p>"
		}), (*service.Upload)(nil)).Return(&model.Post{ID: id}, nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/posts/"+id, url.Values{
			"title":        {"Título"},
			"content":      {"<p>corpo</p>"},
			"published":    {"true"},
			"published_at": {"2024-06-01T09:30"},
		})))

		_, kind, _ := toastOf(t, resp)
		assert.Equal(t, "success", kind)
	})

	t.Run("convert links reports counts", func(t *testing.T) {
		env.posts.On("ConvertLegacyLinks", mock.Anything).Return(&service.LinkConversion{Scanned: 7, Updated: 2}, nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/posts/convert-links", nil)))

		_, _, msg := toastOf(t, resp)
		assert.Equal(t, "Links convertidos em 2 de 7 notícias.", msg)
	})

	t.Run("list paginates", func(t *testing.T) {
		env.posts.On("List", mock.Anything, service.PostQuery{Page: 1, PerPage: adminPostsPerPage, Search: "luz"}).
			Return(&service.PostListResult{Items: []model.Post{{ID: id, Title: "Luz pública"}}, Page: 1, TotalPages: 3}, nil).Once()

		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/posts?q=luz", nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Luz pública")
		assert.Contains(t, body, `/admin/posts?page=3&q=luz`)
	})

	t.Run("delete comment returns to the comments page", func(t *testing.T) {
		commentID := uuid.NewString()
		env.posts.On("DeleteComment", mock.Anything, commentID).Return(nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/comments/"+commentID+"/delete", url.Values{
			"back": {"/admin/posts/" + id + "/comments"},
		})))

		path, _, _ := toastOf(t, resp)
		assert.Equal(t, "/admin/posts/"+id+"/comments", path)
	})

	env.posts.AssertExpectations(t)
}

func TestAdminMessages(t *testing.T) {
	env := newTestEnv(t, true)
	id := uuid.NewString()

	env.contact.On("List", mock.Anything, service.DefaultMessagesPerPage, service.DefaultMessagesPerPage).
		Return(&service.MessageListResult{Items: []model.ContactMessage{{ID: id, Name: "Ana", Email: "ana@example.com", Message: "Oi"}}, Total: 25}, nil).Once()
	resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/messages?page=2", nil)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `class="unread"`)

	env.contact.On("MarkRead", mock.Anything, id, true).Return(nil).Once()
	resp = env.do(t, asAdmin(formRequest("/admin/messages/"+id+"/read", url.Values{"read": {"true"}})))
	assert.Equal(t, "/admin/messages", resp.Header.Get("Location"))

	env.contact.AssertExpectations(t)
}

func TestAdminSettings(t *testing.T) {
	env := newTestEnv(t, true)

	t.Run("save site with logo", func(t *testing.T) {
		env.settings.On("SaveSite", mock.Anything,
			mock.MatchedBy(func(s *model.SiteSettings) bool { return s.SiteName == "ABCIP" && s.CTAButtonLink == "/contato" }),
			mock.MatchedBy(func(u *service.Upload) bool { return u != nil && u.Filename == "logo.svg" }),
			(*service.Upload)(nil),
		).Return(&model.SiteSettings{}, nil).Once()

		resp := env.do(t, asAdmin(multipartRequest(t, "/admin/settings",
			map[string]string{"site_name": "ABCIP", "cta_button_link": "/contato"},
			map[string]string{"logo": "logo.svg"})))

		_, kind, _ := toastOf(t, resp)
		assert.Equal(t, "success", kind)
	})

	t.Run("page banner of unknown page", func(t *testing.T) {
		resp := env.do(t, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/page-banners/home", nil)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("save page banner", func(t *testing.T) {
		env.settings.On("SavePageBanner", mock.Anything,
			mock.MatchedBy(func(b *model.PageBanner) bool { return b.Page == model.PageNews && b.Title == "Notícias" }),
			(*service.Upload)(nil),
		).Return(&model.PageBanner{}, nil).Once()

		resp := env.do(t, asAdmin(formRequest("/admin/page-banners/news", url.Values{"title": {"Notícias"}})))

		path, kind, _ := toastOf(t, resp)
		assert.Equal(t, "/admin/page-banners/news", path)
		assert.Equal(t, "success", kind)
	})

	env.settings.AssertExpectations(t)
}
