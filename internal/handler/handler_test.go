package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/mocks"
	"maple-blog/internal/service/auth"
	"maple-blog/internal/service/comment"
	"maple-blog/internal/service/dashboard"
	"maple-blog/internal/service/feed"
	"maple-blog/internal/service/like"
	"maple-blog/internal/service/search"
	"maple-blog/internal/service/shortlink"
	"maple-blog/internal/service/telegram"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "development",
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AdminPassword: "hunter2",
		AdminNickname: "Maple",
		AdminEmail:    "maple@example.com",
		AdminWebsite:  "https://example.com",
		AdminAvatar:   "https://example.com/avatar.webp",
		AdminAliases:  []string{"admin"},
		SiteURL:       "https://example.com",
	}
}

type testEnv struct {
	app         *fiber.App
	commentRepo *mocks.CommentRepository
	likeRepo    *mocks.LikeRepository
	links       *mocks.ShortLinkService
	auth        auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	env := &testEnv{
		commentRepo: new(mocks.CommentRepository),
		likeRepo:    new(mocks.LikeRepository),
		links:       new(mocks.ShortLinkService),
		auth:        auth.NewService(cfg),
	}

	commentSvc := comment.NewService(env.commentRepo, env.likeRepo, nil, cfg)
	likeSvc := like.NewService(env.likeRepo, env.commentRepo)
	dashboardSvc := dashboard.NewService(env.commentRepo, env.likeRepo, env.links, nil)

	commentHandler := NewCommentHandler(commentSvc, likeSvc)
	likeHandler := NewLikeHandler(likeSvc)
	authHandler := NewAuthHandler(env.auth, cfg)
	dashboardHandler := NewDashboardHandler(dashboardSvc, env.links, commentSvc)
	searchHandler := NewSearchHandler(search.NewService(stubPosts{}))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	api := app.Group("/api", middleware.OptionalAdmin(env.auth))
	api.Get("/comments", commentHandler.List)
	api.Post("/comments", commentHandler.Create)
	api.Post("/comments/like", commentHandler.ToggleLike)
	api.Get("/like", likeHandler.Status)
	api.Post("/like", likeHandler.Toggle)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/me", authHandler.Me)
	api.Post("/search", searchHandler.Search)

	admin := api.Group("/admin", middleware.AdminRequired(env.auth))
	admin.Get("/stats", dashboardHandler.Stats)
	admin.Get("/sink-details", dashboardHandler.SinkDetails)
	admin.Get("/comments", dashboardHandler.ListComments)
	admin.Delete("/comments/:id", dashboardHandler.DeleteComment)

	env.app = app
	return env
}

type stubPosts struct{}

func (stubPosts) Posts(context.Context) ([]domain.Post, error) {
	return []domain.Post{{Slug: "kyoto", Title: "Kyoto", LongURL: "https://example.com/blog/kyoto"}}, nil
}

func (e *testEnv) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/login", domain.LoginInput{Nickname: "Maple", Email: "maple@example.com", Password: "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AuthCookie {
			return c
		}
	}
	t.Fatal("no auth cookie issued")
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestListComments(t *testing.T) {
	env := newTestEnv(t)

	rootID, replyID := uuid.New(), uuid.New()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	env.commentRepo.On("ListByScope", mock.Anything, domain.CommentTypeBlog, "hello").Return([]domain.Comment{
		{ID: rootID, Type: domain.CommentTypeBlog, Identifier: "hello", Nickname: "a", Email: "a@example.com", CreatedAt: base},
		{ID: replyID, Type: domain.CommentTypeBlog, Identifier: "hello", ParentID: &rootID, Nickname: "b", Email: "b@example.com", CreatedAt: base.Add(time.Minute)},
	}, nil)
	env.likeRepo.On("ListByComments", mock.Anything, mock.Anything).Return([]domain.CommentLike{
		{CommentID: replyID, DeviceID: "dev-1"},
		{CommentID: replyID, DeviceID: "dev-2"},
	}, nil)

	resp := env.do(t, http.MethodGet, "/api/comments?identifier=hello&deviceId=dev-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[[]map[string]any](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, rootID.String(), list[0]["id"])
	assert.EqualValues(t, 0, list[0]["level"])
	assert.Equal(t, replyID.String(), list[1]["id"])
	assert.EqualValues(t, 1, list[1]["level"])
	assert.EqualValues(t, 2, list[1]["likes"])
	assert.Equal(t, true, list[1]["isLiked"])
	assert.NotContains(t, list[0], "email")
	assert.NotContains(t, list[0], "children")
}

func TestListCommentsGuestbook(t *testing.T) {
	env := newTestEnv(t)

	older, newer := uuid.New(), uuid.New()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	env.commentRepo.On("ListByScope", mock.Anything, domain.CommentTypeBlog, "guestbook").Return([]domain.Comment{
		{ID: older, Type: domain.CommentTypeBlog, Identifier: "guestbook", CreatedAt: base},
		{ID: newer, Type: domain.CommentTypeBlog, Identifier: "guestbook", CreatedAt: base.Add(time.Hour)},
	}, nil)
	env.likeRepo.On("ListByComments", mock.Anything, mock.Anything).Return([]domain.CommentLike{}, nil)

	resp := env.do(t, http.MethodGet, "/api/comments?identifier=guestbook&mode=guestbook", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tree := decode[[]map[string]any](t, resp)
	require.Len(t, tree, 2)
	assert.Equal(t, newer.String(), tree[0]["id"])
	assert.Contains(t, tree[0], "children")
}

func TestListCommentsBadRequests(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/api/comments",
		"/api/comments?identifier=x&commentType=forum",
		"/api/comments?identifier=x&mode=grid",
	} {
		resp := env.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		body := decode[middleware.ErrorResponse](t, resp)
		assert.Equal(t, "BAD_REQUEST", body.Code)
		assert.NotEmpty(t, body.TraceID)
	}
}

func TestListCommentsFailure(t *testing.T) {
	env := newTestEnv(t)
	env.commentRepo.On("ListByScope", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	resp := env.do(t, http.MethodGet, "/api/comments?identifier=x", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[middleware.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestCreateCommentGuest(t *testing.T) {
	env := newTestEnv(t)
	env.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)

	resp := env.do(t, http.MethodPost, "/api/comments", map[string]any{
		"identifier": "hello",
		"content":    "nice **post**",
		"userInfo":   map[string]any{"nickname": "reader", "email": "reader@example.com"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, true, body["success"])
	created := body["comment"].(map[string]any)
	assert.Equal(t, "reader", created["nickname"])
	assert.Equal(t, false, created["isAdmin"])
	assert.Contains(t, created["content"], "<strong>post</strong>")
}

func TestCreateCommentAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)
	cookie := env.adminCookie(t)

	resp := env.do(t, http.MethodPost, "/api/comments", map[string]any{
		"identifier": "hello",
		"content":    "thanks",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[map[string]any](t, resp)["comment"].(map[string]any)
	assert.Equal(t, "Maple", created["nickname"])
	assert.Equal(t, true, created["isAdmin"])
}

func TestCreateCommentRejected(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{
			name:   "missing guest info",
			body:   map[string]any{"identifier": "hello", "content": "hi"},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing content",
			body:   map[string]any{"identifier": "hello", "userInfo": map[string]any{"nickname": "r", "email": "r@example.com"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "reserved nickname",
			body:   map[string]any{"identifier": "hello", "content": "hi", "userInfo": map[string]any{"nickname": "ADMIN", "email": "x@example.com"}},
			status: http.StatusForbidden,
		},
		{
			name:   "bad email",
			body:   map[string]any{"identifier": "hello", "content": "hi", "userInfo": map[string]any{"nickname": "r", "email": "nope"}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			resp := env.do(t, http.MethodPost, "/api/comments", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			env.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCommentMissingParent(t *testing.T) {
	env := newTestEnv(t)
	parentID := uuid.New()
	env.commentRepo.On("GetByID", mock.Anything, parentID).Return(nil, nil)

	resp := env.do(t, http.MethodPost, "/api/comments", map[string]any{
		"identifier": "hello",
		"content":    "reply",
		"parentId":   parentID,
		"userInfo":   map[string]any{"nickname": "r", "email": "r@example.com"},
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleCommentLike(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	env.commentRepo.On("GetByID", mock.Anything, id).Return(&domain.Comment{ID: id, Type: domain.CommentTypeBlog}, nil)
	env.likeRepo.On("ToggleComment", mock.Anything, id, "dev-1").Return(4, true, nil)

	resp := env.do(t, http.MethodPost, "/api/comments/like", map[string]any{
		"commentId":   id,
		"commentType": "blog",
		"deviceId":    "dev-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.LikeResult{Success: true, LikeCount: 4, IsLiked: true}, decode[domain.LikeResult](t, resp))

	resp = env.do(t, http.MethodPost, "/api/comments/like", map[string]any{
		"commentId":   id,
		"commentType": "telegram",
		"deviceId":    "dev-1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/comments/like", map[string]any{"commentId": id, "commentType": "blog"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostLikes(t *testing.T) {
	env := newTestEnv(t)
	env.likeRepo.On("PostStatus", mock.Anything, "hello", "dev-1").Return(3, false, nil)
	env.likeRepo.On("TogglePost", mock.Anything, "hello", "dev-1").Return(4, true, nil)

	resp := env.do(t, http.MethodGet, "/api/like?postId=hello&deviceId=dev-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.LikeStatus{LikeCount: 3, HasLiked: false}, decode[domain.LikeStatus](t, resp))

	resp = env.do(t, http.MethodPost, "/api/like", domain.TogglePostLikeInput{PostID: "hello", DeviceID: "dev-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.LikeResult{Success: true, LikeCount: 4, IsLiked: true}, decode[domain.LikeResult](t, resp))

	resp = env.do(t, http.MethodGet, "/api/like?postId=hello", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env.likeRepo.On("TogglePost", mock.Anything, "broken", "dev-1").Return(0, false, errors.New("deadlock"))
	resp = env.do(t, http.MethodPost, "/api/like", domain.TogglePostLikeInput{PostID: "broken", DeviceID: "dev-1"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/login", domain.LoginInput{Nickname: "reader", Email: "reader@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, domain.LoginResponse{Success: true}, decode[domain.LoginResponse](t, resp))

	resp = env.do(t, http.MethodPost, "/api/login", domain.LoginInput{Nickname: "Maple", Email: "x@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := env.adminCookie(t)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	resp = env.do(t, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[domain.MeResponse](t, resp)
	assert.True(t, me.IsLoggedIn)
	assert.True(t, me.IsAdmin)
	assert.Equal(t, "Maple", me.Nickname)
	assert.Equal(t, "https://example.com/avatar.webp", me.Avatar)

	resp = env.do(t, http.MethodGet, "/api/me", nil)
	assert.Equal(t, domain.MeResponse{}, decode[domain.MeResponse](t, resp))

	resp = env.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := resp.Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.True(t, cleared[0].Expires.Before(time.Now()))
}

func TestLoginPasswordNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.AdminPassword = ""
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Post("/api/login", NewAuthHandler(auth.NewService(cfg), cfg).Login)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"nickname":"Maple","email":"","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/admin/stats", nil, &http.Cookie{Name: middleware.AuthCookie, Value: "forged"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	env.commentRepo.On("CountByType", mock.Anything, domain.CommentTypeBlog).Return(int64(5), nil)
	env.commentRepo.On("CountByType", mock.Anything, domain.CommentTypeTelegram).Return(int64(1), nil)
	env.likeRepo.On("SumPostLikes", mock.Anything).Return(int64(9), nil)
	env.likeRepo.On("CountCommentLikes", mock.Anything, mock.Anything).Return(int64(2), nil)
	env.links.On("TotalViews", mock.Anything).Return(int64(1234), nil)

	resp := env.do(t, http.MethodGet, "/api/admin/stats", nil, env.adminCookie(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decode[domain.AdminStats](t, resp)
	assert.Equal(t, int64(6), stats.Comments.Total)
	assert.Equal(t, int64(13), stats.Likes.Total)
	assert.Equal(t, int64(1234), stats.Sink.TotalViews)
}

func TestSinkDetails(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	env.links.On("Report", mock.Anything, "views", mock.MatchedBy(func(q url.Values) bool {
		return q.Get("period") == "last-7d" && q.Get("report") == "views"
	})).Return(json.RawMessage(`{"data":[{"time":"2024-06-01","visitors":3}]}`), nil)

	resp := env.do(t, http.MethodGet, "/api/admin/sink-details?report=views&period=last-7d", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"data":[{"time":"2024-06-01","visitors":3}]}`, string(raw))
}

func TestSinkDetailsErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid report", err: shortlink.ErrInvalidReport, status: http.StatusBadRequest},
		{name: "not configured", err: domain.ErrNotConfigured, status: http.StatusInternalServerError},
		{name: "upstream", err: &shortlink.UpstreamError{Status: http.StatusUnauthorized, Body: "bad key"}, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			cookie := env.adminCookie(t)
			env.links.On("Report", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			resp := env.do(t, http.MethodGet, "/api/admin/sink-details?report=bogus", nil, cookie)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminComments(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)
	id := uuid.New()

	env.commentRepo.On("ListAll", mock.Anything, domain.CommentTypeTelegram, domain.PaginationParams{Page: 2, PageSize: 5}).
		Return([]domain.Comment{{ID: id, Email: "r@example.com"}}, int64(6), nil)

	resp := env.do(t, http.MethodGet, "/api/admin/comments?commentType=telegram&page=2&limit=5", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := decode[domain.PaginatedResponse[domain.Comment]](t, resp)
	assert.Equal(t, int64(6), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "r@example.com", page.Data[0].Email)

	env.commentRepo.On("GetByID", mock.Anything, id).Return(&domain.Comment{ID: id, Type: domain.CommentTypeBlog, Identifier: "hello"}, nil)
	env.commentRepo.On("Delete", mock.Anything, id).Return(int64(3), nil)

	resp = env.do(t, http.MethodDelete, "/api/admin/comments/"+id.String(), nil, cookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	missing := uuid.New()
	env.commentRepo.On("GetByID", mock.Anything, missing).Return(nil, nil)
	resp = env.do(t, http.MethodDelete, "/api/admin/comments/"+missing.String(), nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/admin/comments/not-a-uuid", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/search", domain.SearchInput{Query: "kyoto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[domain.SearchResult](t, resp)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "https://example.com/blog/kyoto", result.Results[0].URL)

	resp = env.do(t, http.MethodPost, "/api/search", domain.SearchInput{Query: "k"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type clientFunc func(*http.Request) (*http.Response, error)

func (f clientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTelegramErrors(t *testing.T) {
	cfg := testConfig()
	cfg.TelegramHost = "t.me"

	unconfigured := NewTelegramHandler(telegram.NewService(cfg, clientFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})))

	cfg.Channel = "maple"
	configured := NewTelegramHandler(telegram.NewService(cfg, clientFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/unconfigured/channel", unconfigured.Channel)
	app.Get("/configured/posts/:id", configured.Post)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/unconfigured/channel", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Telegram channel is not configured", decode[middleware.ErrorResponse](t, resp).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/configured/posts/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeedRoutes(t *testing.T) {
	h := NewFeedHandler(feed.NewService(stubPosts{}, testConfig()))
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/rss.xml", h.RSS)
	app.Get("/robots.txt", h.Robots)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rss.xml", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "https://example.com/blog/kyoto/")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/robots.txt", nil), -1)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Sitemap: https://example.com/sitemap-index.xml")
}
