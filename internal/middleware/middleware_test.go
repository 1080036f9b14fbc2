package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agribot/internal/model"
	"agribot/internal/session"
	"agribot/internal/session/sessiontest"
	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCookie = web.CookieSettings{Name: "agribot_session", TTL: time.Hour}

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(authority *session.Authority) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(authority, testCookie, zap.NewNop()))
	r.GET("/user_dashboard", RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", CurrentSession(c).Username)
	})
	r.GET("/admin_dashboard", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "admin")
	})
	return r
}

func issue(t *testing.T, authority *session.Authority, p session.Principal) string {
	t.Helper()
	token, _, err := authority.Issue(context.Background(), p)
	require.NoError(t, err)
	return token
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorized(t *testing.T) {
	user := &session.Session{PrincipalID: 3, Role: model.RoleUser}
	admin := &session.Session{PrincipalID: 1, Role: model.RoleAdmin}

	assert.True(t, Authorized(user, model.RoleUser))
	assert.False(t, Authorized(user, model.RoleAdmin))
	assert.True(t, Authorized(admin, model.RoleAdmin))
	assert.False(t, Authorized(admin, model.RoleUser))
	assert.False(t, Authorized(nil, model.RoleUser))
	assert.False(t, Authorized(&session.Session{Role: model.RoleUser}, model.RoleUser))
}

func TestGuards(t *testing.T) {
	authority := session.NewAuthority(sessiontest.NewStore(), "secret", time.Hour, zap.NewNop())
	r := newGuardedRouter(authority)

	userToken := issue(t, authority, session.Principal{ID: 3, Role: model.RoleUser, Username: "alice"})
	adminToken := issue(t, authority, session.Principal{ID: 1, Role: model.RoleAdmin, Username: "admin"})

	t.Run("anonymous user route redirects to login", func(t *testing.T) {
		w := get(r, "/user_dashboard", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("anonymous admin route redirects to admin login", func(t *testing.T) {
		w := get(r, "/admin_dashboard", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin_login", w.Header().Get("Location"))
	})

	t.Run("user session opens user route", func(t *testing.T) {
		w := get(r, "/user_dashboard", userToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello alice", w.Body.String())
	})

	t.Run("user session cannot open admin route", func(t *testing.T) {
		w := get(r, "/admin_dashboard", userToken)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin_login", w.Header().Get("Location"))
	})

	t.Run("admin session cannot open user route", func(t *testing.T) {
		w := get(r, "/user_dashboard", adminToken)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("garbage token clears cookie", func(t *testing.T) {
		w := get(r, "/user_dashboard", "not-a-token")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), testCookie.Name+"=;")
	})
}

func TestSessionMiddleware_DestroyedSession(t *testing.T) {
	authority := session.NewAuthority(sessiontest.NewStore(), "secret", time.Hour, zap.NewNop())
	r := newGuardedRouter(authority)

	token, s, err := authority.Issue(context.Background(), session.Principal{ID: 3, Role: model.RoleUser, Username: "alice"})
	require.NoError(t, err)
	require.NoError(t, authority.Destroy(context.Background(), s.ID))

	w := get(r, "/user_dashboard", token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

type unreachableStore struct{}

func (unreachableStore) Save(context.Context, *session.Session, time.Duration) error {
	return errors.New("redis down")
}
func (unreachableStore) Load(context.Context, string) (*session.Session, error) {
	return nil, errors.New("redis down")
}
func (unreachableStore) Delete(context.Context, string) error { return errors.New("redis down") }

func TestSessionMiddleware_StoreOutageKeepsCookie(t *testing.T) {
	issuer := session.NewAuthority(sessiontest.NewStore(), "secret", time.Hour, zap.NewNop())
	token := issue(t, issuer, session.Principal{ID: 3, Role: model.RoleUser, Username: "alice"})

	r := newGuardedRouter(session.NewAuthority(unreachableStore{}, "secret", time.Hour, zap.NewNop()))
	w := get(r, "/user_dashboard", token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

type stubCounter struct {
	counts map[string]int64
	err    error
}

func (s *stubCounter) IncrWithExpire(_ context.Context, namespace, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.counts[namespace+":"+key]++
	return s.counts[namespace+":"+key], nil
}

func newLimitedRouter(counter Counter, limit int64) *gin.Engine {
	r := gin.New()
	limiter := LoginRateLimiter(counter, limit, time.Minute, zap.NewNop())
	r.GET("/login", limiter, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/login", limiter, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func post(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimiter(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{}}
	r := newLimitedRouter(counter, 2)

	assert.Equal(t, http.StatusNoContent, post(r, "/login").Code)
	assert.Equal(t, http.StatusNoContent, post(r, "/login").Code)

	w := post(r, "/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, int64(3), counter.counts["ratelimit:/login:10.0.0.1"])

	// page views are not counted
	assert.Equal(t, http.StatusOK, get(r, "/login", "").Code)
	assert.Equal(t, int64(3), counter.counts["ratelimit:/login:10.0.0.1"])
}

func TestLoginRateLimiter_FailsOpen(t *testing.T) {
	r := newLimitedRouter(&stubCounter{err: errors.New("redis down")}, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, post(r, "/login").Code)
	}
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), RequestLogger(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/ok", "").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/missing", "").Code)
}
