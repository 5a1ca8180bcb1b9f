package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/response"
)

type gateEnv struct {
	engine   *gin.Engine
	sessions *session.Store
	db       *gorm.DB
}

func setupGateEnv(t *testing.T) *gateEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(rdb, "test-secret", time.Hour)

	engine := gin.New()
	engine.Use(Identity(sessions, repository.NewUserRepository(db)))
	engine.POST("/api", LoginRequired(), func(c *gin.Context) {
		response.Success(c, gin.H{"user_id": CurrentUser(c).ID})
	})
	engine.GET("/page", LoginRequiredPage(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/admin/index", AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "admin")
	})
	return &gateEnv{engine: engine, sessions: sessions, db: db}
}

func (e *gateEnv) login(t *testing.T, isAdmin bool) *http.Cookie {
	t.Helper()
	user := &model.User{Mobile: "13800000001", NickName: "小新", IsAdmin: isAdmin}
	require.NoError(t, e.db.Create(user).Error)

	handle, err := e.sessions.Create(context.Background(), session.Data{
		UserID:   user.ID,
		NickName: user.NickName,
		Mobile:   user.Mobile,
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: handle}
}

func TestLoginRequiredRejectsAnonymous(t *testing.T) {
	env := setupGateEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api", nil)
	env.engine.ServeHTTP(w, req)

	// 业务拒绝也走 HTTP 200，errno 表达未登录
	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeSessionErr, resp.Errno)
}

func TestLoginRequiredPassesLoggedIn(t *testing.T) {
	env := setupGateEnv(t)
	cookie := env.login(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api", nil)
	req.AddCookie(cookie)
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeOK, resp.Errno)
}

func TestLoginRequiredPageRedirectsAnonymous(t *testing.T) {
	env := setupGateEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminRequiredRedirectsNonAdmin(t *testing.T) {
	env := setupGateEnv(t)
	cookie := env.login(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/index", nil)
	req.AddCookie(cookie)
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminRequiredPassesAdmin(t *testing.T) {
	env := setupGateEnv(t)
	cookie := env.login(t, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/index", nil)
	req.AddCookie(cookie)
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestIdentityExpiredSessionIsAnonymous(t *testing.T) {
	env := setupGateEnv(t)
	cookie := env.login(t, false)
	require.NoError(t, env.sessions.Destroy(context.Background(), cookie.Value))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api", nil)
	req.AddCookie(cookie)
	env.engine.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeSessionErr, resp.Errno)
}
