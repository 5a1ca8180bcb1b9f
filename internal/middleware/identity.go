package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/logger"
	"github.com/yezwei/news-xinjin/pkg/response"
)

const (
	ctxUserKey    = "current_user"
	ctxSessionKey = "current_session"
	ctxHandleKey  = "session_handle"
)

// Identity 每个请求解析一次当前登录用户并挂到请求上下文
// 句柄缺失或过期视为匿名访问，不是错误；数据层查询失败按 DBERR 返回。
func Identity(store *session.Store, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ctxHandleKey, handle)

		data, err := store.Get(c.Request.Context(), handle)
		if err != nil {
			logger.Error("查询 session 数据异常", zap.Error(err))
			response.FailAbort(c, response.CodeDBErr, "查询 session 数据异常")
			return
		}
		if data == nil {
			c.Next()
			return
		}
		c.Set(ctxSessionKey, data)

		user, err := users.GetByID(c.Request.Context(), data.UserID)
		if err != nil {
			logger.Error("查询用户对象异常", zap.Error(err))
			response.FailAbort(c, response.CodeDBErr, "查询用户对象异常")
			return
		}
		if user != nil {
			c.Set(ctxUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser 取出本次请求解析到的用户，匿名时返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// CurrentSession 取出本次请求的 session 记录，匿名时返回 nil
func CurrentSession(c *gin.Context) *session.Data {
	if v, ok := c.Get(ctxSessionKey); ok {
		if d, ok := v.(*session.Data); ok {
			return d
		}
	}
	return nil
}

// SessionHandle 取出客户端携带的 session 句柄
func SessionHandle(c *gin.Context) string {
	if v, ok := c.Get(ctxHandleKey); ok {
		if h, ok := v.(string); ok {
			return h
		}
	}
	return ""
}
