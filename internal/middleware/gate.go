package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yezwei/news-xinjin/pkg/response"
)

// LoginRequired 接口型登录校验：匿名访问返回 SESSIONERR，不做跳转
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			response.FailAbort(c, response.CodeSessionErr, "用户未登录")
			return
		}
		c.Next()
	}
}

// LoginRequiredPage 页面型登录校验：匿名访问重定向到首页
func LoginRequiredPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 后台管理校验，整组路由统一应用（登录页除外）
// 未登录或非管理员一律重定向回门户首页；管理员放行，不做更细粒度的权限区分。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
