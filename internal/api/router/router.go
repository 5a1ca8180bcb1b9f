package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yezwei/news-xinjin/internal/api/handler"
	"github.com/yezwei/news-xinjin/internal/middleware"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/session"
)

// Setup 组装全部路由与中间件
func Setup(h *handler.Handler, sessions *session.Store, users repository.UserRepository, development bool) *gin.Engine {
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("news-xinjin"))
	// 每个请求解析一次登录态
	r.Use(middleware.Identity(sessions, users))

	r.GET("/", h.Index)
	r.GET("/news_list", h.NewsList)

	passport := r.Group("/passport")
	{
		passport.GET("/image_code", h.ImageCode)
		passport.POST("/sms_code", h.SMSCode)
		passport.POST("/register", h.Register)
		passport.POST("/login", h.Login)
		passport.POST("/logout", h.Logout)
	}

	news := r.Group("/news")
	{
		news.GET("/detail/:id", h.NewsDetail)

		authed := news.Group("", middleware.LoginRequired())
		{
			authed.POST("/news_collect", h.NewsCollect)
			authed.POST("/news_comment", h.NewsComment)
			authed.POST("/comment_like", h.CommentLike)
			authed.POST("/followed_user", h.FollowedUser)
		}
	}

	user := r.Group("/user")
	{
		// 个人中心首页是页面入口，未登录跳回首页
		user.GET("/info", middleware.LoginRequiredPage(), h.UserInfo)

		authed := user.Group("", middleware.LoginRequired())
		{
			authed.GET("/base_info", h.BaseInfo)
			authed.POST("/base_info", h.UpdateBaseInfo)
			authed.GET("/pass_info", h.PassInfoPage)
			authed.POST("/pass_info", h.PassInfo)
			authed.GET("/pic_info", h.PicInfoPage)
			authed.POST("/pic_info", h.PicInfo)
			authed.GET("/collection", h.Collection)
			authed.GET("/news_release", h.NewsReleaseCategories)
			authed.POST("/news_release", h.NewsRelease)
			authed.GET("/news_list", h.UserNewsList)
			authed.GET("/user_follow", h.UserFollow)
		}
	}

	admin := r.Group("/admin")
	{
		// 登录接口不做管理员校验
		admin.GET("/login", h.AdminLoginPage)
		admin.POST("/login", h.AdminLogin)

		authed := admin.Group("", middleware.AdminRequired())
		{
			authed.GET("/index", h.AdminIndex)
			authed.GET("/user_count", h.AdminUserCount)
			authed.GET("/user_list", h.AdminUserList)
			authed.GET("/news_review", h.AdminNewsReview)
			authed.GET("/news_review_detail", h.AdminNewsReviewDetail)
			authed.POST("/news_review_detail", h.AdminNewsReviewAction)
			authed.GET("/news_edit", h.AdminNewsEdit)
			authed.GET("/news_edit_detail", h.AdminNewsEditDetail)
			authed.POST("/news_edit_detail", h.AdminNewsEditSubmit)
			authed.GET("/news_type", h.AdminNewsCategory)
			authed.POST("/type_edit", h.AdminAddCategory)
		}
	}

	return r
}
