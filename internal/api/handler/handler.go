package handler

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/service"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/logger"
	"github.com/yezwei/news-xinjin/pkg/response"
)

// Handler 所有 HTTP 接口的依赖集合
type Handler struct {
	passportService service.PassportService
	newsService     service.NewsService
	relationService service.RelationService
	collectService  service.CollectService
	commentService  service.CommentService
	profileService  service.ProfileService
	adminService    service.AdminService

	sessions *session.Store
	// session cookie 的 Max-Age，与服务端记录的绝对过期时长一致
	sessionMaxAge int
	// 图片对象名拼接成完整 url 的前缀
	storagePrefix string
}

func New(
	passportService service.PassportService,
	newsService service.NewsService,
	relationService service.RelationService,
	collectService service.CollectService,
	commentService service.CommentService,
	profileService service.ProfileService,
	adminService service.AdminService,
	sessions *session.Store,
	sessionMaxAge int,
	storagePrefix string,
) *Handler {
	return &Handler{
		passportService: passportService,
		newsService:     newsService,
		relationService: relationService,
		collectService:  collectService,
		commentService:  commentService,
		profileService:  profileService,
		adminService:    adminService,
		sessions:        sessions,
		sessionMaxAge:   sessionMaxAge,
		storagePrefix:   storagePrefix,
	}
}

var mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// failErr 业务错误翻译成前端约定的 errno，未知错误一律按数据库错误兜底
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImageCodeExpired),
		errors.Is(err, service.ErrSMSCodeExpired),
		errors.Is(err, service.ErrAuthorNotFound),
		errors.Is(err, service.ErrNewsNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrNotFollowed),
		errors.Is(err, service.ErrNotCollected):
		response.Fail(c, response.CodeNoData, err.Error())
	case errors.Is(err, service.ErrImageCodeMismatch),
		errors.Is(err, service.ErrSMSCodeMismatch),
		errors.Is(err, service.ErrOldPasswordWrong):
		response.Fail(c, response.CodeDataErr, err.Error())
	case errors.Is(err, service.ErrMobileRegistered),
		errors.Is(err, service.ErrAlreadyFollowed),
		errors.Is(err, service.ErrAlreadyCollected),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrSMSThrottled):
		response.Fail(c, response.CodeDataExist, err.Error())
	case errors.Is(err, service.ErrBadGender),
		errors.Is(err, service.ErrEmptyReason),
		errors.Is(err, service.ErrBadReviewAct):
		response.Fail(c, response.CodeParamErr, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		response.Fail(c, response.CodeUserErr, err.Error())
	case errors.Is(err, service.ErrPasswordWrong):
		response.Fail(c, response.CodePwdErr, err.Error())
	case errors.Is(err, service.ErrSMSGateway):
		response.Fail(c, response.CodeThirdErr, err.Error())
	default:
		logger.Error("数据层操作异常", zap.Error(err))
		response.Fail(c, response.CodeDBErr, "数据操作错误")
	}
}

// setSessionCookie 下发 session 句柄 cookie
func (h *Handler) setSessionCookie(c *gin.Context, handle string) {
	c.SetCookie(session.CookieName, handle, h.sessionMaxAge, "/", "", false, true)
}

// clearSessionCookie 退出登录时清除 session 句柄 cookie
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}

// avatarURL 对象名拼接访问前缀，空对象名返回空串
func (h *Handler) avatarURL(name string) string {
	if name == "" {
		return ""
	}
	return h.storagePrefix + name
}

// userDict 用户字典，头像对象名替换为完整访问 url
func (h *Handler) userDict(u *model.User) map[string]interface{} {
	d := u.ToDict()
	d["avatar_url"] = h.avatarURL(u.AvatarURL)
	return d
}

// newsBasicDicts 新闻列表字典，封面图对象名替换为完整访问 url
func (h *Handler) newsBasicDicts(items []*model.News) []map[string]interface{} {
	dicts := make([]map[string]interface{}, 0, len(items))
	for _, n := range items {
		d := n.ToBasicDict()
		d["index_image_url"] = h.avatarURL(n.IndexImageURL)
		dicts = append(dicts, d)
	}
	return dicts
}

func categoryDicts(items []*model.Category) []map[string]interface{} {
	dicts := make([]map[string]interface{}, 0, len(items))
	for _, cat := range items {
		dicts = append(dicts, cat.ToDict())
	}
	return dicts
}

// pageParam 查询串里的页码参数，解析失败按第 1 页处理
func pageParam(c *gin.Context, key string) int {
	page, err := strconv.Atoi(c.DefaultQuery(key, "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
