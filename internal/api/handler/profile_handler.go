package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yezwei/news-xinjin/internal/constants"
	"github.com/yezwei/news-xinjin/internal/middleware"
	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/logger"
	"github.com/yezwei/news-xinjin/pkg/response"
)

// UserInfo 个人中心首页数据
// @Summary 个人中心
// @Tags 个人中心
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/info [get]
func (h *Handler) UserInfo(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, gin.H{"user_info": h.userDict(user)})
}

// BaseInfo 基本资料页数据
// @Summary 基本资料
// @Tags 个人中心
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/base_info [get]
func (h *Handler) BaseInfo(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, gin.H{"user_info": h.userDict(user)})
}

type baseInfoRequest struct {
	NickName  string `json:"nick_name" binding:"required"`
	Signature string `json:"signature"`
	Gender    string `json:"gender" binding:"required"`
}

// UpdateBaseInfo 修改昵称、签名与性别，昵称同步回 session
// @Summary 修改基本资料
// @Tags 个人中心
// @Accept json
// @Produce json
// @Param request body baseInfoRequest true "基本资料"
// @Success 200 {object} response.Response
// @Router /user/base_info [post]
func (h *Handler) UpdateBaseInfo(c *gin.Context) {
	var req baseInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	if err := h.profileService.UpdateBaseInfo(c.Request.Context(), user, req.NickName, req.Signature, req.Gender); err != nil {
		failErr(c, err)
		return
	}

	// 昵称改动写回 session，后续请求直接生效
	if handle := middleware.SessionHandle(c); handle != "" {
		sess := middleware.CurrentSession(c)
		if err := h.sessions.Set(c.Request.Context(), handle, session.Data{
			UserID:   user.ID,
			NickName: user.NickName,
			Mobile:   user.Mobile,
			IsAdmin:  sess.IsAdmin,
		}); err != nil {
			logger.Warn("写入 session 数据异常", zap.Error(err))
		}
	}
	response.SuccessMsg(c, "修改成功", nil)
}

// PicInfoPage 头像设置页数据
// @Summary 头像设置页
// @Tags 个人中心
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/pic_info [get]
func (h *Handler) PicInfoPage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, gin.H{"user_info": h.userDict(user)})
}

// PassInfoPage 密码修改页入口，无页面数据
// @Summary 密码修改页
// @Tags 个人中心
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/pass_info [get]
func (h *Handler) PassInfoPage(c *gin.Context) {
	response.Success(c, nil)
}

type passInfoRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// PassInfo 修改密码
// @Summary 修改密码
// @Tags 个人中心
// @Accept json
// @Produce json
// @Param request body passInfoRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Router /user/pass_info [post]
func (h *Handler) PassInfo(c *gin.Context) {
	var req passInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	if err := h.profileService.ChangePassword(c.Request.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "修改成功", nil)
}

// PicInfo 上传头像
// @Summary 上传头像
// @Tags 个人中心
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "头像图片"
// @Success 200 {object} response.Response
// @Router /user/pic_info [post]
func (h *Handler) PicInfo(c *gin.Context) {
	data, ok := readFormFile(c, "avatar")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	name, err := h.profileService.UpdateAvatar(c.Request.Context(), user, data)
	if err != nil {
		logger.Error("上传头像图片异常", zap.Error(err))
		response.Fail(c, response.CodeThirdErr, "上传头像失败")
		return
	}
	response.Success(c, gin.H{"avatar_url": h.avatarURL(name)})
}

// Collection 我的收藏，分页
// @Summary 我的收藏
// @Tags 个人中心
// @Param p query int false "页码" default(1)
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/collection [get]
func (h *Handler) Collection(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page := pageParam(c, "p")

	items, current, totalPage, err := h.collectService.ListCollections(
		c.Request.Context(), user.ID, page, constants.UserCollectionMaxNews)
	if err != nil {
		// 查询失败按空列表展示，不打断页面
		logger.Error("查询收藏列表异常", zap.Error(err))
		items, current, totalPage = nil, 1, 1
	}
	response.Success(c, gin.H{
		"collections":  h.newsBasicDicts(items),
		"current_page": current,
		"total_page":   totalPage,
	})
}

// NewsReleaseCategories 发布新闻页的分类列表，去掉“最新”
// @Summary 发布新闻页数据
// @Tags 个人中心
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/news_release [get]
func (h *Handler) NewsReleaseCategories(c *gin.Context) {
	categories, err := h.newsService.Categories(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	dicts := make([]map[string]interface{}, 0, len(categories))
	for _, cat := range categories {
		if cat.ID == 1 {
			continue
		}
		dicts = append(dicts, cat.ToDict())
	}
	response.Success(c, gin.H{"categories": dicts})
}

// NewsRelease 发布新闻，发布后进入审核
// @Summary 发布新闻
// @Tags 个人中心
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "标题"
// @Param category_id formData int true "分类编号"
// @Param digest formData string true "摘要"
// @Param content formData string true "正文"
// @Param index_image formData file false "封面图"
// @Success 200 {object} response.Response
// @Router /user/news_release [post]
func (h *Handler) NewsRelease(c *gin.Context) {
	title := c.PostForm("title")
	digest := c.PostForm("digest")
	content := c.PostForm("content")
	categoryID, err := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	if title == "" || digest == "" || content == "" || err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	indexImage := readOptionalFormFile(c, "index_image")
	user := middleware.CurrentUser(c)

	if _, err := h.profileService.ReleaseNews(c.Request.Context(), user, title, categoryID, digest, content, indexImage); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "发布成功，等待审核", nil)
}

// UserNewsList 我发布的新闻，带审核状态
// @Summary 我发布的新闻
// @Tags 个人中心
// @Param p query int false "页码" default(1)
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/news_list [get]
func (h *Handler) UserNewsList(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page := pageParam(c, "p")

	items, current, totalPage, err := h.profileService.ListUserNews(
		c.Request.Context(), user.ID, page, constants.UserNewsPageMaxCount)
	if err != nil {
		logger.Error("查询用户新闻列表异常", zap.Error(err))
		items, current, totalPage = nil, 1, 1
	}
	dicts := make([]map[string]interface{}, 0, len(items))
	for _, n := range items {
		dicts = append(dicts, n.ToReviewDict())
	}
	response.Success(c, gin.H{
		"news_list":    dicts,
		"current_page": current,
		"total_page":   totalPage,
	})
}

// UserFollow 我的关注，分页
// @Summary 我的关注
// @Tags 个人中心
// @Param p query int false "页码" default(1)
// @Produce json
// @Success 200 {object} response.Response
// @Router /user/user_follow [get]
func (h *Handler) UserFollow(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page := pageParam(c, "p")

	var users []*model.User
	users, current, totalPage, err := h.relationService.ListFollowed(
		c.Request.Context(), user.ID, page, constants.UserFollowedMaxCount)
	if err != nil {
		logger.Error("查询关注列表异常", zap.Error(err))
		users, current, totalPage = nil, 1, 1
	}
	dicts := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		dicts = append(dicts, h.userDict(u))
	}
	response.Success(c, gin.H{
		"users":        dicts,
		"current_page": current,
		"total_page":   totalPage,
	})
}

// readFormFile 读取必填的表单文件，失败时已写响应
func readFormFile(c *gin.Context, field string) ([]byte, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, response.CodeIOErr, "读取文件失败")
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, response.CodeIOErr, "读取文件失败")
		return nil, false
	}
	return data, true
}

// readOptionalFormFile 读取可选的表单文件，缺失或读取失败返回 nil
func readOptionalFormFile(c *gin.Context, field string) []byte {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil
	}
	return data
}
