package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yezwei/news-xinjin/internal/constants"
	"github.com/yezwei/news-xinjin/internal/middleware"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/logger"
	"github.com/yezwei/news-xinjin/pkg/response"
)

// AdminLogin 后台登录，只在管理员账号中校验
// @Summary 后台登录
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Router /admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user, err := h.adminService.Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}

	handle, err := h.sessions.Create(c.Request.Context(), session.Data{
		UserID:   user.ID,
		NickName: user.NickName,
		Mobile:   user.Mobile,
		IsAdmin:  true,
	})
	if err != nil {
		logger.Error("写入 session 数据异常", zap.Error(err))
		response.Fail(c, response.CodeDBErr, "保存 session 数据失败")
		return
	}
	h.setSessionCookie(c, handle)
	response.SuccessMsg(c, "登录成功", nil)
}

// AdminLoginPage 后台登录页，已登录的管理员直接跳到后台首页
// @Summary 后台登录页
// @Tags 后台管理
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/login [get]
func (h *Handler) AdminLoginPage(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil && sess.IsAdmin {
		c.Redirect(http.StatusFound, "/admin/index")
		return
	}
	response.Success(c, nil)
}

// AdminIndex 后台首页，返回当前管理员信息
// @Summary 后台首页
// @Tags 后台管理
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/index [get]
func (h *Handler) AdminIndex(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, gin.H{"user_info": h.userDict(user)})
}

// AdminUserCount 用户统计：总数、月新增、日新增与近 31 天活跃曲线
// @Summary 用户统计
// @Tags 后台管理
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/user_count [get]
func (h *Handler) AdminUserCount(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	response.Success(c, stats)
}

// AdminUserList 用户列表，分页
// @Summary 用户列表
// @Tags 后台管理
// @Param p query int false "页码" default(1)
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/user_list [get]
func (h *Handler) AdminUserList(c *gin.Context) {
	page := pageParam(c, "p")
	users, current, totalPage, err := h.adminService.ListUsers(
		c.Request.Context(), page, constants.AdminUserPageMaxCount)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	dicts := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		dicts = append(dicts, u.ToAdminDict())
	}
	response.Success(c, gin.H{
		"users":        dicts,
		"current_page": current,
		"total_page":   totalPage,
	})
}

// AdminNewsReview 审核列表：审核中与审核不通过的新闻，可按标题搜索
// @Summary 新闻审核列表
// @Tags 后台管理
// @Param p query int false "页码" default(1)
// @Param keywords query string false "标题关键字"
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/news_review [get]
func (h *Handler) AdminNewsReview(c *gin.Context) {
	page := pageParam(c, "p")
	keywords := c.Query("keywords")

	items, current, totalPage, err := h.adminService.ListForReview(
		c.Request.Context(), keywords, page, constants.AdminNewsReviewPageMaxCount)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
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

// AdminNewsReviewDetail 审核详情
// @Summary 新闻审核详情
// @Tags 后台管理
// @Param news_id query int true "新闻编号"
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/news_review_detail [get]
func (h *Handler) AdminNewsReviewDetail(c *gin.Context) {
	newsID, err := strconv.ParseInt(c.Query("news_id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	news, err := h.adminService.GetNews(c.Request.Context(), newsID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	d := news.ToDict()
	d["index_image_url"] = h.avatarURL(news.IndexImageURL)
	response.Success(c, gin.H{"news": d})
}

type reviewActionRequest struct {
	NewsID int64  `json:"news_id" binding:"required"`
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// AdminNewsReviewAction 审核动作：accept 通过，reject 必须填写拒绝原因
// @Summary 新闻审核
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param request body reviewActionRequest true "审核动作"
// @Success 200 {object} response.Response
// @Router /admin/news_review_detail [post]
func (h *Handler) AdminNewsReviewAction(c *gin.Context) {
	var req reviewActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if err := h.adminService.Review(c.Request.Context(), req.NewsID, req.Action, req.Reason); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "操作成功", nil)
}

// AdminNewsEdit 新闻编辑列表，不过滤审核状态
// @Summary 新闻编辑列表
// @Tags 后台管理
// @Param p query int false "页码" default(1)
// @Param keywords query string false "标题关键字"
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/news_edit [get]
func (h *Handler) AdminNewsEdit(c *gin.Context) {
	page := pageParam(c, "p")
	keywords := c.Query("keywords")

	items, current, totalPage, err := h.adminService.ListForEdit(
		c.Request.Context(), keywords, page, constants.AdminNewsEditPageMaxCount)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	response.Success(c, gin.H{
		"news_list":    h.newsBasicDicts(items),
		"current_page": current,
		"total_page":   totalPage,
	})
}

// AdminNewsEditDetail 编辑详情：新闻内容加分类选中状态
// @Summary 新闻编辑详情
// @Tags 后台管理
// @Param news_id query int true "新闻编号"
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/news_edit_detail [get]
func (h *Handler) AdminNewsEditDetail(c *gin.Context) {
	newsID, err := strconv.ParseInt(c.Query("news_id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	news, err := h.adminService.GetNews(c.Request.Context(), newsID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	categories, err := h.adminService.Categories(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	catDicts := make([]map[string]interface{}, 0, len(categories))
	for _, cat := range categories {
		if cat.ID == 1 {
			continue
		}
		d := cat.ToDict()
		d["is_selected"] = cat.ID == news.CategoryID
		catDicts = append(catDicts, d)
	}
	d := news.ToDict()
	d["index_image_url"] = h.avatarURL(news.IndexImageURL)
	response.Success(c, gin.H{"news": d, "categories": catDicts})
}

// AdminNewsEditSubmit 保存新闻编辑
// @Summary 保存新闻编辑
// @Tags 后台管理
// @Accept multipart/form-data
// @Produce json
// @Param news_id formData int true "新闻编号"
// @Param title formData string true "标题"
// @Param category_id formData int true "分类编号"
// @Param digest formData string true "摘要"
// @Param content formData string true "正文"
// @Param index_image formData file false "封面图"
// @Success 200 {object} response.Response
// @Router /admin/news_edit_detail [post]
func (h *Handler) AdminNewsEditSubmit(c *gin.Context) {
	newsID, err1 := strconv.ParseInt(c.PostForm("news_id"), 10, 64)
	categoryID, err2 := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	title := c.PostForm("title")
	digest := c.PostForm("digest")
	content := c.PostForm("content")
	if err1 != nil || err2 != nil || title == "" || digest == "" || content == "" {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	indexImage := readOptionalFormFile(c, "index_image")

	if err := h.adminService.EditNews(c.Request.Context(), newsID, title, categoryID, digest, content, indexImage); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "编辑成功", nil)
}

// AdminNewsCategory 分类列表
// @Summary 分类管理
// @Tags 后台管理
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/news_type [get]
func (h *Handler) AdminNewsCategory(c *gin.Context) {
	categories, err := h.adminService.Categories(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	response.Success(c, gin.H{"categories": categoryDicts(categories)})
}

type categoryRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required"`
}

// AdminAddCategory 新增或修改分类，id 缺省时新增
// @Summary 新增修改分类
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param request body categoryRequest true "分类信息"
// @Success 200 {object} response.Response
// @Router /admin/type_edit [post]
func (h *Handler) AdminAddCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if err := h.adminService.UpsertCategory(c.Request.Context(), req.ID, req.Name); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "保存成功", nil)
}
