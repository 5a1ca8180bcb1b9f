package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yezwei/news-xinjin/internal/constants"
	"github.com/yezwei/news-xinjin/internal/middleware"
	"github.com/yezwei/news-xinjin/pkg/response"
)

// Index 首页数据：当前用户、点击排行与分类列表
// @Summary 首页
// @Tags 新闻
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	var userInfo map[string]interface{}
	if user := middleware.CurrentUser(c); user != nil {
		userInfo = h.userDict(user)
	}

	rank, err := h.newsService.ClickRank(c.Request.Context(), constants.ClickRankMaxNews)
	if err != nil {
		failErr(c, err)
		return
	}
	categories, err := h.newsService.Categories(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}

	response.Success(c, gin.H{
		"user_info":        userInfo,
		"click_news_list":  h.newsBasicDicts(rank),
		"category_dict_li": categoryDicts(categories),
	})
}

// NewsList 首页新闻列表，按分类分页
// @Summary 新闻列表
// @Tags 新闻
// @Param cid query int false "分类编号" default(1)
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(10)
// @Produce json
// @Success 200 {object} response.Response
// @Router /news_list [get]
func (h *Handler) NewsList(c *gin.Context) {
	cid, err := strconv.ParseInt(c.DefaultQuery("cid", "1"), 10, 64)
	if err != nil {
		cid = 1
	}
	page := pageParam(c, "page")
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(constants.HomePageMaxNews)))
	if err != nil || perPage < 1 {
		perPage = constants.HomePageMaxNews
	}

	items, current, totalPage, err := h.newsService.ListHome(c.Request.Context(), cid, page, perPage)
	if err != nil {
		failErr(c, err)
		return
	}
	response.Success(c, gin.H{
		"news_dict_li": h.newsBasicDicts(items),
		"cid":          cid,
		"current_page": current,
		"total_page":   totalPage,
	})
}

// NewsDetail 新闻详情：新闻正文、点击排行、收藏与关注状态、评论列表
// @Summary 新闻详情
// @Tags 新闻
// @Param id path int true "新闻编号"
// @Produce json
// @Success 200 {object} response.Response
// @Router /news/detail/{id} [get]
func (h *Handler) NewsDetail(c *gin.Context) {
	newsID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	news, err := h.newsService.Get(c.Request.Context(), newsID)
	if err != nil {
		failErr(c, err)
		return
	}
	if news == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	// 浏览即计一次点击
	if err := h.newsService.RecordClick(c.Request.Context(), newsID); err != nil {
		failErr(c, err)
		return
	}
	news.Clicks++

	var userInfo map[string]interface{}
	var userID int64
	user := middleware.CurrentUser(c)
	if user != nil {
		userInfo = h.userDict(user)
		userID = user.ID
	}

	rank, err := h.newsService.ClickRank(c.Request.Context(), constants.ClickRankMaxNews)
	if err != nil {
		failErr(c, err)
		return
	}

	isCollected := false
	isFollowed := false
	if user != nil {
		if isCollected, err = h.collectService.IsCollected(c.Request.Context(), user.ID, newsID); err != nil {
			failErr(c, err)
			return
		}
		if news.UserID > 0 {
			if isFollowed, err = h.relationService.IsFollowing(c.Request.Context(), user.ID, news.UserID); err != nil {
				failErr(c, err)
				return
			}
		}
	}

	views, err := h.commentService.ListByNews(c.Request.Context(), newsID, userID)
	if err != nil {
		failErr(c, err)
		return
	}
	comments := make([]map[string]interface{}, 0, len(views))
	for _, v := range views {
		d := v.Comment.ToDict()
		d["is_like"] = v.IsLike
		comments = append(comments, d)
	}

	newsDict := news.ToDict()
	newsDict["index_image_url"] = h.avatarURL(news.IndexImageURL)

	response.Success(c, gin.H{
		"user_info":       userInfo,
		"news":            newsDict,
		"click_news_list": h.newsBasicDicts(rank),
		"is_collected":    isCollected,
		"is_followed":     isFollowed,
		"comments":        comments,
	})
}

type collectRequest struct {
	NewsID int64  `json:"news_id" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// NewsCollect 收藏与取消收藏
// @Summary 新闻收藏
// @Tags 新闻
// @Accept json
// @Produce json
// @Param request body collectRequest true "新闻编号与动作 collect / cancel_collect"
// @Success 200 {object} response.Response
// @Router /news/news_collect [post]
func (h *Handler) NewsCollect(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	var err error
	switch req.Action {
	case "collect":
		err = h.collectService.Collect(c.Request.Context(), user.ID, req.NewsID)
	case "cancel_collect":
		err = h.collectService.Cancel(c.Request.Context(), user.ID, req.NewsID)
	default:
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "操作成功", nil)
}

type commentRequest struct {
	NewsID   int64  `json:"news_id" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// NewsComment 发布评论，parent_id 有值时为回复评论
// @Summary 发布评论
// @Tags 新闻
// @Accept json
// @Produce json
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Router /news/news_comment [post]
func (h *Handler) NewsComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	comment, err := h.commentService.Add(c.Request.Context(), user.ID, req.NewsID, req.Comment, req.ParentID)
	if err != nil {
		failErr(c, err)
		return
	}
	response.Success(c, comment.ToDict())
}

type commentLikeRequest struct {
	CommentID int64  `json:"comment_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// CommentLike 评论点赞与取消点赞
// @Summary 评论点赞
// @Tags 新闻
// @Accept json
// @Produce json
// @Param request body commentLikeRequest true "评论编号与动作 add / remove"
// @Success 200 {object} response.Response
// @Router /news/comment_like [post]
func (h *Handler) CommentLike(c *gin.Context) {
	var req commentLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	var err error
	switch req.Action {
	case "add":
		err = h.commentService.Like(c.Request.Context(), user.ID, req.CommentID)
	case "remove":
		err = h.commentService.Unlike(c.Request.Context(), user.ID, req.CommentID)
	default:
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "操作成功", nil)
}

type followRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// FollowedUser 关注与取消关注新闻作者
// @Summary 关注作者
// @Tags 新闻
// @Accept json
// @Produce json
// @Param request body followRequest true "作者编号与动作 follow / unfollow"
// @Success 200 {object} response.Response
// @Router /news/followed_user [post]
func (h *Handler) FollowedUser(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	user := middleware.CurrentUser(c)

	var err error
	switch req.Action {
	case "follow":
		err = h.relationService.Follow(c.Request.Context(), user.ID, req.UserID)
	case "unfollow":
		err = h.relationService.Unfollow(c.Request.Context(), user.ID, req.UserID)
	default:
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "操作成功", nil)
}
