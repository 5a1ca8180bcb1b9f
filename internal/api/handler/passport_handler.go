package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yezwei/news-xinjin/internal/middleware"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/pkg/logger"
	"github.com/yezwei/news-xinjin/pkg/response"
)

// ImageCode 生成图片验证码
// @Summary 图片验证码
// @Tags 注册登录
// @Param code_id query string true "验证码编号"
// @Produce png
// @Router /passport/image_code [get]
func (h *Handler) ImageCode(c *gin.Context) {
	codeID := c.Query("code_id")
	if codeID == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	img, err := h.passportService.GenerateImageCode(c.Request.Context(), codeID)
	if err != nil {
		logger.Error("保存图片验证码异常", zap.Error(err))
		response.Fail(c, response.CodeDBErr, "保存图片验证码失败")
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

type smsCodeRequest struct {
	Mobile      string `json:"mobile" binding:"required"`
	ImageCode   string `json:"image_code" binding:"required"`
	ImageCodeID string `json:"image_code_id" binding:"required"`
}

// SMSCode 发送短信验证码
// @Summary 短信验证码
// @Tags 注册登录
// @Accept json
// @Produce json
// @Param request body smsCodeRequest true "手机号与图片验证码"
// @Success 200 {object} response.Response
// @Router /passport/sms_code [post]
func (h *Handler) SMSCode(c *gin.Context) {
	var req smsCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if !mobilePattern.MatchString(req.Mobile) {
		response.Fail(c, response.CodeParamErr, "手机号码格式错误")
		return
	}
	if err := h.passportService.SendSMSCode(c.Request.Context(), req.Mobile, req.ImageCode, req.ImageCodeID); err != nil {
		failErr(c, err)
		return
	}
	response.SuccessMsg(c, "发送成功", nil)
}

type registerRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	SMSCode  string `json:"smscode" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 手机号注册，注册成功直接保持登录状态
// @Summary 注册
// @Tags 注册登录
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Router /passport/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if !mobilePattern.MatchString(req.Mobile) {
		response.Fail(c, response.CodeParamErr, "手机号码格式错误")
		return
	}
	user, err := h.passportService.Register(c.Request.Context(), req.Mobile, req.SMSCode, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}

	handle, err := h.sessions.Create(c.Request.Context(), session.Data{
		UserID:   user.ID,
		NickName: user.NickName,
		Mobile:   user.Mobile,
	})
	if err != nil {
		logger.Error("写入 session 数据异常", zap.Error(err))
		response.Fail(c, response.CodeDBErr, "保存 session 数据失败")
		return
	}
	h.setSessionCookie(c, handle)
	response.SuccessMsg(c, "注册成功", nil)
}

type loginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 手机号密码登录
// @Summary 登录
// @Tags 注册登录
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Router /passport/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeParamErr, "参数错误")
		return
	}
	if !mobilePattern.MatchString(req.Mobile) {
		response.Fail(c, response.CodeParamErr, "手机号码格式错误")
		return
	}
	user, err := h.passportService.Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}

	handle, err := h.sessions.Create(c.Request.Context(), session.Data{
		UserID:   user.ID,
		NickName: user.NickName,
		Mobile:   user.Mobile,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		logger.Error("写入 session 数据异常", zap.Error(err))
		response.Fail(c, response.CodeDBErr, "保存 session 数据失败")
		return
	}
	h.setSessionCookie(c, handle)
	response.SuccessMsg(c, "登录成功", nil)
}

// Logout 退出登录，销毁服务端 session 记录并清除 cookie
// @Summary 退出登录
// @Tags 注册登录
// @Produce json
// @Success 200 {object} response.Response
// @Router /passport/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if handle := middleware.SessionHandle(c); handle != "" {
		if err := h.sessions.Destroy(c.Request.Context(), handle); err != nil {
			logger.Warn("销毁 session 数据异常", zap.Error(err))
		}
	}
	h.clearSessionCookie(c)
	response.SuccessMsg(c, "退出成功", nil)
}
