package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errno 状态码，与前端约定保持一致
const (
	CodeOK         = 0    // 成功
	CodeDBErr      = 4001 // 数据库查询错误
	CodeNoData     = 4002 // 无数据
	CodeDataExist  = 4003 // 数据已存在
	CodeDataErr    = 4004 // 数据错误
	CodeSessionErr = 4101 // 用户未登录
	CodeLoginErr   = 4102 // 用户登录失败
	CodeParamErr   = 4103 // 参数错误
	CodeUserErr    = 4104 // 用户不存在或未激活
	CodeRoleErr    = 4105 // 用户身份错误
	CodePwdErr     = 4106 // 密码错误
	CodeThirdErr   = 4301 // 第三方系统错误
	CodeIOErr      = 4302 // 文件读写错误
	CodeServerErr  = 4500 // 内部错误
)

// Response 统一的 JSON 响应体，业务状态通过 errno 表达，HTTP 状态保持 200
type Response struct {
	Errno  int         `json:"errno"`
	Errmsg string      `json:"errmsg"`
	Data   interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Errno: CodeOK, Errmsg: "OK", Data: data})
}

// SuccessMsg 携带自定义提示语的成功响应
func SuccessMsg(c *gin.Context, errmsg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Errno: CodeOK, Errmsg: errmsg, Data: data})
}

func Fail(c *gin.Context, errno int, errmsg string) {
	c.JSON(http.StatusOK, Response{Errno: errno, Errmsg: errmsg})
}

// FailAbort 中间件使用：返回错误并终止后续 handler
func FailAbort(c *gin.Context, errno int, errmsg string) {
	c.AbortWithStatusJSON(http.StatusOK, Response{Errno: errno, Errmsg: errmsg})
}
