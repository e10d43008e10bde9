package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// HTTPStatus 业务码即 HTTP 状态码，0 归一到 200
func HTTPStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	return code
}

// Data / Created / Fail / Abort：handler 统一出口

func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, OK(data))
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, OK(data))
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(HTTPStatus(code), Error(code, msg))
}

func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(HTTPStatus(code), Error(code, msg))
}
