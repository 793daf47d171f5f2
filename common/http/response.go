package http

import "net/http"

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess         = 0     // 成功
	CodeError           = -1    // 通用错误
	CodeInvalidParam    = 10001 // 参数错误
	CodeNotFound        = 10004 // 资源不存在
	CodeServerError     = 10005 // 服务器内部错误
	CodeInvalidHand     = 10006 // 手牌无法计算
	CodeTooManyRequests = 10029 // 限流
)

// 预定义的响应消息
const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgServerError  = "internal server error"
)

func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// ErrorWithCode 业务错误，HTTP 状态码由调用方决定
func (c *Context) ErrorWithCode(status int, code int, message string) {
	c.JSON(status, NewResponse(code, message, nil))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// TooManyRequests 429 请求过于频繁
func (c *Context) TooManyRequests() {
	c.JSON(http.StatusTooManyRequests, NewResponse(CodeTooManyRequests, "too many requests", nil))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}
