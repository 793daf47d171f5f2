package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context 封装 gin.Context，提供统一的请求/响应接口
type Context struct {
	ginCtx *gin.Context
}

func newContext(c *gin.Context) *Context {
	return &Context{ginCtx: c}
}

// GetQuery 获取查询参数
func (c *Context) GetQuery(key string) string {
	return c.ginCtx.Query(key)
}

// Param 获取路径参数
func (c *Context) Param(key string) string {
	return c.ginCtx.Param(key)
}

// GetHeader 获取请求头
func (c *Context) GetHeader(key string) string {
	return c.ginCtx.GetHeader(key)
}

// BindJSON 绑定 JSON 请求体
func (c *Context) BindJSON(obj interface{}) error {
	return c.ginCtx.ShouldBindJSON(obj)
}

// JSON 返回 JSON 响应
func (c *Context) JSON(code int, obj interface{}) {
	c.ginCtx.JSON(code, obj)
}

// SetHeader 设置响应头
func (c *Context) SetHeader(key, value string) {
	c.ginCtx.Header(key, value)
}

func (c *Context) ClientIP() string {
	return c.ginCtx.ClientIP()
}

func (c *Context) Method() string {
	return c.ginCtx.Request.Method
}

func (c *Context) Path() string {
	return c.ginCtx.Request.URL.Path
}

// Set 设置上下文值
func (c *Context) Set(key string, value interface{}) {
	c.ginCtx.Set(key, value)
}

// GetString 获取字符串类型的上下文值
func (c *Context) GetString(key string) string {
	return c.ginCtx.GetString(key)
}

// Next 中间件内部执行后续处理链
func (c *Context) Next() {
	c.ginCtx.Next()
}

// StatusCode 已写出的响应状态码
func (c *Context) StatusCode() int {
	return c.ginCtx.Writer.Status()
}

// AbortWithStatus 中止请求并设置状态码
func (c *Context) AbortWithStatus(code int) {
	c.ginCtx.AbortWithStatus(code)
}

// Request 获取原始 http.Request（谨慎使用）
func (c *Context) Request() *http.Request {
	return c.ginCtx.Request
}

// Abort 中止后续处理链，已写出的响应保留
func (c *Context) Abort() {
	c.ginCtx.Abort()
}
