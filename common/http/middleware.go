package http

import (
	"time"

	"gomahjong/common/log"

	"github.com/google/uuid"
)

// LoggerMiddleware 请求日志
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d from %s in %v", c.Method(), c.Path(), c.StatusCode(), c.ClientIP(), time.Since(start))
		return nil
	}
}

// RequestIDMiddleware 透传或生成 X-Request-ID
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// CorsMiddleware 跨域
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")
		}
		// 处理预检请求
		if c.Method() == "OPTIONS" {
			c.AbortWithStatus(204)
		}
		return nil
	}
}
