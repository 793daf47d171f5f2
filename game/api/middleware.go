package api

import (
	"gomahjong/common/http"
	"gomahjong/common/utils"
)

// RateLimitMiddleware 按客户端 IP 限流
func RateLimitMiddleware(limiter *utils.KeyedRateLimiter) http.MiddlewareFunc {
	return func(c *http.Context) error {
		if !limiter.Allow(c.ClientIP()) {
			c.TooManyRequests()
			c.Abort()
		}
		return nil
	}
}
