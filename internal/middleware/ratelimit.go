package middleware

import (
	"fmt"

	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/ratelimit"
	"anoa.com/sccams/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit counts one attempt of action per client IP. Redis failures let
// the request through.
func RateLimit(limiter *ratelimit.Limiter, action string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), action, ip)
		if err != nil {
			logger.Warn("rate limit check failed", zap.String("action", action), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			if ttl, err := limiter.TTL(c.Request.Context(), action, ip); err == nil && ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			}
			response.Abort(c, response.Legacy, apperror.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
