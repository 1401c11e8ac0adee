package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit limita requisições por IP numa janela fixa. Se o contador falhar
// a requisição passa e o erro é registrado.
func RateLimit(
	limiter RateLimiter,
	scope string,
	limit int,
	window time.Duration,
	log *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := scope + ":" + c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			httperr.TooManyRequests(c, "rate_limited", "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
