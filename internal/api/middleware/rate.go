package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osa911/contactrelay/internal/api/dto/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration.
// The limiter is shared by every client hitting the route.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		now := time.Now()
		reservation := limiter.ReserveN(now, 1)
		if delay := reservation.DelayFrom(now); delay > 0 {
			// Give the token back, the request is rejected instead of queued
			reservation.CancelAt(now)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Rate limit exceeded. Please try again later.",
				nil,
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(now))))

		c.Next()
	}
}
