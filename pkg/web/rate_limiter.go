package web

import (
	"net/http"
	"strconv"

	"taskboard/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiter builds the mutation limiter from a "<limit>-<period>" rate.
// Counters live in Redis when redisCache is set, in memory otherwise.
func NewLimiter(formatted string, redisCache *cache.Cache) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if redisCache != nil {
		store, err = sredis.NewStoreWithOptions(redisCache.Redis, limiter.StoreOptions{
			Prefix:   cache.LimiterPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStore()
	}
	return limiter.New(store, rate), nil
}

func MutationRateLimiter(rateLimiter *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimiter == nil {
			c.Next()
			return
		}

		limiterCtx, err := rateLimiter.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error().Err(err).Msg("Failed to get rate limiter")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limiterCtx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limiterCtx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(limiterCtx.Reset, 10))

		if limiterCtx.Reached {
			log.Warn().Str("clientIp", c.ClientIP()).Msg("Mutation rate limit reached")
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
