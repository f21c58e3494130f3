package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

const (
	limiterMaxRequests = 30
	limiterWindow      = 30 * time.Second
)

// NewLimiterWithRedis rate-limits per client IP with a sliding window
// backed by Redis, so the limit holds across replicas.
func NewLimiterWithRedis(rdb *redis.Client) fiber.Handler {
	storage := fiberredis.NewFromConnection(rdb)
	return limiter.New(limiter.Config{
		Storage:           storage,
		Max:               limiterMaxRequests,
		Expiration:        limiterWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
