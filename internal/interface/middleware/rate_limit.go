package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
)

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that skip counting.
type AllowFunc func(c *gin.Context) bool

// ipFromCtx prefers the address resolved by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyByIP counts every request from one client together.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// KeyByUserID counts per authenticated user; anonymous callers fall back to IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(handlers.CtxUserIDKey); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// fixedWindow increments the bucket, starts its expiry on the first hit and
// returns {count, pttl} in one round trip.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// window is the state of one bucket after a hit.
type window struct {
	count int64
	reset time.Duration
}

func (w window) remaining(max int) int {
	if left := int64(max) - w.count; left > 0 {
		return int(left)
	}
	return 0
}

// resetSeconds rounds the remaining lifetime up to whole seconds.
func (w window) resetSeconds() int {
	if w.reset <= 0 {
		return 0
	}
	return int((w.reset + time.Second - 1) / time.Second)
}

func countHit(ctx context.Context, rdb *redis.Client, key string, period time.Duration) (window, error) {
	vals, err := fixedWindow.Run(ctx, rdb, []string{key}, period.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	if len(vals) != 2 {
		return window{}, fmt.Errorf("rate limit script returned %d values", len(vals))
	}
	return window{count: vals[0], reset: time.Duration(vals[1]) * time.Millisecond}, nil
}

// RateLimit allows max requests per period for each key. Preflight requests
// and those accepted by allow are not counted; Redis errors let the request
// through.
func RateLimit(rdb *redis.Client, max int, period time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || period <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := strconv.Itoa(max)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		w, err := countHit(c.Request.Context(), rdb, keyFn(c), period)
		if err != nil {
			c.Next()
			return
		}

		reset := strconv.Itoa(w.resetSeconds())
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(w.remaining(max)))
		c.Header("X-RateLimit-Reset", reset)

		if w.count > int64(max) {
			c.Header("Retry-After", reset)
			response.Error(c, http.StatusTooManyRequests, handlers.CodeRateLimitExceeded, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
