package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"cling-reminder.backend/pkg/redis"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is how long the processing lock is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a cached response is replayed
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the cached response for a repeated
// Idempotency-Key and rejects concurrent duplicates with 409. Requests
// without the header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope keys per user so one caller cannot replay another's
		// response.
		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)

		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"message": "request already in progress",
				})
				return
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		} else if err.Error() != "redis: nil" {
			// Redis unavailable: process without idempotency rather
			// than failing the request.
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"message": "request already in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// Failed requests may be retried with the same key.
			_ = redisDel(ctx, storageKey)
		}
	}
}
