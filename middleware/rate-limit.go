package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

var timeFormat = "2006-01-02T15:04:05.000Z"

var inMemoryRateLimiter = &memoryStore{}

// memoryStore is the redis-less fallback. Idle keys are swept on the same
// expiration cadence the redis limiter uses, so the per-IP map stays bounded.
type memoryStore struct {
	sync.Mutex
	store     map[string][]int64
	lastSweep int64
}

func (m *memoryStore) allow(key string, maxRequestNum int, duration int64, now int64) bool {
	m.Lock()
	defer m.Unlock()
	if m.store == nil {
		m.store = make(map[string][]int64)
	}
	m.sweepLocked(duration, now)

	timestamps := m.store[key]
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if now-ts < duration {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= maxRequestNum {
		m.store[key] = kept
		return false
	}
	m.store[key] = append(kept, now)
	return true
}

func (m *memoryStore) sweepLocked(duration int64, now int64) {
	expiry := int64(config.RateLimitKeyExpirationDuration.Seconds())
	if now-m.lastSweep < expiry {
		return
	}
	m.lastSweep = now
	for key, timestamps := range m.store {
		if len(timestamps) == 0 || now-timestamps[len(timestamps)-1] >= duration {
			delete(m.store, key)
		}
	}
}

func redisRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	ctx := context.Background()
	rdb := common.RDB
	key := "rateLimit:" + mark + c.ClientIP()
	listLength, err := rdb.LLen(ctx, key).Result()
	if err != nil {
		logger.SysError(fmt.Sprintf("rate limiter redis error: %s", err.Error()))
		// Fail open: a broken limiter must not block generation traffic.
		c.Next()
		return
	}
	if listLength < int64(maxRequestNum) {
		rdb.LPush(ctx, key, time.Now().Format(timeFormat))
		rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
	} else {
		oldTimeStr, _ := rdb.LIndex(ctx, key, -1).Result()
		oldTime, err := time.Parse(timeFormat, oldTimeStr)
		if err != nil {
			logger.SysError("failed to parse time: " + err.Error())
			c.Next()
			return
		}
		nowTimeStr := time.Now().Format(timeFormat)
		nowTime, err := time.Parse(timeFormat, nowTimeStr)
		if err != nil {
			logger.SysError("failed to parse time: " + err.Error())
			c.Next()
			return
		}
		// time.Since will return negative number!
		if int64(nowTime.Sub(oldTime).Seconds()) < duration {
			rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			return
		} else {
			rdb.LPush(ctx, key, time.Now().Format(timeFormat))
			rdb.LTrim(ctx, key, 0, int64(maxRequestNum-1))
			rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
		}
	}
}

func memoryRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	key := mark + c.ClientIP()
	if !inMemoryRateLimiter.allow(key, maxRequestNum, duration, time.Now().Unix()) {
		c.Status(http.StatusTooManyRequests)
		c.Abort()
	}
}

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	if maxRequestNum <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		if common.RedisEnabled {
			redisRateLimiter(c, maxRequestNum, duration, mark)
		} else {
			memoryRateLimiter(c, maxRequestNum, duration, mark)
		}
	}
}

func GlobalAPIRateLimit() func(c *gin.Context) {
	if !config.GlobalApiRateLimitEnable {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return rateLimitFactory(config.GlobalApiRateLimitNum, config.GlobalApiRateLimitDuration, "GA")
}
