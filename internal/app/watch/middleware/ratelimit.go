/**
 * 中间件:限流器中间件
 * @author: sun977
 * @date: 2025.11.21
 * @description: 基于令牌桶的客户端IP限流
 * @func:
 *   - GinRateLimitMiddleware: 限流中间件
 *   - TokenBucketLimiter: 令牌桶限流器实现
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"neowatch/internal/model"

	"github.com/gin-gonic/gin"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(key string) bool
	Reset(key string)
}

// TokenBucketLimiter 令牌桶限流器
type TokenBucketLimiter struct {
	buckets map[string]*tokenBucket
	mutex   sync.Mutex
	rate    int // 每秒生成的令牌数
	burst   int // 桶的容量
}

// tokenBucket 单个客户端的令牌桶
type tokenBucket struct {
	tokens   float64
	lastTime time.Time
}

// NewTokenBucketLimiter 创建令牌桶限流器
func NewTokenBucketLimiter(rate, burst int) *TokenBucketLimiter {
	limiter := &TokenBucketLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   burst,
	}

	// 周期清理长期不活跃的桶，避免map无界增长
	go limiter.cleanupLoop(10 * time.Minute)

	return limiter
}

// Allow 检查是否允许请求
func (tbl *TokenBucketLimiter) Allow(key string) bool {
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()

	now := time.Now()
	bucket, exists := tbl.buckets[key]
	if !exists {
		bucket = &tokenBucket{tokens: float64(tbl.burst), lastTime: now}
		tbl.buckets[key] = bucket
	}

	// 按流逝时间补充令牌
	elapsed := now.Sub(bucket.lastTime).Seconds()
	bucket.tokens += elapsed * float64(tbl.rate)
	if bucket.tokens > float64(tbl.burst) {
		bucket.tokens = float64(tbl.burst)
	}
	bucket.lastTime = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// Reset 重置指定key的限流状态
func (tbl *TokenBucketLimiter) Reset(key string) {
	tbl.mutex.Lock()
	delete(tbl.buckets, key)
	tbl.mutex.Unlock()
}

// cleanupLoop 周期清理不活跃的桶
func (tbl *TokenBucketLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-interval)
		tbl.mutex.Lock()
		for key, bucket := range tbl.buckets {
			if bucket.lastTime.Before(cutoff) {
				delete(tbl.buckets, key)
			}
		}
		tbl.mutex.Unlock()
	}
}

// GinRateLimitMiddleware 限流中间件
// 按客户端IP限流，超出限制返回429
func (m *MiddlewareManager) GinRateLimitMiddleware() gin.HandlerFunc {
	cfg := &m.securityConfig.RateLimit

	m.rateLimiterOnce.Do(func() {
		m.rateLimiter = NewTokenBucketLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
	})

	return func(c *gin.Context) {
		if !m.rateLimiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, model.ErrorResponse{Error: "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
