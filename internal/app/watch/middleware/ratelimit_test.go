/**
 * 测试:限流器
 * @author: sun977
 * @date: 2025.11.21
 * @description: 令牌桶限流器行为测试
 * @func:
 */
package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewTokenBucketLimiter(1, 3)

	// 突发额度内的请求全部放行
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"), "request %d within burst", i)
	}
	// 超出突发额度后被拒绝
	assert.False(t, limiter.Allow("1.2.3.4"))
}

func TestTokenBucketLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewTokenBucketLimiter(1, 1)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))
	// 另一个来源不受影响
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestTokenBucketLimiter_Reset(t *testing.T) {
	limiter := NewTokenBucketLimiter(1, 1)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	limiter.Reset("1.2.3.4")
	assert.True(t, limiter.Allow("1.2.3.4"))
}
