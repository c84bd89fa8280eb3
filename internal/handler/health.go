/**
 * 处理器:健康检查
 * @author: sun977
 * @date: 2025.11.21
 * @description: 存活与就绪探针,就绪检查覆盖数据库与缓存连接
 * @func: Health / Ready
 */
package handler

import (
	"net/http"
	"time"

	"neowatch/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	startTime   time.Time
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		startTime:   time.Now(),
	}
}

// Health 存活探针
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).String(),
	})
}

// Ready 就绪探针,依赖不可用时返回 503
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
	}

	// 缓存未配置时不纳入就绪判定
	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	if !healthy {
		logger.LogSystemEvent("health", "readiness_check", "依赖检查未通过", logrus.WarnLevel, map[string]interface{}{
			"checks": checks,
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
