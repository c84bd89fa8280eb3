/**
 * 日志:结构化日志辅助函数
 * @author: sun977
 * @date: 2025.11.20
 * @description: 统一采集规范字段的结构化日志出口
 * @func:
 *   - FormatTimestamp/NowFormatted: 时间戳格式化
 *   - LogAccessRequest: HTTP访问日志
 *   - LogBusinessOperation: 业务操作日志
 *   - LogError: 错误日志
 *   - LogSystemEvent: 系统事件日志
 */
package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 给各辅助函数统一使用的时间戳格式(毫秒精度)
const timestampLayout = "2006-01-02 15:04:05.000"

// FormatTimestamp 格式化时间戳
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// NowFormatted 返回当前时间的格式化时间戳
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogAccessRequest 记录HTTP访问日志
// 在请求完成后由日志中间件调用
func LogAccessRequest(c *gin.Context, startTime time.Time, requestID string, userID uint) {
	latency := time.Since(startTime)

	getGlobalLogger().WithFields(logrus.Fields{
		"type":       LogTypeAccess,
		"request_id": requestID,
		"user_id":    userID,
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"status":     c.Writer.Status(),
		"latency_ms": latency.Milliseconds(),
		"user_agent": c.Request.UserAgent(),
	}).Info("http request")
}

// LogBusinessOperation 记录业务操作日志
// operation: 操作名称(host_create、probe_run等)
// result: success / failed
func LogBusinessOperation(operation string, userID uint, clientIP, requestID, result, message string, extraFields map[string]interface{}) {
	fields := logrus.Fields{
		"type":       LogTypeBusiness,
		"operation":  operation,
		"user_id":    userID,
		"client_ip":  clientIP,
		"request_id": requestID,
		"result":     result,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	entry := getGlobalLogger().WithFields(fields)
	if result == "success" {
		entry.Info(message)
	} else {
		entry.Warn(message)
	}
}

// LogError 记录错误日志
func LogError(err error, requestID string, userID uint, clientIP, operation string, extraFields map[string]interface{}) {
	fields := logrus.Fields{
		"type":       LogTypeError,
		"operation":  operation,
		"user_id":    userID,
		"client_ip":  clientIP,
		"request_id": requestID,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	getGlobalLogger().WithFields(fields).WithError(err).Error("operation failed")
}

// LogSystemEvent 记录系统事件日志(启动、关闭、配置变更等)
func LogSystemEvent(component, event, message string, level logrus.Level, extraFields map[string]interface{}) {
	fields := logrus.Fields{
		"type":      LogTypeSystem,
		"component": component,
		"event":     event,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	getGlobalLogger().WithFields(fields).Log(level, message)
}
