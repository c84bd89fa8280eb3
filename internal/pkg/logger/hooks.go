/**
 * 日志:文件输出Hook
 * @author: sun977
 * @date: 2025.11.20
 * @description: 基于lumberjack的日志文件滚动输出，按日志类型分文件
 * @func: FileHook结构体及Levels/Fire方法
 */
package logger

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"neowatch/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogType 日志类型，决定日志落入哪个文件
type LogType string

const (
	LogTypeSystem   LogType = "system"   // 系统事件日志
	LogTypeAccess   LogType = "access"   // HTTP访问日志
	LogTypeBusiness LogType = "business" // 业务操作日志
	LogTypeError    LogType = "error"    // 错误日志
)

// FileHook 文件输出Hook
// 按entry中的type字段将日志分发到不同文件，文件由lumberjack负责滚动
type FileHook struct {
	config    *config.LogConfig
	writers   map[string]io.Writer
	formatter logrus.Formatter
	mutex     sync.Mutex
}

// NewFileHook 创建文件输出Hook
func NewFileHook(logConfig *config.LogConfig) *FileHook {
	return &FileHook{
		config:  logConfig,
		writers: make(map[string]io.Writer),
		formatter: &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		},
	}
}

// Levels 返回此Hook关心的所有日志级别
func (hook *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 在日志触发时执行
func (hook *FileHook) Fire(entry *logrus.Entry) error {
	// 获取日志类型，默认为default
	logType := "default"
	if lt, ok := entry.Data["type"]; ok {
		switch t := lt.(type) {
		case LogType:
			logType = string(t)
		case string:
			logType = t
		}
	}

	formatted, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	hook.mutex.Lock()
	defer hook.mutex.Unlock()

	writer := hook.getWriterLocked(logType)
	_, err = writer.Write(formatted)
	return err
}

// getWriterLocked 获取指定类型的writer，不存在则创建
// 调用方必须已持有mutex
func (hook *FileHook) getWriterLocked(logType string) io.Writer {
	if writer, exists := hook.writers[logType]; exists {
		return writer
	}

	// logs/neowatch.log -> logs/neowatch-access.log
	base := hook.config.FilePath
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)

	filename := base
	if logType != "default" {
		filename = prefix + "-" + logType + ext
	}

	writer := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    hook.config.MaxSize,
		MaxBackups: hook.config.MaxBackups,
		MaxAge:     hook.config.MaxAge,
		Compress:   hook.config.Compress,
	}
	hook.writers[logType] = writer
	return writer
}
