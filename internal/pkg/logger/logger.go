// 日志管理器
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"neowatch/internal/config"

	"github.com/sirupsen/logrus"
)

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
}

// LoggerInstance 全局日志实例
var LoggerInstance *LoggerManager

// InitLogger 初始化日志管理器
// 根据配置文件初始化logrus实例，支持多种输出方式和格式
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	// 创建logrus实例
	logger := logrus.New()

	// 设置日志级别
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		// 解析失败时默认使用info级别
		level = logrus.InfoLevel
		logger.Warnf("Invalid log level '%s', using 'info' as default", cfg.Level)
	}
	logger.SetLevel(level)

	// 设置日志格式
	if err := setLogFormatter(logger, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}

	// 设置日志输出
	setLogOutput(logger, cfg)

	// 文件输出时添加FileHook，按日志类别分文件滚动
	if strings.ToLower(cfg.Output) == "file" {
		logger.AddHook(NewFileHook(cfg))
	}

	// 设置调用者信息
	logger.SetReportCaller(cfg.Caller)

	// 创建日志管理器实例
	lm := &LoggerManager{
		logger: logger,
		config: cfg,
	}

	// 设置全局实例
	LoggerInstance = lm

	return lm, nil
}

// setLogFormatter 设置日志格式化器
func setLogFormatter(logger *logrus.Logger, cfg *config.LogConfig) error {
	// 毫秒精度时间戳，空格分隔日期和时间
	timestampFormat := "2006-01-02 15:04:05.000"

	switch strings.ToLower(cfg.Format) {
	case "json":
		// JSON格式化器，适合生产环境和日志分析
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	case "text":
		// 文本格式化器，适合开发环境和控制台输出
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
			ForceColors:     true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

// setLogOutput 设置日志输出目标
// 文件输出由FileHook处理，主输出置为io.Discard避免重复写入
func setLogOutput(logger *logrus.Logger, cfg *config.LogConfig) {
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "file":
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stdout)
	}
}

// GetLogger 获取底层logrus实例
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

// GetConfig 获取日志配置
func (lm *LoggerManager) GetConfig() *config.LogConfig {
	return lm.config
}

// SetLevel 运行期调整日志级别(配合配置热更新)
func (lm *LoggerManager) SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	lm.logger.SetLevel(parsed)
	return nil
}

// getGlobalLogger 获取全局日志实例，未初始化时回落到logrus标准实例
func getGlobalLogger() *logrus.Logger {
	if LoggerInstance != nil {
		return LoggerInstance.logger
	}
	return logrus.StandardLogger()
}

// Debug 输出Debug级别日志
func Debug(args ...interface{}) {
	getGlobalLogger().Debug(args...)
}

// Debugf 输出格式化Debug级别日志
func Debugf(format string, args ...interface{}) {
	getGlobalLogger().Debugf(format, args...)
}

// Info 输出Info级别日志
func Info(args ...interface{}) {
	getGlobalLogger().Info(args...)
}

// Infof 输出格式化Info级别日志
func Infof(format string, args ...interface{}) {
	getGlobalLogger().Infof(format, args...)
}

// Warn 输出Warn级别日志
func Warn(args ...interface{}) {
	getGlobalLogger().Warn(args...)
}

// Warnf 输出格式化Warn级别日志
func Warnf(format string, args ...interface{}) {
	getGlobalLogger().Warnf(format, args...)
}

// Error 输出Error级别日志
func Error(args ...interface{}) {
	getGlobalLogger().Error(args...)
}

// Errorf 输出格式化Error级别日志
func Errorf(format string, args ...interface{}) {
	getGlobalLogger().Errorf(format, args...)
}

// Fatal 输出Fatal级别日志并退出
func Fatal(args ...interface{}) {
	getGlobalLogger().Fatal(args...)
}

// Fatalf 输出格式化Fatal级别日志并退出
func Fatalf(format string, args ...interface{}) {
	getGlobalLogger().Fatalf(format, args...)
}

// WithField 创建携带单个字段的日志条目
func WithField(key string, value interface{}) *logrus.Entry {
	return getGlobalLogger().WithField(key, value)
}

// WithFields 创建携带多个字段的日志条目
func WithFields(fields logrus.Fields) *logrus.Entry {
	return getGlobalLogger().WithFields(fields)
}
