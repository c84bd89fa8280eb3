/**
 * 应用:应用装配
 * @author: sun977
 * @date: 2025.11.21
 * @description: 应用初始化,负责配置加载、日志、数据库、缓存与路由器的装配
 * @func: NewApp / GetConfig / GetRouter / Close
 */
package watch

import (
	"fmt"

	"neowatch/internal/app/watch/router"
	"neowatch/internal/config"
	"neowatch/internal/pkg/database"
	"neowatch/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config        *config.Config
	router        *router.Router
	db            *gorm.DB
	redisClient   *redis.Client
	loggerManager *logger.LoggerManager
	configWatcher *config.ConfigWatcher
}

// NewApp 创建新的应用程序实例
// configPath/env 为空时由 loader 从环境变量推断
func NewApp(configPath, env string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 缓存是可选依赖,连接失败只降级,不阻止启动
	var redisClient *redis.Client
	if cfg.Database.Redis.Enabled {
		redisClient, err = database.NewRedisConnection(&cfg.Database.Redis)
		if err != nil {
			logger.LogSystemEvent("app", "redis_connect", "Redis连接失败,最近探测缓存降级为直查数据库", logrus.WarnLevel, map[string]interface{}{
				"error": err.Error(),
			})
			redisClient = nil
		}
	}

	r := router.NewRouter(db, redisClient, cfg)
	r.SetupRoutes()

	app := &App{
		config:        cfg,
		router:        r,
		db:            db,
		redisClient:   redisClient,
		loggerManager: loggerManager,
	}

	// 配置热重载目前只接管日志级别,其余字段重启生效
	if watcher, werr := config.NewConfigWatcher(configPath, env); werr == nil {
		watcher.OnReload(func(newConfig *config.Config) {
			if err := loggerManager.SetLevel(newConfig.Log.Level); err != nil {
				logger.LogSystemEvent("app", "config_reload", "日志级别更新失败", logrus.WarnLevel, map[string]interface{}{
					"level": newConfig.Log.Level,
					"error": err.Error(),
				})
				return
			}
			logger.LogSystemEvent("app", "config_reload", "日志级别已更新", logrus.InfoLevel, map[string]interface{}{
				"level": newConfig.Log.Level,
			})
		})
		if err := watcher.Start(); err == nil {
			app.configWatcher = watcher
		}
	}

	logger.LogSystemEvent("app", "startup", "应用初始化完成", logrus.InfoLevel, map[string]interface{}{
		"driver":        cfg.Database.Driver,
		"redis_enabled": redisClient != nil,
	})

	return app, nil
}

// GetConfig 获取配置实例
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// Close 释放应用持有的连接资源
func (a *App) Close() error {
	if a.configWatcher != nil {
		_ = a.configWatcher.Stop()
	}

	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}

	return nil
}
