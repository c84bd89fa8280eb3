/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2025.11.21
 * @description: 路由管理器,包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"net/http"

	"neowatch/internal/app/watch/middleware"
	"neowatch/internal/config"
	"neowatch/internal/handler"
	"neowatch/internal/model"
	authPkg "neowatch/internal/pkg/auth"
	"neowatch/internal/pkg/logger"
	probePkg "neowatch/internal/pkg/probe"
	"neowatch/internal/repo/mysql"
	redisRepo "neowatch/internal/repo/redis"
	authService "neowatch/internal/service/auth"
	hostService "neowatch/internal/service/host"
	probeService "neowatch/internal/service/probe"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	hostHandler       *handler.HostHandler
	pingHandler       *handler.PingHandler
	tagHandler        *handler.TagHandler
	userHandler       *handler.UserHandler
	signInHandler     *handler.SignInHandler
	healthHandler     *handler.HealthHandler
}

// NewRouter 创建路由管理器实例
// 装配顺序:工具包 -> 数据访问层 -> 服务层 -> 处理器 -> 中间件
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	// 初始化工具包
	jwtManager := authPkg.NewJWTManager(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.AccessTokenExpire,
	)
	passwordManager := authPkg.NewPasswordManager(nil)
	runner := probePkg.NewRunner(cfg.Probe.MaxConcurrent, cfg.Probe.MaxCount, cfg.Probe.Timeout)

	// 初始化数据访问层
	hostRepo := mysql.NewHostRepository(db)
	pingRepo := mysql.NewPingRepository(db)
	userRepo := mysql.NewUserRepository(db)
	probeCache := redisRepo.NewProbeCacheRepository(redisClient, cfg.Probe.CacheTTL)

	// 初始化服务层
	hostSvc := hostService.NewHostService(hostRepo, probeCache)
	probeSvc := probeService.NewProbeService(runner, hostRepo, pingRepo, probeCache)
	userSvc := authService.NewUserService(userRepo, passwordManager)
	sessionSvc := authService.NewSessionService(userSvc, jwtManager)

	// 初始化中间件管理器
	middlewareManager := middleware.NewMiddlewareManager(sessionSvc, &cfg.Security)

	// 初始化处理器(控制器是服务集合,先初始化服务,然后服务装填成控制器)
	hostHdl := handler.NewHostHandler(hostSvc)
	pingHdl := handler.NewPingHandler(probeSvc)
	tagHdl := handler.NewTagHandler(hostSvc)
	userHdl := handler.NewUserHandler(userSvc)
	signInHdl := handler.NewSignInHandler(sessionSvc)
	healthHdl := handler.NewHealthHandler(db, redisClient)

	// 创建Gin引擎
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	return &Router{
		config:            cfg,
		engine:            engine,
		middlewareManager: middlewareManager,
		hostHandler:       hostHdl,
		pingHandler:       pingHdl,
		tagHandler:        tagHdl,
		userHandler:       userHdl,
		signInHandler:     signInHdl,
		healthHandler:     healthHdl,
	}
}

// SetupRoutes 设置全局中间件和路由
func (r *Router) SetupRoutes() {
	// 1) 先注册全局中间件;2) 再注册各模块路由。
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// registerGlobalMiddleware 注册全局中间件
func (r *Router) registerGlobalMiddleware() {
	// 系统恢复中间件,防止 panic 直接导致进程崩溃
	r.engine.Use(gin.Recovery())

	// 请求日志中间件,负责 request_id 透传与访问日志
	r.engine.Use(r.middlewareManager.GinLoggingMiddleware())

	if r.config.Security.CORS.Enabled {
		r.engine.Use(r.middlewareManager.GinCORSMiddleware())
	}

	if r.config.Security.RateLimit.Enabled {
		r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())
	}

	logger.LogSystemEvent("router", "register_global_middleware", "全局中间件注册完成", logrus.InfoLevel, map[string]interface{}{
		"cors_enabled":       r.config.Security.CORS.Enabled,
		"rate_limit_enabled": r.config.Security.RateLimit.Enabled,
	})
}

// registerRoutes 注册各模块路由
// 认证策略:主机/探测/标签路由统一要求 Bearer 令牌,注册与登录开放
func (r *Router) registerRoutes() {
	// 未匹配路由统一返回 404
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Not Found"})
	})

	r.setupHealthRoutes(r.engine.Group(""))

	api := r.engine.Group("/api")
	r.setupPublicRoutes(api)
	r.setupHostRoutes(api)
	r.setupPingRoutes(api)
	r.setupTagRoutes(api)
	r.setupUserRoutes(api)

	logger.LogSystemEvent("router", "register_routes", "业务路由注册完成", logrus.InfoLevel, nil)
}
