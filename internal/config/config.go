/**
 * 配置:应用配置结构
 * @author: sun977
 * @date: 2025.11.20
 * @description: NeoWatch主机监控服务的配置结构定义
 * @func: Config结构体及各子配置结构体
 */
package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构体 [这里的字段和配置文件中一级字段保持一致，否则会没有值]
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`     // 服务器配置
	Database DatabaseConfig `yaml:"database" mapstructure:"database"` // 数据库配置
	Log      LogConfig      `yaml:"log" mapstructure:"log"`           // 日志配置
	Security SecurityConfig `yaml:"security" mapstructure:"security"` // 安全配置
	Probe    ProbeConfig    `yaml:"probe" mapstructure:"probe"`       // 探测配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`                         // 服务器主机地址
	Port           int           `yaml:"port" mapstructure:"port"`                         // 服务器端口
	Mode           string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式: debug, release, test
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大请求头字节数
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string      `yaml:"driver" mapstructure:"driver"` // 数据库驱动: mysql, sqlite
	MySQL  MySQLConfig `yaml:"mysql" mapstructure:"mysql"`   // MySQL配置
	SQLite SQLiteConfig `yaml:"sqlite" mapstructure:"sqlite"` // SQLite配置(开发/测试环境)
	Redis  RedisConfig `yaml:"redis" mapstructure:"redis"`   // Redis配置
}

// MySQLConfig MySQL数据库配置
type MySQLConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`                             // 数据库主机
	Port            int           `yaml:"port" mapstructure:"port"`                             // 数据库端口
	Username        string        `yaml:"username" mapstructure:"username"`                     // 用户名
	Password        string        `yaml:"password" mapstructure:"password"`                     // 密码
	Database        string        `yaml:"database" mapstructure:"database"`                     // 数据库名
	Charset         string        `yaml:"charset" mapstructure:"charset"`                       // 字符集
	ParseTime       bool          `yaml:"parse_time" mapstructure:"parse_time"`                 // 是否解析时间
	Loc             string        `yaml:"loc" mapstructure:"loc"`                               // 时区
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`         // 最大空闲连接数
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`         // 最大打开连接数
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`   // 连接最大生存时间
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"` // 连接最大空闲时间
	LogLevel        string        `yaml:"log_level" mapstructure:"log_level"`                   // 日志级别
}

// SQLiteConfig SQLite数据库配置
type SQLiteConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`           // 数据库文件路径, ":memory:"为内存库
	LogLevel string `yaml:"log_level" mapstructure:"log_level"` // 日志级别
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`               // 是否启用Redis(缓存与会话)
	Host         string        `yaml:"host" mapstructure:"host"`                     // Redis主机
	Port         int           `yaml:"port" mapstructure:"port"`                     // Redis端口
	Password     string        `yaml:"password" mapstructure:"password"`             // Redis密码
	Database     int           `yaml:"database" mapstructure:"database"`             // Redis数据库索引
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`           // 连接池大小
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"` // 最小空闲连接数
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`     // 连接超时
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`     // 读取超时
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`   // 写入超时
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式: json, text
	Output     string `yaml:"output" mapstructure:"output"`           // 输出方式: stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 保留的日志文件数量
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩日志文件
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	JWT       JWTConfig       `yaml:"jwt" mapstructure:"jwt"`               // JWT配置
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`             // CORS配置
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"` // 限流配置
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret            string        `yaml:"secret" mapstructure:"secret"`                           // JWT密钥
	Issuer            string        `yaml:"issuer" mapstructure:"issuer"`                           // 签发者
	AccessTokenExpire time.Duration `yaml:"access_token_expire" mapstructure:"access_token_expire"` // 访问令牌过期时间
}

// CORSConfig CORS配置
type CORSConfig struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`                     // 是否启用CORS
	AllowOrigins     []string      `yaml:"allow_origins" mapstructure:"allow_origins"`         // 允许的源
	AllowMethods     []string      `yaml:"allow_methods" mapstructure:"allow_methods"`         // 允许的方法
	AllowHeaders     []string      `yaml:"allow_headers" mapstructure:"allow_headers"`         // 允许的请求头
	AllowCredentials bool          `yaml:"allow_credentials" mapstructure:"allow_credentials"` // 是否允许凭证
	MaxAge           time.Duration `yaml:"max_age" mapstructure:"max_age"`                     // 预检请求缓存时间
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`                         // 是否启用限流
	RequestsPerSecond int  `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 每秒请求数限制
	BurstSize         int  `yaml:"burst_size" mapstructure:"burst_size"`                   // 突发请求数
}

// ProbeConfig 探测配置
type ProbeConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent"` // 全局并发探测上限
	MaxCount      int           `yaml:"max_count" mapstructure:"max_count"`           // 单次探测最大包数
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`               // 单个包的超时时间
	CacheTTL      time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`           // 最近探测结果缓存时间
}

// GetServerAddr 获取服务器监听地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// validateConfig 验证配置的合法性
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Driver {
	case "mysql":
		if config.Database.MySQL.Host == "" {
			return fmt.Errorf("mysql host cannot be empty")
		}
		if config.Database.MySQL.Database == "" {
			return fmt.Errorf("mysql database cannot be empty")
		}
	case "sqlite":
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	if config.Security.JWT.Secret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if len(config.Security.JWT.Secret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters")
	}

	if config.Probe.MaxConcurrent <= 0 {
		return fmt.Errorf("probe max_concurrent must be positive")
	}
	if config.Probe.MaxCount <= 0 {
		return fmt.Errorf("probe max_count must be positive")
	}

	return nil
}

// applyDefaults 填充缺省配置值
func applyDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8000
	}
	if config.Server.Mode == "" {
		config.Server.Mode = "release"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}
	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = 60 * time.Second
	}
	if config.Server.MaxHeaderBytes == 0 {
		config.Server.MaxHeaderBytes = 1 << 20
	}

	if config.Database.Driver == "" {
		config.Database.Driver = "mysql"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "json"
	}
	if config.Log.Output == "" {
		config.Log.Output = "stdout"
	}
	if config.Log.FilePath == "" {
		config.Log.FilePath = "logs/neowatch.log"
	}

	if config.Security.JWT.Issuer == "" {
		config.Security.JWT.Issuer = "neowatch"
	}
	if config.Security.JWT.AccessTokenExpire == 0 {
		config.Security.JWT.AccessTokenExpire = time.Hour
	}

	if config.Probe.MaxConcurrent == 0 {
		config.Probe.MaxConcurrent = 8
	}
	if config.Probe.MaxCount == 0 {
		config.Probe.MaxCount = 20
	}
	if config.Probe.Timeout == 0 {
		config.Probe.Timeout = 5 * time.Second
	}
	if config.Probe.CacheTTL == 0 {
		config.Probe.CacheTTL = 10 * time.Minute
	}
}
