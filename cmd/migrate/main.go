/*
*
  - 数据库迁移工具
  - @author: sun977
  - @date: 2025.11.21
  - @description: 数据库模型迁移和测试数据初始化工具
  - @usage: go run main.go -env=test -seed=true -drop=true
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (test, dev, prod) (default "test")
    -seed
    是否填充测试数据 (default true)
    -verbose
    是否显示详细日志
*/
package main

import (
	"flag"
	"log"

	"neowatch/internal/config"
	"neowatch/internal/model"
	"neowatch/internal/pkg/auth"
	"neowatch/internal/pkg/database"
	"neowatch/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	Environment string // 环境标识: test, dev, prod
	SeedData    bool   // 是否填充测试数据
	DropFirst   bool   // 是否先删除表（危险操作）
	Verbose     bool   // 是否显示详细日志
}

func main() {
	opts := parseFlags()

	// 加载配置
	cfg, err := config.LoadConfig("", opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	// 初始化日志管理器
	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":        "cmd/migrate/main.go",
		"operation":   "database_migration",
		"func_name":   "main",
		"environment": opts.Environment,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	// 初始化数据库连接,按配置自动选择 mysql/sqlite 驱动
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_connection",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库连接失败")
	}

	if err := performMigration(db, opts, logManager); err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_migration",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "database_migration",
		"func_name": "main",
	}).Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.Environment, "env", "test", "环境标识 (test, dev, prod)")
	flag.BoolVar(&opts.SeedData, "seed", true, "是否填充测试数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")
	flag.BoolVar(&opts.Verbose, "verbose", false, "是否显示详细日志")
	flag.Parse()

	return opts
}

// migrationModels 返回迁移涉及的全部模型
// 顺序保证外键引用的表先建
func migrationModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Host{},
		&model.Tag{},
		&model.HostTag{},
		&model.Ping{},
		&model.Icmp{},
		&model.Stats{},
	}
}

// performMigration 执行数据库迁移
func performMigration(db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	models := migrationModels()

	if opts.DropFirst {
		logManager.GetLogger().Warn("删除现有表结构")
		// 逆序删除,先删引用方
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return err
			}
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	// 标签名身份区分大小写;MySQL默认utf8mb4排序规则不区分大小写,
	// 迁移后将标签名列改为二进制排序规则(SQLite默认即按字节比较,无需处理)
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec(
			"ALTER TABLE tags MODIFY name varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		).Error; err != nil {
			return err
		}
	}

	if opts.SeedData && opts.Environment != "prod" {
		return seedData(db, logManager)
	}

	return nil
}

// seedData 填充测试数据,已存在时跳过
func seedData(db *gorm.DB, logManager *logger.LoggerManager) error {
	var count int64
	if err := db.Model(&model.Host{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logManager.GetLogger().Info("已有主机数据,跳过测试数据填充")
		return nil
	}

	passwordManager := auth.NewPasswordManager(nil)
	hash, err := passwordManager.HashPassword("neowatch123")
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     "admin",
		Email:    "admin@neowatch.local",
		Password: hash,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	hosts := []*model.Host{
		{
			Name:    "localhost",
			Address: "127.0.0.1",
			Tags:    []*model.Tag{{Name: "local"}, {Name: "infra"}},
		},
		{
			Name:    "gateway",
			Address: "192.168.1.1",
			Tags:    []*model.Tag{{Name: "infra"}},
		},
	}
	for _, h := range hosts {
		// 复用已存在的标签,避免唯一索引冲突
		for i, t := range h.Tags {
			var existing model.Tag
			if err := db.Where("name = ?", t.Name).First(&existing).Error; err == nil {
				h.Tags[i] = &existing
			}
		}
		if err := db.Create(h).Error; err != nil {
			return err
		}
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"users": 1,
		"hosts": len(hosts),
	}).Info("测试数据填充完成")

	return nil
}
