package database

import (
	"Everest/config"
	"Everest/models"
	"Everest/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接。
// TranslateError 必须开：票据号/券码的唯一索引冲突要能以
// gorm.ErrDuplicatedKey 的形式抛回业务层做幂等处理
func NewDB(conf *config.Config) *gorm.DB {
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	// dev 环境直接同步表结构，线上 DDL 走独立流程
	if conf.Debug() {
		err = db.AutoMigrate(
			&models.Member{},
			&models.Receipt{},
			&models.Coupon{},
			&models.Staff{},
		)
		if err != nil {
			log.L.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	log.L.Info("connect database success")
	return db
}
