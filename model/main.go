package model

import (
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

var DB *gorm.DB

func chooseDB(envName string) (*gorm.DB, error) {
	dsn := os.Getenv(envName)
	if dsn != "" {
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			logger.SysLog("using PostgreSQL as database")
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true, // disables implicit prepared statement usage
			}), &gorm.Config{
				PrepareStmt: true,
			})
		}
		logger.SysLog("using MySQL as database")
		return gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
	}
	logger.SysLog("SQL_DSN not set, using SQLite as database")
	return gorm.Open(sqlite.Open(config.SQLitePath), &gorm.Config{
		PrepareStmt: true,
	})
}

func InitDB(envName string) (db *gorm.DB, err error) {
	db, err = chooseDB(envName)
	if err == nil {
		if config.DebugSQLEnabled {
			db = db.Debug()
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(config.SQLMaxIdleConns)
		sqlDB.SetMaxOpenConns(config.SQLMaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Second * time.Duration(config.SQLMaxLifetime))

		logger.SysLog("database migration started")
		err = db.AutoMigrate(&VideoTask{})
		if err != nil {
			return nil, err
		}
		logger.SysLog("database migrated")
		return db, err
	}
	logger.SysError("failed to initialize database: " + err.Error())
	return db, err
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	return err
}
