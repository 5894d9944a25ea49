package database

import (
	"context"
	"fmt"

	"moviecatalog/pkg/logging"
	"moviecatalog/pkg/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory SQLite database. Its contents live
// only as long as the single pooled connection, i.e. the process.
const MemoryDSN = ":memory:"

func OpenCatalogDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	logging.Info().Str("dsn", dsn).Msg("Opening catalog database")
	return initDB(dsn, &models.MovieRecord{}, &models.RatingRecord{})
}

func initDB(dsn string, tables ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	// every new connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := db.AutoMigrate(tables...); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	logging.Info().Msg("Database connection established successfully")
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
