package db

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripify-backend/internal/config"
	"tripify-backend/internal/model"
)

var (
	database *gorm.DB
	mu       sync.RWMutex
)

// Open connects to the database described by cfg and applies the pool settings.
func Open(cfg *config.APIConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := cfg.DB.DSN(cfg.Context.TimeZone)
	switch cfg.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	pool := cfg.DB.Pool
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s database: %w", cfg.DB.Driver, err)
	}
	return conn, nil
}

// InitDBFromConfig opens the process-wide connection and, when configured,
// migrates the schema.
func InitDBFromConfig(cfg *config.APIConfig) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	if cfg.DB.Initialize {
		if err := Migrate(conn); err != nil {
			return err
		}
	}

	mu.Lock()
	database = conn
	mu.Unlock()
	return nil
}

// Migrate creates or updates the tables for all models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&model.User{}, &model.MoodRecord{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetDB returns the connection opened by InitDBFromConfig.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return database
}

// Close releases the process-wide connection.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if database == nil {
		return nil
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	database = nil
	return sqlDB.Close()
}
