package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"storefront/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectAttempts = 10

// PostgresDSN builds a libpq keyword DSN unless db.dsn is set.
func PostgresDSN(c config.DBConfig) string {
	if c.DSN != "" {
		return c.DSN
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, port, sslMode)
}

// MySQLDSN builds a go-sql-driver DSN unless db.dsn is set.
func MySQLDSN(c config.DBConfig) string {
	if c.DSN != "" {
		return c.DSN
	}
	port := c.Port
	if port == "" {
		port = "3306"
	}
	params := url.Values{}
	params.Set("charset", "utf8mb4")
	params.Set("parseTime", "True")
	params.Set("loc", "UTC")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", c.User, c.Password, c.Host, port, c.Name, params.Encode())
}

func dialector(driver string, c config.DBConfig) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(c)), nil
	case config.DriverMySQL:
		return mysql.Open(MySQLDSN(c)), nil
	}
	return nil, fmt.Errorf("unsupported SQL driver %q", driver)
}

// Open connects to the configured SQL database, retrying with a linear
// backoff while the server comes up.
func Open(ctx context.Context, driver string, c config.DBConfig, logger *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(driver, c)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var db *gorm.DB
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dial, gormCfg)
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(c.MaxOpenConns)
				sqlDB.SetMaxIdleConns(c.MaxIdleConns)
				sqlDB.SetConnMaxLifetime(c.ConnMaxLife)
			}
			logger.Info("connected to database", zap.String("driver", driver))
			return db.WithContext(ctx), nil
		}

		logger.Warn("database connection failed, retrying",
			zap.String("driver", driver),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * 2 * time.Second):
		}
	}
	return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", driver, connectAttempts, err)
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// NewRedisClient returns a client for cfg after checking the server answers.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
