// Package drivers holds one engine provider per supported dialect. A
// provider builds its DSN from the types config, opens the connection with
// the configured connect timeout, and answers the validity check against the
// live connection.
package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// validationQuery is the trivial statement every SQL dialect must answer.
const validationQuery = "SELECT 1"

// validationExpected is the value the scanned result must equal for the
// engine to count as valid.
const validationExpected = 1

// NewEngine builds the provider for a dialect configuration.
func NewEngine(name string, cfg types.IEngineConfig) (types.IEngine, error) {
	switch c := cfg.(type) {
	case types.IMySQL:
		return &mysqlProvider{name: name, Config: c}, nil
	case types.IPostgres:
		return &postgresProvider{name: name, Config: c}, nil
	case types.IRedshift:
		return &redshiftProvider{name: name, Config: c}, nil
	case types.IMSSQL:
		return &mssqlProvider{name: name, Config: c}, nil
	case *types.SqLite:
		return &sqliteProvider{name: name, Config: c}, nil
	case types.IRedis:
		return &redisProvider{name: name, Config: c}, nil
	case types.IMongoDB:
		return &mongodbProvider{name: name, Config: c}, nil
	case types.IAMQP:
		return &amqpProvider{name: name, Config: c}, nil
	default:
		return nil, fmt.Errorf("drivers: unsupported engine config %T", cfg)
	}
}

// gormLogMode maps debug mode onto gorm's logger the way every SQL provider
// expects it.
func gormLogMode(debug bool) logger.Interface {
	if debug {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Warn)
}

// applyPool configures the connection pool on a raw handle.
func applyPool(db *sql.DB, maxIdle, maxOpen, lifetimeSeconds int) {
	db.SetMaxIdleConns(maxIdle)
	db.SetMaxOpenConns(maxOpen)
	db.SetConnMaxLifetime(time.Duration(lifetimeSeconds) * time.Second)
}

// closePool releases the raw handle behind a gorm session that never became
// usable. gorm opens the pool before its automatic ping, so a handshake
// failure still leaves a handle to release.
func closePool(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
		sqlDB.Close()
	}
}

// validateSQL runs the validation query and compares the scanned result
// against the expected constant.
func validateSQL(ctx context.Context, db *sqlx.DB, dialect types.Dialect) error {
	var result int
	if err := db.GetContext(ctx, &result, validationQuery); err != nil {
		return fmt.Errorf("%s: validation query: %w", dialect, err)
	}
	if result != validationExpected {
		return fmt.Errorf("%s: validation query returned %d, expected %d", dialect, result, validationExpected)
	}
	return nil
}
