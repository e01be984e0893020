package drivers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sqliteProvider struct {
	name   string
	Gorm   *gorm.DB
	Sqlx   *sqlx.DB
	Config *types.SqLite
}

func (s *sqliteProvider) Name() string {
	return s.name
}

func (s *sqliteProvider) Dialect() types.Dialect {
	return types.DialectSqLite
}

func (s *sqliteProvider) Open(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(s.Config.GetDsn()), &gorm.Config{
		Logger: gormLogMode(s.Config.DebugMode()),
	})
	if err != nil {
		closePool(db)
		return fmt.Errorf("sqlite: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		closePool(db)
		return fmt.Errorf("sqlite: raw handle: %w", err)
	}

	applyPool(sqlDB,
		s.Config.GetMaxIdleConns(),
		s.Config.GetMaxOpenConns(),
		s.Config.GetConnMaxLifetime(),
	)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("sqlite: ping: %w", err)
	}

	s.Gorm = db
	s.Sqlx = sqlx.NewDb(sqlDB, "sqlite3")
	return nil
}

func (s *sqliteProvider) Validate(ctx context.Context) error {
	if s.Sqlx == nil {
		return fmt.Errorf("sqlite: validate before open")
	}
	return validateSQL(ctx, s.Sqlx, types.DialectSqLite)
}

func (s *sqliteProvider) Close() error {
	if s.Sqlx == nil {
		return nil
	}
	return s.Sqlx.Close()
}
