package drivers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

type mssqlProvider struct {
	name   string
	Gorm   *gorm.DB
	Sqlx   *sqlx.DB
	Config types.IMSSQL
}

func (m *mssqlProvider) Name() string {
	return m.name
}

func (m *mssqlProvider) Dialect() types.Dialect {
	return types.DialectMSSQL
}

func (m *mssqlProvider) Open(ctx context.Context) error {
	db, err := gorm.Open(sqlserver.Open(m.Config.GetDsn()), &gorm.Config{
		Logger: gormLogMode(m.Config.DebugMode()),
	})
	if err != nil {
		closePool(db)
		return fmt.Errorf("mssql: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		closePool(db)
		return fmt.Errorf("mssql: raw handle: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("mssql: ping: %w", err)
	}

	m.Gorm = db
	m.Sqlx = sqlx.NewDb(sqlDB, "sqlserver")
	return nil
}

func (m *mssqlProvider) Validate(ctx context.Context) error {
	if m.Sqlx == nil {
		return fmt.Errorf("mssql: validate before open")
	}
	return validateSQL(ctx, m.Sqlx, types.DialectMSSQL)
}

func (m *mssqlProvider) Close() error {
	if m.Sqlx == nil {
		return nil
	}
	return m.Sqlx.Close()
}
