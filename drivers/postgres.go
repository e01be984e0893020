package drivers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type postgresProvider struct {
	name   string
	Gorm   *gorm.DB
	Sqlx   *sqlx.DB
	Config types.IPostgres
}

func (p *postgresProvider) Name() string {
	return p.name
}

func (p *postgresProvider) Dialect() types.Dialect {
	return types.DialectPostgres
}

func (p *postgresProvider) Open(ctx context.Context) error {
	db, err := gorm.Open(postgres.Open(p.Config.GetDsn()), &gorm.Config{
		Logger: gormLogMode(p.Config.DebugMode()),
	})
	if err != nil {
		closePool(db)
		return fmt.Errorf("postgres: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		closePool(db)
		return fmt.Errorf("postgres: raw handle: %w", err)
	}

	applyPool(sqlDB,
		p.Config.GetMaxIdleConns(),
		p.Config.GetMaxOpenConns(),
		p.Config.GetConnMaxLifetime(),
	)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("postgres: ping: %w", err)
	}

	p.Gorm = db
	p.Sqlx = sqlx.NewDb(sqlDB, "pgx")
	return nil
}

func (p *postgresProvider) Validate(ctx context.Context) error {
	if p.Sqlx == nil {
		return fmt.Errorf("postgres: validate before open")
	}
	return validateSQL(ctx, p.Sqlx, types.DialectPostgres)
}

func (p *postgresProvider) Close() error {
	if p.Sqlx == nil {
		return nil
	}
	return p.Sqlx.Close()
}
