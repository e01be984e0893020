package drivers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type mysqlProvider struct {
	name   string
	Gorm   *gorm.DB
	Sqlx   *sqlx.DB
	Config types.IMySQL
}

func (m *mysqlProvider) Name() string {
	return m.name
}

func (m *mysqlProvider) Dialect() types.Dialect {
	return types.DialectMySQL
}

// Open connects with the DSN-carried timeout bounding the attempt. The
// gorm session is configured the way an application client would be, so a
// successful probe means real traffic would connect too.
func (m *mysqlProvider) Open(ctx context.Context) error {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       m.Config.GetDsn(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,  // not supported before MySQL 5.6
		DontSupportRenameIndex:    true,  // rename index not supported before MySQL 5.7, MariaDB
		DontSupportRenameColumn:   true,  // rename column not supported before MySQL 8, MariaDB
		SkipInitializeWithVersion: false, // auto configure based on current MySQL version
	}), &gorm.Config{
		Logger: gormLogMode(m.Config.DebugMode()),
	})
	if err != nil {
		closePool(db)
		return fmt.Errorf("mysql: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		closePool(db)
		return fmt.Errorf("mysql: raw handle: %w", err)
	}

	applyPool(sqlDB,
		m.Config.GetMaxIdleConns(),
		m.Config.GetMaxOpenConns(),
		m.Config.GetConnMaxLifetime(),
	)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("mysql: ping: %w", err)
	}

	m.Gorm = db
	m.Sqlx = sqlx.NewDb(sqlDB, "mysql")
	return nil
}

func (m *mysqlProvider) Validate(ctx context.Context) error {
	if m.Sqlx == nil {
		return fmt.Errorf("mysql: validate before open")
	}
	return validateSQL(ctx, m.Sqlx, types.DialectMySQL)
}

func (m *mysqlProvider) Close() error {
	if m.Sqlx == nil {
		return nil
	}
	return m.Sqlx.Close()
}
