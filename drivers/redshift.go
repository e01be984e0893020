package drivers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shirouto/dsprobe/types"

	_ "github.com/lib/pq"
)

// Redshift speaks the Postgres protocol but predates most pgx niceties, so
// the provider goes through database/sql with lib/pq instead of gorm. The
// connect_timeout keyword in the DSN bounds the attempt either way.
type redshiftProvider struct {
	name   string
	Sqlx   *sqlx.DB
	Config types.IRedshift
}

func (r *redshiftProvider) Name() string {
	return r.name
}

func (r *redshiftProvider) Dialect() types.Dialect {
	return types.DialectRedshift
}

func (r *redshiftProvider) Open(ctx context.Context) error {
	db, err := sqlx.Open("postgres", r.Config.GetDsn())
	if err != nil {
		return fmt.Errorf("redshift: open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("redshift: ping: %w", err)
	}

	r.Sqlx = db
	return nil
}

func (r *redshiftProvider) Validate(ctx context.Context) error {
	if r.Sqlx == nil {
		return fmt.Errorf("redshift: validate before open")
	}
	return validateSQL(ctx, r.Sqlx, types.DialectRedshift)
}

func (r *redshiftProvider) Close() error {
	if r.Sqlx == nil {
		return nil
	}
	return r.Sqlx.Close()
}
