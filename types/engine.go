package types

import "context"

// Dialect identifies a probe target backend.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectRedshift Dialect = "redshift"
	DialectMSSQL    Dialect = "mssql"
	DialectSqLite   Dialect = "sqlite"
	DialectRedis    Dialect = "redis"
	DialectMongoDB  Dialect = "mongodb"
	DialectAMQP     Dialect = "amqp"
)

// SQLDialects lists the dialects reached over a SQL driver.
var SQLDialects = []Dialect{
	DialectMySQL,
	DialectPostgres,
	DialectRedshift,
	DialectMSSQL,
	DialectSqLite,
}

// IEngine is a connected datasource that can be validity-checked.
// Open establishes the connection honoring the configured connect timeout,
// Validate runs the dialect's trivial check against the live connection.
type IEngine interface {
	Open(ctx context.Context) error
	Validate(ctx context.Context) error
	Close() error
	Name() string
	Dialect() Dialect
}

// IEngineConfig is the common surface of every dialect configuration.
type IEngineConfig interface {
	GetDsn() string
	GetConnectTimeout() int // in seconds
	EngineDialect() Dialect
}

// Address exposes host and port for dialects reached over TCP, letting the
// prober run a raw reachability check before the driver dials.
type Address interface {
	GetHost() string
	GetPort() string
}

// TimeoutCloner is implemented by configs whose connect timeout can be
// overridden on a copy, leaving the original untouched. Timeout sweeps use
// it to re-probe the same target across a ladder of timeouts.
type TimeoutCloner interface {
	WithConnectTimeout(seconds int) IEngineConfig
}
