package types

// SQLITE_DB_PATH is used when no path is configured; an in-memory database
// always accepts a connection, making it the local smoke target.
const SQLITE_DB_PATH = ":memory:"

type SqLite struct {
	Name   string
	DBPath string
	Debug  bool
}

func (s *SqLite) EngineDialect() Dialect {
	return DialectSqLite
}

func (s *SqLite) GetDsn() string {
	if s.DBPath == "" {
		return SQLITE_DB_PATH
	}
	return s.DBPath
}

// GetConnectTimeout is nominal for SQLite; there is no network dial to bound.
func (s *SqLite) GetConnectTimeout() int {
	return DEFAULT_CONNECT_TIMEOUT
}

func (s *SqLite) DebugMode() bool {
	return s.Debug
}

// GetMaxIdleConns returns the maximum number of connections in the idle connection pool.
// SQLite benefits from low connection counts.
func (s *SqLite) GetMaxIdleConns() int {
	return 1
}

// GetMaxOpenConns returns the maximum number of open connections to the database
func (s *SqLite) GetMaxOpenConns() int {
	return 5
}

// GetConnMaxLifetime returns the maximum amount of time a connection may be reused (in seconds)
func (s *SqLite) GetConnMaxLifetime() int {
	return 3600
}
