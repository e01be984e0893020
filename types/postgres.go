package types

import (
	"fmt"
	"strings"

	"github.com/shirouto/dsprobe"
)

const (
	POSTGRES_DB_HOST     = "localhost"
	POSTGRES_DB_PORT     = "5432"
	POSTGRES_DB_USERNAME = "postgres"
	POSTGRES_DB_PASSWORD = ""
	POSTGRES_DB_DATABASE = "postgres"
	POSTGRES_DB_SSLMODE  = "disable"
)

type IPostgres interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetDatabase() string
	GetSSLMode() string
	DebugMode() bool
	// Connection pool configuration
	GetMaxIdleConns() int
	GetMaxOpenConns() int
	GetConnMaxLifetime() int // in seconds
	GetMaxRetries() int
}

type Postgres struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Database       string
	SSLMode        string
	ConnectTimeout int // in seconds
	Debug          bool
}

func (p *Postgres) EngineDialect() Dialect {
	return DialectPostgres
}

func (p *Postgres) GetHost() string {
	if p.Host == "" {
		dsprobe.LogW("Configs Postgres: DB_HOST is not set, using default configuration.")
		return POSTGRES_DB_HOST
	}
	return p.Host
}

func (p *Postgres) GetPort() string {
	if p.Port == "" {
		dsprobe.LogW("Configs Postgres: DB_PORT is not set, using default configuration.")
		return POSTGRES_DB_PORT
	}
	return p.Port
}

func (p *Postgres) GetUsername() string {
	if p.Username == "" {
		dsprobe.LogW("Configs Postgres: DB_USERNAME is not set, using default configuration.")
		return POSTGRES_DB_USERNAME
	}
	return p.Username
}

func (p *Postgres) GetPassword() string {
	return p.Password
}

func (p *Postgres) GetDatabase() string {
	if p.Database == "" {
		dsprobe.LogW("Configs Postgres: DB_DATABASE is not set, using default configuration.")
		return POSTGRES_DB_DATABASE
	}
	return p.Database
}

func (p *Postgres) GetSSLMode() string {
	if p.SSLMode == "" {
		return POSTGRES_DB_SSLMODE
	}
	return p.SSLMode
}

func (p *Postgres) DebugMode() bool {
	return p.Debug
}

// GetConnectTimeout returns the connect timeout in seconds, carried in the
// DSN as the libpq `connect_timeout` keyword.
func (p *Postgres) GetConnectTimeout() int {
	return connectTimeoutSeconds(p.ConnectTimeout)
}

func (p *Postgres) GetDsn() string {
	return postgresKeywordDsn(
		p.GetHost(),
		p.GetPort(),
		p.GetUsername(),
		p.GetPassword(),
		p.GetDatabase(),
		p.GetSSLMode(),
		p.GetConnectTimeout(),
	)
}

// GetMaxIdleConns returns the maximum number of connections in the idle connection pool
func (p *Postgres) GetMaxIdleConns() int {
	return getEnvInt("POSTGRES_MAX_IDLE_CONNS", 10)
}

// GetMaxOpenConns returns the maximum number of open connections to the database
func (p *Postgres) GetMaxOpenConns() int {
	return getEnvInt("POSTGRES_MAX_OPEN_CONNS", 100)
}

// GetConnMaxLifetime returns the maximum amount of time a connection may be reused (in seconds)
func (p *Postgres) GetConnMaxLifetime() int {
	return getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 180)
}

// GetMaxRetries returns the maximum number of retry attempts for connection
func (p *Postgres) GetMaxRetries() int {
	return getEnvInt("POSTGRES_MAX_RETRIES", 3)
}

// postgresKeywordDsn builds a libpq keyword/value DSN. Both Postgres and
// Redshift speak this format; connect_timeout bounds the connection attempt.
func postgresKeywordDsn(host, port, user, password, database, sslmode string, timeout int) string {
	parts := []string{
		fmt.Sprintf("host=%s", host),
		fmt.Sprintf("port=%s", port),
		fmt.Sprintf("user=%s", user),
	}
	if password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", password))
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s", database),
		fmt.Sprintf("sslmode=%s", sslmode),
		fmt.Sprintf("connect_timeout=%d", timeout),
	)
	return strings.Join(parts, " ")
}

// WithConnectTimeout returns a copy with the connect timeout replaced.
func (p *Postgres) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *p
	clone.ConnectTimeout = seconds
	return &clone
}
