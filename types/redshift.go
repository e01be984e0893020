package types

import (
	"github.com/shirouto/dsprobe"
)

const (
	REDSHIFT_DB_HOST     = "localhost"
	REDSHIFT_DB_PORT     = "5439"
	REDSHIFT_DB_USERNAME = "awsuser"
	REDSHIFT_DB_DATABASE = "dev"
	REDSHIFT_DB_SSLMODE  = "require"
)

type IRedshift interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetDatabase() string
	GetSSLMode() string
	DebugMode() bool
	GetMaxRetries() int
}

// Redshift speaks the Postgres wire protocol, so its DSN is the same
// keyword/value format; only the defaults differ (port 5439, TLS required).
type Redshift struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Database       string
	SSLMode        string
	ConnectTimeout int // in seconds
	Debug          bool
}

func (r *Redshift) EngineDialect() Dialect {
	return DialectRedshift
}

func (r *Redshift) GetHost() string {
	if r.Host == "" {
		dsprobe.LogW("Configs Redshift: DB_HOST is not set, using default configuration.")
		return REDSHIFT_DB_HOST
	}
	return r.Host
}

func (r *Redshift) GetPort() string {
	if r.Port == "" {
		dsprobe.LogW("Configs Redshift: DB_PORT is not set, using default configuration.")
		return REDSHIFT_DB_PORT
	}
	return r.Port
}

func (r *Redshift) GetUsername() string {
	if r.Username == "" {
		dsprobe.LogW("Configs Redshift: DB_USERNAME is not set, using default configuration.")
		return REDSHIFT_DB_USERNAME
	}
	return r.Username
}

func (r *Redshift) GetPassword() string {
	return r.Password
}

func (r *Redshift) GetDatabase() string {
	if r.Database == "" {
		dsprobe.LogW("Configs Redshift: DB_DATABASE is not set, using default configuration.")
		return REDSHIFT_DB_DATABASE
	}
	return r.Database
}

func (r *Redshift) GetSSLMode() string {
	if r.SSLMode == "" {
		return REDSHIFT_DB_SSLMODE
	}
	return r.SSLMode
}

func (r *Redshift) DebugMode() bool {
	return r.Debug
}

func (r *Redshift) GetConnectTimeout() int {
	return connectTimeoutSeconds(r.ConnectTimeout)
}

func (r *Redshift) GetDsn() string {
	return postgresKeywordDsn(
		r.GetHost(),
		r.GetPort(),
		r.GetUsername(),
		r.GetPassword(),
		r.GetDatabase(),
		r.GetSSLMode(),
		r.GetConnectTimeout(),
	)
}

// GetMaxRetries returns the maximum number of retry attempts for connection
func (r *Redshift) GetMaxRetries() int {
	return getEnvInt("REDSHIFT_MAX_RETRIES", 3)
}

// WithConnectTimeout returns a copy with the connect timeout replaced.
func (r *Redshift) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *r
	clone.ConnectTimeout = seconds
	return &clone
}
