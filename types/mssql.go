package types

import (
	"net"
	"net/url"
	"strconv"

	"github.com/shirouto/dsprobe"
)

const (
	MSSQL_DB_HOST     = "localhost"
	MSSQL_DB_PORT     = "1433"
	MSSQL_DB_USERNAME = "sa"
	MSSQL_DB_DATABASE = "master"
)

type IMSSQL interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetDatabase() string
	DebugMode() bool
	GetMaxRetries() int
}

type MSSQL struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Database       string
	ConnectTimeout int // in seconds
	Debug          bool
}

func (m *MSSQL) EngineDialect() Dialect {
	return DialectMSSQL
}

func (m *MSSQL) GetHost() string {
	if m.Host == "" {
		dsprobe.LogW("Configs MSSQL: DB_HOST is not set, using default configuration.")
		return MSSQL_DB_HOST
	}
	return m.Host
}

func (m *MSSQL) GetPort() string {
	if m.Port == "" {
		dsprobe.LogW("Configs MSSQL: DB_PORT is not set, using default configuration.")
		return MSSQL_DB_PORT
	}
	return m.Port
}

func (m *MSSQL) GetUsername() string {
	if m.Username == "" {
		dsprobe.LogW("Configs MSSQL: DB_USERNAME is not set, using default configuration.")
		return MSSQL_DB_USERNAME
	}
	return m.Username
}

func (m *MSSQL) GetPassword() string {
	return m.Password
}

func (m *MSSQL) GetDatabase() string {
	if m.Database == "" {
		dsprobe.LogW("Configs MSSQL: DB_DATABASE is not set, using default configuration.")
		return MSSQL_DB_DATABASE
	}
	return m.Database
}

func (m *MSSQL) DebugMode() bool {
	return m.Debug
}

// GetConnectTimeout returns the connect timeout in seconds, passed to the
// driver as the `dial timeout` URL parameter.
func (m *MSSQL) GetConnectTimeout() int {
	return connectTimeoutSeconds(m.ConnectTimeout)
}

// GetDsn builds the sqlserver URL form. url.Values handles the encoding of
// the space in "dial timeout", so the string is always well formed.
func (m *MSSQL) GetDsn() string {
	q := url.Values{}
	q.Set("database", m.GetDatabase())
	q.Set("dial timeout", strconv.Itoa(m.GetConnectTimeout()))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(m.GetUsername(), m.GetPassword()),
		Host:     net.JoinHostPort(m.GetHost(), m.GetPort()),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// GetMaxRetries returns the maximum number of retry attempts for connection
func (m *MSSQL) GetMaxRetries() int {
	return getEnvInt("MSSQL_MAX_RETRIES", 3)
}

// WithConnectTimeout returns a copy with the connect timeout replaced.
func (m *MSSQL) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *m
	clone.ConnectTimeout = seconds
	return &clone
}
