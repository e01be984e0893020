package types

import (
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shirouto/dsprobe"
)

const (
	MYSQL_DB_HOST            = "localhost"
	MYSQL_DB_PORT            = "3306"
	MYSQL_DB_USERNAME        = "root"
	MYSQL_DB_PASSWORD        = ""
	MYSQL_DB_DATABASE        = "mysql"
	MYSQL_DB_CHARSET         = "utf8"
	MYSQL_DB_CONNECT_TIMEOUT = DEFAULT_CONNECT_TIMEOUT
)

type IMySQL interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetDatabase() string
	GetCharset() string
	DebugMode() bool
	// Connection pool configuration
	GetMaxIdleConns() int
	GetMaxOpenConns() int
	GetConnMaxLifetime() int // in seconds
	GetMaxRetries() int
}

type MySQL struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Database       string
	Charset        string
	ConnectTimeout int // in seconds
	Debug          bool
}

func (m *MySQL) EngineDialect() Dialect {
	return DialectMySQL
}

func (m *MySQL) GetHost() string {
	if m.Host == "" {
		dsprobe.LogW("Configs MySQL: DB_HOST is not set, using default configuration.")
		return MYSQL_DB_HOST
	}
	return m.Host
}

func (m *MySQL) GetPort() string {
	if m.Port == "" {
		dsprobe.LogW("Configs MySQL: DB_PORT is not set, using default configuration.")
		return MYSQL_DB_PORT
	}
	return m.Port
}

func (m *MySQL) GetUsername() string {
	if m.Username == "" {
		dsprobe.LogW("Configs MySQL: DB_USERNAME is not set, using default configuration.")
		return MYSQL_DB_USERNAME
	}
	return m.Username
}

func (m *MySQL) GetPassword() string {
	return m.Password
}

func (m *MySQL) GetDatabase() string {
	if m.Database == "" {
		dsprobe.LogW("Configs MySQL: DB_DATABASE is not set, using default configuration.")
		return MYSQL_DB_DATABASE
	}
	return m.Database
}

func (m *MySQL) GetCharset() string {
	if m.Charset == "" {
		return MYSQL_DB_CHARSET
	}
	return m.Charset
}

func (m *MySQL) DebugMode() bool {
	return m.Debug
}

// GetConnectTimeout returns the connect timeout in seconds. The driver's
// `timeout` DSN parameter bounds the whole connection attempt.
func (m *MySQL) GetConnectTimeout() int {
	return connectTimeoutSeconds(m.ConnectTimeout)
}

// GetDsn formats the data source name through the driver's own Config type,
// so the timeout parameter always matches what go-sql-driver expects.
func (m *MySQL) GetDsn() string {
	cfg := mysql.NewConfig()
	cfg.User = m.GetUsername()
	cfg.Passwd = m.GetPassword()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(m.GetHost(), m.GetPort())
	cfg.DBName = m.GetDatabase()
	cfg.ParseTime = true
	cfg.Timeout = time.Duration(m.GetConnectTimeout()) * time.Second
	cfg.Params = map[string]string{
		"charset": m.GetCharset(),
	}
	return cfg.FormatDSN()
}

// GetMaxIdleConns returns the maximum number of connections in the idle connection pool
func (m *MySQL) GetMaxIdleConns() int {
	return getEnvInt("MYSQL_MAX_IDLE_CONNS", 10)
}

// GetMaxOpenConns returns the maximum number of open connections to the database
func (m *MySQL) GetMaxOpenConns() int {
	return getEnvInt("MYSQL_MAX_OPEN_CONNS", 100)
}

// GetConnMaxLifetime returns the maximum amount of time a connection may be reused (in seconds)
func (m *MySQL) GetConnMaxLifetime() int {
	return getEnvInt("MYSQL_CONN_MAX_LIFETIME", 180)
}

// GetMaxRetries returns the maximum number of retry attempts for connection
func (m *MySQL) GetMaxRetries() int {
	return getEnvInt("MYSQL_MAX_RETRIES", 3)
}

// WithConnectTimeout returns a copy with the connect timeout replaced.
func (m *MySQL) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *m
	clone.ConnectTimeout = seconds
	return &clone
}
