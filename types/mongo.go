package types

import (
	"github.com/shirouto/dsprobe"
)

const (
	MONGODB_DSN      = "mongodb://localhost:27017"
	MONGODB_DATABASE = "admin"

	MONGODB_SERVER_SELECTION_TIMEOUT = 30 // in seconds
)

type IMongoDB interface {
	IEngineConfig
	GetDatabase() string
	GetServerSelectionTimeout() int // in seconds
}

type MongoDB struct {
	Dsn            string
	Database       string
	ConnectTimeout int // in seconds
}

func (m *MongoDB) EngineDialect() Dialect {
	return DialectMongoDB
}

func (m *MongoDB) GetDsn() string {
	if m.Dsn == "" {
		dsprobe.LogW("Configs MongoDB: MONGODB_DSN is not set, using default configuration.")
		return MONGODB_DSN
	}
	return m.Dsn
}

func (m *MongoDB) GetDatabase() string {
	if m.Database == "" {
		dsprobe.LogW("Configs MongoDB: MONGODB_DATABASE is not set, using default configuration.")
		return MONGODB_DATABASE
	}
	return m.Database
}

// GetConnectTimeout returns the connect timeout in seconds, applied through
// the driver's client options.
func (m *MongoDB) GetConnectTimeout() int {
	return connectTimeoutSeconds(m.ConnectTimeout)
}

// GetServerSelectionTimeout returns the server selection timeout in seconds
func (m *MongoDB) GetServerSelectionTimeout() int {
	return getEnvInt("MONGODB_SERVER_SELECTION_TIMEOUT", MONGODB_SERVER_SELECTION_TIMEOUT)
}

// WithConnectTimeout returns a copy with the connect timeout replaced.
func (m *MongoDB) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *m
	clone.ConnectTimeout = seconds
	return &clone
}
