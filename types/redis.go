package types

import (
	"fmt"

	"github.com/shirouto/dsprobe"
)

const (
	REDIS_HOST     = "localhost"
	REDIS_PORT     = "6379"
	REDIS_PASSWORD = ""
	REDIS_DATABASE = 0

	REDIS_MAX_RETRIES  = 3
	REDIS_READ_TIMEOUT = 3 // Fast read timeout
)

type IRedis interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetDatabase() int
	GetMaxRetries() int
	GetReadTimeout() int // in seconds
}

type Redis struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Database       int
	ConnectTimeout int // in seconds
}

func (r *Redis) EngineDialect() Dialect {
	return DialectRedis
}

func (r *Redis) GetHost() string {
	if r.Host == "" {
		dsprobe.LogW("Configs Redis: REDIS_HOST is not set, using default configuration.")
		return REDIS_HOST
	}
	return r.Host
}

func (r *Redis) GetPort() string {
	if r.Port == "" {
		dsprobe.LogW("Configs Redis: REDIS_PORT is not set, using default configuration.")
		return REDIS_PORT
	}
	return r.Port
}

func (r *Redis) GetUsername() string {
	return r.Username
}

func (r *Redis) GetPassword() string {
	return r.Password
}

func (r *Redis) GetDatabase() int {
	if r.Database < 0 {
		dsprobe.LogW("Configs Redis: REDIS_DATABASE is invalid, using default configuration.")
		return REDIS_DATABASE
	}
	return r.Database
}

func (r *Redis) GetDsn() string {
	return fmt.Sprintf("%s:%s",
		r.GetHost(),
		r.GetPort(),
	)
}

// GetConnectTimeout returns the dial timeout in seconds.
func (r *Redis) GetConnectTimeout() int {
	return connectTimeoutSeconds(r.ConnectTimeout)
}

// GetMaxRetries returns the maximum number of retries before giving up
func (r *Redis) GetMaxRetries() int {
	return getEnvInt("REDIS_MAX_RETRIES", REDIS_MAX_RETRIES)
}

// GetReadTimeout returns read timeout in seconds
func (r *Redis) GetReadTimeout() int {
	return getEnvInt("REDIS_READ_TIMEOUT", REDIS_READ_TIMEOUT)
}

// WithConnectTimeout returns a copy with the dial timeout replaced.
func (r *Redis) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *r
	clone.ConnectTimeout = seconds
	return &clone
}
