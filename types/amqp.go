package types

import (
	"fmt"
	"net/url"

	"github.com/shirouto/dsprobe"
)

const (
	AMQP_HOST     = "localhost"
	AMQP_PORT     = "5672"
	AMQP_USERNAME = "guest"
	AMQP_PASSWORD = "guest"
	AMQP_VHOST    = "/"
)

type IAMQP interface {
	IEngineConfig
	Address
	GetUsername() string
	GetPassword() string
	GetVHost() string
}

type AMQP struct {
	Host           string
	Port           string
	Username       string
	Password       string
	VHost          string
	ConnectTimeout int // in seconds
}

func (a *AMQP) EngineDialect() Dialect {
	return DialectAMQP
}

func (a *AMQP) GetHost() string {
	if a.Host == "" {
		dsprobe.LogW("Configs AMQP: AMQP_HOST is not set, using default configuration.")
		return AMQP_HOST
	}
	return a.Host
}

func (a *AMQP) GetPort() string {
	if a.Port == "" {
		dsprobe.LogW("Configs AMQP: AMQP_PORT is not set, using default configuration.")
		return AMQP_PORT
	}
	return a.Port
}

func (a *AMQP) GetUsername() string {
	if a.Username == "" {
		return AMQP_USERNAME
	}
	return a.Username
}

func (a *AMQP) GetPassword() string {
	if a.Password == "" {
		return AMQP_PASSWORD
	}
	return a.Password
}

func (a *AMQP) GetVHost() string {
	if a.VHost == "" {
		return AMQP_VHOST
	}
	return a.VHost
}

func (a *AMQP) GetDsn() string {
	// The default vhost "/" is addressed by an empty path; anything else
	// must be escaped into the path segment.
	vhost := ""
	if v := a.GetVHost(); v != AMQP_VHOST {
		vhost = "/" + url.PathEscape(v)
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s%s",
		url.QueryEscape(a.GetUsername()),
		url.QueryEscape(a.GetPassword()),
		a.GetHost(),
		a.GetPort(),
		vhost,
	)
}

// GetConnectTimeout returns the dial timeout in seconds.
func (a *AMQP) GetConnectTimeout() int {
	return connectTimeoutSeconds(a.ConnectTimeout)
}

// WithConnectTimeout returns a copy with the dial timeout replaced.
func (a *AMQP) WithConnectTimeout(seconds int) IEngineConfig {
	clone := *a
	clone.ConnectTimeout = seconds
	return &clone
}
