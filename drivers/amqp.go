package drivers

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/shirouto/dsprobe/types"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpProvider struct {
	name   string
	conn   *amqp.Connection
	Config types.IAMQP
}

func (a *amqpProvider) Name() string {
	return a.name
}

func (a *amqpProvider) Dialect() types.Dialect {
	return types.DialectAMQP
}

// Open dials the broker with a bounded dialer, so a dead host fails within
// the connect timeout instead of the TCP stack's default.
func (a *amqpProvider) Open(ctx context.Context) error {
	timeout := time.Duration(a.Config.GetConnectTimeout()) * time.Second

	conn, err := amqp.DialConfig(a.Config.GetDsn(), amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: timeout}
			return d.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp: dial: %w", err)
	}

	a.conn = conn
	return nil
}

// Validate opens and closes a channel; a broker that completed the AMQP
// handshake but cannot serve channels is not valid.
func (a *amqpProvider) Validate(ctx context.Context) error {
	if a.conn == nil {
		return fmt.Errorf("amqp: validate before open")
	}

	ch, err := a.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp: channel: %w", err)
	}
	return ch.Close()
}

func (a *amqpProvider) Close() error {
	if a.conn == nil || a.conn.IsClosed() {
		return nil
	}
	return a.conn.Close()
}
