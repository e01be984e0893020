package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/shirouto/dsprobe/types"
)

// CheckReachable dials the target's host and port with a bounded dialer.
// It separates "host unreachable" from driver-level failures such as bad
// credentials: if the raw dial fails, no connect timeout tuning will help.
func CheckReachable(ctx context.Context, addr types.Address, timeout time.Duration) error {
	hostPort := net.JoinHostPort(addr.GetHost(), addr.GetPort())

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", hostPort)
	if err != nil {
		return fmt.Errorf("tcp %s: %w", hostPort, err)
	}
	return conn.Close()
}
