package utils

import (
	"fmt"
	"net"
	"time"
)

// PingHostPort checks that a TCP listener is reachable at host:port.
func PingHostPort(host, port string, timeout time.Duration) error {
	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingDatabase checks if the database host is reachable before the slower
// driver handshake is attempted.
func PingDatabase(host, port string) error {
	return PingHostPort(host, port, 1500*time.Millisecond)
}
