// Package transport holds what the long-running parts of dashkit share: the
// Server contract app.Application drives and listen address checks.
package transport

import (
	"context"
	"net"
	"strconv"
	"strings"
)

// Port bounds for listen addresses; port 0 lets the kernel pick one.
const (
	MinPort = 0
	MaxPort = 65535
)

// Server is a blocking component with graceful shutdown, such as the HTTP
// endpoint or the chat poller
type Server interface {
	Run() error
	Shutdown(context.Context) error
}

// ValidateAddress accepts "host:port" and ":port" listen addresses
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if host != "" && net.ParseIP(host) == nil && !validHostname(host) {
		return false
	}

	p, err := strconv.Atoi(port)
	return err == nil && p >= MinPort && p <= MaxPort
}

func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	for label := range strings.SplitSeq(host, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			default:
				return false
			}
		}
	}
	return true
}
