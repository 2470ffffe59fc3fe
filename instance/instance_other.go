//go:build !windows

package instance

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"syscall"
)

const (
	portRangeStart = 49500
	portRangeSize  = 50
)

// acquire binds a loopback port derived from the coordination name.
// Binding succeeds for exactly one process at a time and the OS releases
// the port when the holder dies, which matches the named-mutex semantics
// used on Windows.
func acquire(name string) (Role, func(), error) {
	addr := fmt.Sprintf("127.0.0.1:%d", portFor(name))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return RoleSecondary, func() {}, nil
		}
		return RoleSecondary, nil, fmt.Errorf("%w: bind %s: %v", ErrCoordinationUnavailable, addr, err)
	}
	return RolePrimary, func() { _ = lis.Close() }, nil
}

func portFor(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return portRangeStart + int(h.Sum32()%portRangeSize)
}
