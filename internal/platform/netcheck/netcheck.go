// Package netcheck exposes a synchronous "is the host online" probe.
// Callers use it as a pre-flight check so an offline host fails fast
// instead of burning retries on a dead network
package netcheck

import "net"

// interfaces is a seam for tests
var interfaces = net.Interfaces

// Online reports whether at least one non-loopback interface is up.
// It reads local interface state only; no packets are sent
func Online() bool {
	ifs, err := interfaces()
	if err != nil {
		// cannot inspect interfaces; assume online and let the transport decide
		return true
	}
	for _, it := range ifs {
		if it.Flags&net.FlagLoopback != 0 {
			continue
		}
		if it.Flags&net.FlagUp != 0 && it.Flags&net.FlagRunning != 0 {
			return true
		}
	}
	return false
}
