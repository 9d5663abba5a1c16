package utils

import (
	"fmt"
	"net"
)

// CheckListenAddr reports whether addr can be bound right now. The listener
// is closed again before returning.
func CheckListenAddr(addr string) error {
	Verbose("Checking if %s is available", addr)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}
	return listener.Close()
}
