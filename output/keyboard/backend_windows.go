//go:build windows

package keyboard

import "errors"

// systemEventBackend stands in for the OS's synthetic-input facility
// (SendInput on Windows). Wiring the actual syscall is outside this
// package's scope; this stub accepts every batch without injecting
// anything, so Output always has a backend to target.
type systemEventBackend struct{}

// NewSystemEventBackend returns the direct-system-call backend.
func NewSystemEventBackend() Backend { return systemEventBackend{} }

func (systemEventBackend) SendEvents(down, up []uint16) error { return nil }
func (systemEventBackend) Close()                             {}

// interceptionBackend stands in for kernel-level scancode injection via an
// interception driver; no driver is loaded here and SendEvents injects
// nothing. NewInterceptionBackend returns an error, and the caller falls
// back to NewSystemEventBackend, matching the "direct scancode
// injection... falls back to system events" policy.
type interceptionBackend struct{}

// NewInterceptionBackend always returns an error: the interception
// facility is not loaded.
func NewInterceptionBackend() (Backend, error) {
	return nil, errors.New("keyboard: interception driver not loaded")
}

func (interceptionBackend) SendEvents(down, up []uint16) error { return nil }
func (interceptionBackend) Close()                             {}
