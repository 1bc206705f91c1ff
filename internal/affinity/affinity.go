// Package affinity pins the calling OS thread to one logical CPU.
// Platform-specific implementations live in affinity_linux.go and
// affinity_other.go.
package affinity

import "errors"

// ErrUnsupported is returned on platforms without thread affinity support.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// Pin binds the current OS thread to cpuID. The caller must already hold
// the thread with runtime.LockOSThread, otherwise the goroutine may move.
func Pin(cpuID int) error {
	return pinPlatform(cpuID)
}
