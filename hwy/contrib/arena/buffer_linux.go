//go:build linux

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mapBuffer returns an anonymous private mapping of capacity bytes.
// mmap hands back page-aligned memory, which satisfies BufferAlign.
func mapBuffer(capacity int) ([]byte, func() error, error) {
	buf, err := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("arena: mmap %d bytes: %w", capacity, err)
	}
	return buf, func() error { return unix.Munmap(buf) }, nil
}
