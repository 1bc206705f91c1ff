//go:build !linux

package arena

import "unsafe"

// mapBuffer over-allocates a Go byte slice by BufferAlign and re-slices it
// to start on the first aligned address.
func mapBuffer(capacity int) ([]byte, func() error, error) {
	raw := make([]byte, capacity+BufferAlign)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	pad := int(alignUp(addr, BufferAlign) - addr)
	return raw[pad : pad+capacity : pad+capacity], func() error { return nil }, nil
}
