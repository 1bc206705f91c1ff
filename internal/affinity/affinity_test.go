package affinity

import (
	"errors"
	"runtime"
	"testing"
)

func TestPin(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		// The goroutine exits locked, so the pinned thread is discarded.
		runtime.LockOSThread()
		done <- Pin(0)
	}()
	err := <-done
	if errors.Is(err, ErrUnsupported) {
		t.Skipf("affinity unsupported on %s", runtime.GOOS)
	}
	if err != nil {
		// Containers may restrict the allowed CPU set.
		t.Skipf("Pin(0): %v", err)
	}
}

func TestPinInvalidCPU(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux only")
	}
	done := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		// Out of CPUSet range, so the mask is empty and the kernel rejects it.
		done <- Pin(1 << 16)
	}()
	if err := <-done; err == nil {
		t.Error("Pin(65536) succeeded, want error")
	}
}
