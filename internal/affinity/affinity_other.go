//go:build !linux

package affinity

func pinPlatform(cpuID int) error {
	return ErrUnsupported
}
