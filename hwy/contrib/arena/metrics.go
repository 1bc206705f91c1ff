package arena

// Metrics is a snapshot of arena usage.
type Metrics struct {
	Capacity  int    // buffer size in bytes
	InUse     int    // bytes consumed since the last Reset
	HighWater int    // largest InUse ever observed
	Allocs    uint64 // successful Allocate calls
	Resets    uint64 // Reset calls
	Failures  uint64 // Allocate calls rejected with ErrOutOfSpace
}

// Utilization returns InUse/Capacity, or 0 for a released arena.
func (m Metrics) Utilization() float64 {
	if m.Capacity == 0 {
		return 0
	}
	return float64(m.InUse) / float64(m.Capacity)
}

// Metrics returns a snapshot of the arena's counters.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		Capacity:  a.Capacity(),
		InUse:     a.Offset(),
		HighWater: int(a.highWater),
		Allocs:    a.allocs,
		Resets:    a.resets,
		Failures:  a.failures,
	}
}
