package montecarlo

// Partition decides what happens to the T mod W trials that do not divide
// evenly between workers.
type Partition int

const (
	// PartitionTruncate gives every worker floor(T/W) trials and drops the
	// remainder.
	PartitionTruncate Partition = iota
	// PartitionSpread gives the first T mod W workers one extra trial, so
	// exactly T trials are sampled.
	PartitionSpread
)

func (p Partition) String() string {
	switch p {
	case PartitionTruncate:
		return "truncate"
	case PartitionSpread:
		return "spread"
	}
	return "unknown"
}

// Split returns the number of trials assigned to each of workers workers.
// Both arguments must be positive.
func Split(total, workers int64, p Partition) []int64 {
	per := total / workers
	rem := total % workers

	shares := make([]int64, workers)
	for i := range shares {
		shares[i] = per
		if p == PartitionSpread && int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}
