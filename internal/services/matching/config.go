package matching

import "runtime"

// Config holds the acceptance thresholds of the matcher and linker.
type Config struct {
	// MatchThreshold is the minimum Ratio for the primary acceptance stage.
	MatchThreshold float64
	// LinkThreshold is the minimum PartialRatio for attaching an accountant.
	LinkThreshold float64
	// PrefixWords is how many leading words must agree positionally.
	PrefixWords int
	// Workers partitions input rows across goroutines. 1 runs synchronously.
	Workers int
}

// DefaultConfig is the policy used for payroll reconciliation.
var DefaultConfig = Config{
	MatchThreshold: 85,
	LinkThreshold:  80,
	PrefixWords:    3,
	Workers:        runtime.NumCPU(),
}
