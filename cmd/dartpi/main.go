// Command dartpi estimates π by Monte Carlo dart throwing and times each
// memory and vectorization strategy.
//
// Usage:
//
//	dartpi [trials] [method] [flags]
//	dartpi arch
//
// method is one of Sequential, Heap, Pool, SIMD or All (the default).
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	log := newLogger(os.Stderr, level)

	if err := newRootCmd(os.Stdout, log, level).Execute(); err != nil {
		log.Error("dartpi failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}
