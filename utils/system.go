package utils

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/exp/constraints"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// IsFinite is false for NaN and ±Inf
func IsFinite[T constraints.Float](f T) bool {
	ff := float64(f)
	return !math.IsNaN(ff) && !math.IsInf(ff, 0)
}

// AllFinite returns the index of the first non-finite entry, or -1
func AllFinite[T constraints.Float](v []T) (ok bool, first int) {
	for i, f := range v {
		if !IsFinite(f) {
			return false, i
		}
	}
	return true, -1
}
