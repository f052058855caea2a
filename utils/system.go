package utils

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	return fmt.Sprintf("Alloc = %v TotalAlloc = %v Sys = %v NumGC = %v",
		HumanSize(m.Alloc, true), HumanSize(m.TotalAlloc, true), HumanSize(m.Sys, true), m.NumGC)
}

// HumanSize formats a byte count in multiples of 1024 (KiB, MiB...) or 1000 (kB, MB...)
func HumanSize(size uint64, kibibytes bool) string {
	if kibibytes {
		return humanize.IBytes(size)
	}
	return humanize.Bytes(size)
}

// ParseSize accepts either convention, "8GiB", "500 MB", or a bare byte count.
// An empty string is zero.
func ParseSize(s string) (size uint64, err error) {
	if len(strings.TrimSpace(s)) == 0 {
		return
	}
	if size, err = humanize.ParseBytes(s); err != nil {
		err = fmt.Errorf("unable to parse size %q: %w", s, err)
	}
	return
}

// RoundHalfDown rounds to the nearest integer, with exact halves going toward zero
func RoundHalfDown(x float64) int {
	if x < 0 {
		return -RoundHalfDown(-x)
	}
	f := math.Floor(x)
	if x-f > 0.5 {
		return int(f) + 1
	}
	return int(f)
}
