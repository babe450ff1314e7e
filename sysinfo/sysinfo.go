// Package sysinfo reports host properties used to size model searches.
package sysinfo

import (
	"context"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/mem"
)

// FallbackMemoryGB is the budget assumed when host memory cannot be read.
const FallbackMemoryGB = 8.0

const bytesPerGB = 1 << 30

// TotalMemoryGB returns total physical memory in GiB, rounded to one decimal.
func TotalMemoryGB(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading host memory: %w", err)
	}
	if vm.Total == 0 {
		return 0, fmt.Errorf("reading host memory: total reported as zero")
	}
	return math.Round(float64(vm.Total)/bytesPerGB*10) / 10, nil
}

// MemoryBudgetGB returns TotalMemoryGB, or FallbackMemoryGB when it fails.
func MemoryBudgetGB(ctx context.Context) float64 {
	gb, err := TotalMemoryGB(ctx)
	if err != nil {
		return FallbackMemoryGB
	}
	return gb
}
