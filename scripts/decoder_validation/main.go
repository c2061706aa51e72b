// Validate decoder optimization - measures allocation behavior on the hot
// decode path.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/rv32sim/insts"
)

func main() {
	decoder := insts.NewDecoder()

	// One word per major format
	words := []uint32{
		0x02A00513, // addi a0, zero, 42
		0x002081B3, // add gp, ra, sp
		0x00512423, // sw t0, 8(sp)
		0xFE208EE3, // beq ra, sp, -4
	}

	// Warm up
	var inst insts.Instruction
	for i := 0; i < 1000; i++ {
		decoder.DecodeInto(words[0], &inst)
	}

	// Measure allocations across a large batch of decodes
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		decoder.DecodeInto(words[0], &inst)
		decoder.DecodeInto(words[1], &inst)
		decoder.DecodeInto(words[2], &inst)
		decoder.DecodeInto(words[3], &inst)
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * 4
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Allocation Validation Results:\n")
	fmt.Printf("========================================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))

	if allocations == 0 {
		fmt.Printf("\n✅ SUCCESS: Zero allocations detected! Optimization effective.\n")
	} else if float64(allocations)/float64(totalDecodes) < 0.1 {
		fmt.Printf("\n✅ GOOD: Low allocation rate (< 0.1 per decode)\n")
	} else {
		fmt.Printf("\n⚠️  WARNING: High allocation rate detected\n")
	}
}
