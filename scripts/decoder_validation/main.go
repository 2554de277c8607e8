// Validate decoder allocation behavior - decode and normalization run on
// value records and should not allocate per instruction.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/lift"
)

// A mix of the formats a listing decodes most: integer ALU, memory,
// branches, MMI and VU macro mode.
var words = []uint32{
	0x24020005, // addiu $v0, $zero, 5
	0x8fa40010, // lw $a0, 0x10($sp)
	0x10850003, // beq $a0, $a1, ...
	0x7c430000, // lq $v1, 0($v0)
	0x708514a9, // por $v0, $a0, $a1
	0x4be31041, // vaddy.xyzw $vf1, $vf2, $vf3y
	0x03e00008, // jr $ra
	0x00000000, // nop
}

func main() {
	decoder := insts.NewDecoder()

	// Warm up
	for i := 0; i < 1000; i++ {
		for n, w := range words {
			decoder.Decode(w, 0x1000+uint32(n)*insts.Size)
		}
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		for n, w := range words {
			insts.Normalize(decoder.Decode(w, 0x1000+uint32(n)*insts.Size))
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * len(words)
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Allocation Validation Results:\n")
	fmt.Printf("======================================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))

	if allocations == 0 {
		fmt.Printf("\nSUCCESS: zero allocations in decode.\n")
	} else if float64(allocations)/float64(totalDecodes) < 0.1 {
		fmt.Printf("\nGOOD: low allocation rate (< 0.1 per decode)\n")
	} else {
		fmt.Printf("\nWARNING: high allocation rate detected\n")
	}

	// Lifting builds IR trees and allocates by nature; report its rate
	// for comparison.
	lifter := lift.NewLifter()
	runtime.ReadMemStats(&m1)
	start = time.Now()
	for i := 0; i < iterations/10; i++ {
		for n, w := range words {
			addr := 0x1000 + uint32(n)*insts.Size
			lifter.Lift(decoder.Decode(w, addr), addr, nil)
		}
	}
	elapsed = time.Since(start)
	runtime.ReadMemStats(&m2)

	totalLifts := iterations / 10 * len(words)
	fmt.Printf("\nLifts per second: %.0f\n", float64(totalLifts)/elapsed.Seconds())
	fmt.Printf("Allocations per lift: %.1f\n", float64(m2.Mallocs-m1.Mallocs)/float64(totalLifts))
}
