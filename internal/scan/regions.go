package scan

import "github.com/memscan/memscan/internal/target"

// regionAddresses is a pull-based (range-over-func) iterator over every
// size-aligned address fully contained in region m, irrespective of
// permissions: callers decide whether a region is worth reading before
// pulling from this. It never materializes the full address list: the scan
// engine pulls one address at a time, matching spec.md §4.5's requirement
// that an initial scan not hold the whole virtual address space in memory
// at once.
func regionAddresses(m target.MemoryMap, size int) func(yield func(addr uint64) bool) {
	return func(yield func(addr uint64) bool) {
		step := uint64(size)
		start := alignUp(m.AddrStart, step)
		for addr := start; addr+step <= m.AddrEnd; addr += step {
			if !yield(addr) {
				return
			}
		}
	}
}

func alignUp(addr, align uint64) uint64 {
	if align <= 1 {
		return addr
	}
	rem := addr % align
	if rem == 0 {
		return addr
	}
	return addr + (align - rem)
}

// regionCandidateCount returns the number of size-aligned addresses fully
// contained in region m, regardless of whether m is readable: spec.md §4.5
// step 1 sums candidate counts over every region, readable or not, so that
// progress stays monotone as the scan walks through skipped regions.
func regionCandidateCount(m target.MemoryMap, size int) uint64 {
	step := uint64(size)
	start := alignUp(m.AddrStart, step)
	if start+step > m.AddrEnd {
		return 0
	}
	return (m.AddrEnd - start) / step
}

// catalogueTotal sums regionCandidateCount over every region in maps.
func catalogueTotal(maps []target.MemoryMap, size int) uint64 {
	var total uint64
	for _, m := range maps {
		total += regionCandidateCount(m, size)
	}
	return total
}
