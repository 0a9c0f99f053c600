package scan

import (
	"testing"

	"github.com/memscan/memscan/internal/arch"
	"github.com/memscan/memscan/internal/target"
)

// Invariant 3: every address regionAddresses yields is aligned to the
// element size and fully contained in the region it came from, whether or
// not that region is readable: alignment and containment are properties of
// the address space layout, independent of permissions.
func TestInvariantCandidatesAreAlignedAndContained(t *testing.T) {
	maps := []target.MemoryMap{
		{AddrStart: 0x1003, AddrEnd: 0x1020, Perms: target.Permissions{Read: true}},
		{AddrStart: 0x2000, AddrEnd: 0x2000, Perms: target.Permissions{Read: true}}, // empty
		{AddrStart: 0x3000, AddrEnd: 0x3010, Perms: target.Permissions{Read: false}},
	}
	const size = 4
	var got []uint64
	for _, m := range maps {
		regionAddresses(m, size)(func(addr uint64) bool {
			got = append(got, addr)
			return true
		})
	}
	if len(got) == 0 {
		t.Fatal("expected at least one candidate address")
	}
	for _, addr := range got {
		if addr%size != 0 {
			t.Errorf("address %#x is not aligned to %d", addr, size)
		}
		contained := false
		for _, m := range maps {
			if addr >= m.AddrStart && addr+size <= m.AddrEnd {
				contained = true
				break
			}
		}
		if !contained {
			t.Errorf("address %#x is not contained in any region", addr)
		}
	}
}

// spec.md §4.5 step 1: total sums candidate counts over every region,
// readable or not, so progress stays monotone through skipped regions.
func TestCatalogueTotalIncludesNonReadableRegions(t *testing.T) {
	maps := []target.MemoryMap{
		{AddrStart: 0x1000, AddrEnd: 0x1020, Perms: target.Permissions{Read: true}},
		{AddrStart: 0x2000, AddrEnd: 0x2008, Perms: target.Permissions{Read: false}},
	}
	const size = 8
	readableCount := regionCandidateCount(maps[0], size)
	nonReadableCount := regionCandidateCount(maps[1], size)
	if nonReadableCount == 0 {
		t.Fatal("expected the non-readable region to contribute a nonzero candidate count")
	}
	if total := catalogueTotal(maps, size); total != readableCount+nonReadableCount {
		t.Errorf("catalogueTotal=%d, want %d", total, readableCount+nonReadableCount)
	}
}

func TestRegionCandidateCountMatchesIteratorCount(t *testing.T) {
	m := target.MemoryMap{AddrStart: 0x1000, AddrEnd: 0x1020, Perms: target.Permissions{Read: true}}
	const size = 8
	var count uint64
	regionAddresses(m, size)(func(uint64) bool {
		count++
		return true
	})
	if got := regionCandidateCount(m, size); got != count {
		t.Errorf("regionCandidateCount=%d, iterator yielded %d", got, count)
	}
}

// Invariant 4: refinement preserves the relative order of surviving
// addresses. seqA..seqD (10,20,30,40) are scanned with >= 10, then refined
// with >= 20 down to a proper subset; the surviving addresses must keep the
// same relative order they had before the refinement.
func TestInvariantRefinementPreservesOrder(t *testing.T) {
	r := openSelf(t)
	set := NewAddressSet(arch.DescU16, r)

	ch, err := set.Scan(Predicate[arch.U16]{Kind: GreaterEqual, Operand: 10}, selfMaps(), 2000)
	if err != nil {
		t.Fatal(err)
	}
	drain(t, ch)
	before := set.Addresses()

	ch2, err := set.Scan(Predicate[arch.U16]{Kind: GreaterEqual, Operand: 20}, selfMaps(), 2000)
	if err != nil {
		t.Fatal(err)
	}
	drain(t, ch2)
	after := set.Addresses()

	survivors := make(map[uint64]bool, len(after))
	for _, a := range after {
		survivors[a] = true
	}
	var filteredBefore []uint64
	for _, a := range before {
		if survivors[a] {
			filteredBefore = append(filteredBefore, a)
		}
	}
	if len(filteredBefore) != len(after) {
		t.Fatalf("survivor set mismatch: %v vs %v", filteredBefore, after)
	}
	for i := range after {
		if after[i] != filteredBefore[i] {
			t.Errorf("refinement did not preserve order: got %v, want %v", after, filteredBefore)
		}
	}
}
