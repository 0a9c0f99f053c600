package scan

import (
	"fmt"

	"github.com/memscan/memscan/internal/arch"
	"github.com/memscan/memscan/internal/memreader"
	"github.com/memscan/memscan/internal/target"
)

// DisplayRow is one row of the "print" command's output: an address, the
// value recorded by the most recent scan, and a freshly re-read live value
// so the CLI can highlight rows where the two disagree.
type DisplayRow struct {
	Address uint64
	Stored  string
	Live    string
	Changed bool
}

// AddressSet is the core data structure of the scanner: a parallel pair of
// vectors (addrs, values) rather than a vector of (addr, value) pairs, so
// that a full-set Scan over addresses needs no padding between fields and
// can stream through both slices cache-linearly, matching spec.md §4.5's
// design note on memory layout.
type AddressSet[T arch.Value[T]] struct {
	desc    arch.Descriptor[T]
	reader  *memreader.Reader
	addrs   []uint64
	values  []T
	started bool
}

// NewAddressSet constructs an empty, unscanned address set for element type
// T, reading through reader.
func NewAddressSet[T arch.Value[T]](desc arch.Descriptor[T], reader *memreader.Reader) *AddressSet[T] {
	return &AddressSet[T]{desc: desc, reader: reader}
}

// Scan runs one scan step: an initial scan over maps if nothing has been
// scanned yet, or a refinement scan over the currently tracked addresses
// otherwise (spec.md §4.5). It returns a channel of progress reports that
// the caller should drain to completion; the channel is closed when the scan
// finishes. Validation errors (a refinement-only predicate used before any
// scan has run) are returned synchronously instead of through the channel.
func (s *AddressSet[T]) Scan(pred Predicate[T], maps []target.MemoryMap, progressBatch int) (<-chan Progress, error) {
	if pred.Kind.requiresPriorScan() && !s.started {
		return nil, fmt.Errorf("predicate %q requires a previous scan", pred.Kind)
	}
	if progressBatch <= 0 {
		progressBatch = 1000
	}

	ch := make(chan Progress)
	go func() {
		defer close(ch)
		if !s.started {
			s.scanInitial(pred, maps, progressBatch, ch)
		} else {
			s.scanRefine(pred, progressBatch, ch)
		}
		s.started = true
	}()
	return ch, nil
}

func (s *AddressSet[T]) scanInitial(pred Predicate[T], maps []target.MemoryMap, progressBatch int, ch chan<- Progress) {
	total := catalogueTotal(maps, s.desc.Size)
	var newAddrs []uint64
	var newValues []T
	var scanned uint64

	for _, m := range maps {
		count := regionCandidateCount(m, s.desc.Size)
		if count == 0 {
			continue
		}
		if !m.Perms.Read {
			// Non-readable regions are never read, but still advance
			// scanned by their full candidate count so progress stays
			// monotone through them (spec.md §4.5 step 4).
			scanned += count
			ch <- Progress{Scanned: scanned, Total: total}
			continue
		}
		regionAddresses(m, s.desc.Size)(func(addr uint64) bool {
			scanned++
			if pred.Kind == Unknown {
				var zero T
				newAddrs = append(newAddrs, addr)
				newValues = append(newValues, zero)
			} else {
				v, ok := memreader.ReadValue(s.reader, addr, s.desc)
				if ok && pred.eval(v, v, false) {
					newAddrs = append(newAddrs, addr)
					newValues = append(newValues, v)
				}
			}
			if scanned%uint64(progressBatch) == 0 {
				ch <- Progress{Scanned: scanned, Total: total}
			}
			return true
		})
		ch <- Progress{Scanned: scanned, Total: total}
	}
	ch <- Progress{Scanned: scanned, Total: total}

	s.addrs = newAddrs
	s.values = newValues
}

func (s *AddressSet[T]) scanRefine(pred Predicate[T], progressBatch int, ch chan<- Progress) {
	total := uint64(len(s.addrs))
	var newAddrs []uint64
	var newValues []T
	var scanned uint64

	// Only Changed/NotChanged/Refresh need a live read during refinement
	// (spec.md §4.4): they compare the stored value against what the
	// target holds right now. Every other predicate, including plain
	// comparisons, is evaluated against the already-stored value alone
	// (spec.md §4.5 step 2: "feed (old_vals, old_addrs) through the
	// predicate evaluator").
	needsLiveRead := pred.Kind == Changed || pred.Kind == NotChanged || pred.Kind == Refresh

	for i, addr := range s.addrs {
		stored := s.values[i]
		fresh := stored
		if needsLiveRead {
			v, ok := memreader.ReadValue(s.reader, addr, s.desc)
			if !ok {
				scanned++
				if scanned%uint64(progressBatch) == 0 {
					ch <- Progress{Scanned: scanned, Total: total}
				}
				continue
			}
			fresh = v
		}

		if pred.eval(stored, fresh, true) {
			newAddrs = append(newAddrs, addr)
			switch pred.Kind {
			case Changed, Refresh:
				// Store the freshly-read value so the next comparison
				// has a correct baseline (spec.md §4.5 step 4).
				newValues = append(newValues, fresh)
			default:
				// Comparison predicates, NotChanged, and Unknown all
				// keep the value used during evaluation: the previous
				// reading.
				newValues = append(newValues, stored)
			}
		}

		scanned++
		if scanned%uint64(progressBatch) == 0 {
			ch <- Progress{Scanned: scanned, Total: total}
		}
	}
	ch <- Progress{Scanned: scanned, Total: total}

	s.addrs = newAddrs
	s.values = newValues
}

func (s *AddressSet[T]) Len() int     { return len(s.addrs) }
func (s *AddressSet[T]) IsEmpty() bool { return len(s.addrs) == 0 }

// Addresses returns the addresses currently tracked, in scan order.
func (s *AddressSet[T]) Addresses() []uint64 {
	out := make([]uint64, len(s.addrs))
	copy(out, s.addrs)
	return out
}

// ValueStrings renders every tracked address's stored value using format.
func (s *AddressSet[T]) ValueStrings(format func(T) string) []string {
	out := make([]string, len(s.values))
	for i, v := range s.values {
		out[i] = format(v)
	}
	return out
}

// DisplayRows re-reads every tracked address live and pairs it with its
// stored value, for the "print" command.
func (s *AddressSet[T]) DisplayRows(format func(T) string) []DisplayRow {
	rows := make([]DisplayRow, len(s.addrs))
	for i, addr := range s.addrs {
		stored := s.values[i]
		live, ok := memreader.ReadValue(s.reader, addr, s.desc)
		row := DisplayRow{Address: addr, Stored: format(stored)}
		if ok {
			row.Live = format(live)
			row.Changed = live != stored
		} else {
			row.Live = "?"
		}
		rows[i] = row
	}
	return rows
}

// Write parses literal as T and writes it to the address at index, updating
// the stored value on success.
func (s *AddressSet[T]) Write(index int, literal string) error {
	if index < 0 || index >= len(s.addrs) {
		return fmt.Errorf("index %d out of range [0,%d)", index, len(s.addrs))
	}
	v, err := s.desc.Parse(literal)
	if err != nil {
		return fmt.Errorf("parsing %q as %s: %w", literal, s.desc.Name, err)
	}
	if !memreader.WriteValue(s.reader, s.addrs[index], s.desc, v) {
		return fmt.Errorf("writing to address %#x failed", s.addrs[index])
	}
	s.values[index] = v
	return nil
}

// ValueAt returns the stored value at index, for freeze's periodic rewrite.
func (s *AddressSet[T]) ValueAt(index int) (uint64, T, error) {
	if index < 0 || index >= len(s.addrs) {
		var zero T
		return 0, zero, fmt.Errorf("index %d out of range [0,%d)", index, len(s.addrs))
	}
	return s.addrs[index], s.values[index], nil
}
