// Package memctx ties together the attached target and the active scanner
// into the single piece of state the CLI operates on, mirroring spec.md
// §4.6's Context: at most one target, at most one scanner, and a type
// change or a re-attach always discards whatever scanner existed before.
package memctx

import (
	"fmt"

	"github.com/memscan/memscan/internal/memreader"
	"github.com/memscan/memscan/internal/scan"
	"github.com/memscan/memscan/internal/target"
)

// Context holds the currently attached target and its active scanner. A
// freshly constructed Context has neither.
type Context struct {
	ProcRoot string

	tgt    *target.Target
	reader *memreader.Reader
	addrs  scan.Scanner
	typ    string
}

// New returns an unattached Context rooted at procRoot (used for /proc
// lookups; "" means the real /proc).
func New(procRoot string) *Context {
	return &Context{ProcRoot: procRoot}
}

// Attach opens the given pid as the current target, replacing any previous
// target and discarding any previous scanner: a new target has nothing in
// common with the old one's addresses.
func (c *Context) Attach(pid int) error {
	tgt, err := target.Attach(pid, c.ProcRoot)
	if err != nil {
		return err
	}
	reader, err := memreader.Open(tgt.MemPath())
	if err != nil {
		return fmt.Errorf("attach pid %d: %w", pid, err)
	}
	if c.reader != nil {
		c.reader.Close()
	}
	c.tgt = tgt
	c.reader = reader
	c.addrs = nil
	if c.typ != "" {
		if s, err := scan.NewScanner(c.typ, c.reader); err == nil {
			c.addrs = s
		}
	}
	return nil
}

// ChangeType sets the active element type, discarding whatever scanner
// existed under the previous type (spec.md §3's "a type change always
// empties the address set" invariant, exercised end-to-end as S6).
func (c *Context) ChangeType(typeTag string) error {
	if c.reader == nil {
		return fmt.Errorf("change type: no target attached")
	}
	s, err := scan.NewScanner(typeTag, c.reader)
	if err != nil {
		return err
	}
	c.typ = typeTag
	c.addrs = s
	return nil
}

// GetType returns the currently selected element type tag, or "" if none has
// been chosen yet.
func (c *Context) GetType() string { return c.typ }

// Target returns the currently attached target, or nil.
func (c *Context) Target() *target.Target { return c.tgt }

// Scanner returns the active scanner, or nil if no type has been selected
// yet.
func (c *Context) Scanner() scan.Scanner { return c.addrs }

// RefreshMaps re-reads the target's memory-map catalogue, so a subsequent
// initial scan sees regions mapped after attach.
func (c *Context) RefreshMaps() error {
	if c.tgt == nil {
		return fmt.Errorf("refresh maps: no target attached")
	}
	return c.tgt.Refresh()
}

// Filter runs one scan step against the active scanner and the target's
// current memory-map catalogue.
func (c *Context) Filter(predicateName, operandLiteral string, progressBatch int) (<-chan scan.Progress, error) {
	if c.tgt == nil {
		return nil, fmt.Errorf("filter: no target attached")
	}
	if c.addrs == nil {
		return nil, fmt.Errorf("filter: no type selected")
	}
	return c.addrs.Scan(predicateName, operandLiteral, c.tgt.Maps, progressBatch)
}

// Close releases the memory reader associated with the current target, if
// any.
func (c *Context) Close() error {
	if c.reader == nil {
		return nil
	}
	err := c.reader.Close()
	c.reader = nil
	return err
}
