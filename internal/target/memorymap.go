// Package target represents a live process attached for scanning: its
// identity, command line, and the memory-map catalogue read from
// /proc/<pid>/maps. Line parsing is grounded in the original source's
// memory_map.rs, but returns errors instead of panicking on malformed
// input (see SPEC_FULL.md's REDESIGN FLAGS).
package target

import (
	"fmt"
	"strconv"
	"strings"
)

// MemoryMap is one half-open virtual address range from a target's memory
// map catalogue, as described in spec.md §3.
type MemoryMap struct {
	AddrStart uint64
	AddrEnd   uint64
	Perms     Permissions
	Offset    uint64
	Dev       Device
	Inode     uint64
	Pathname  string
}

// Len reports the number of bytes in the region.
func (m MemoryMap) Len() uint64 { return m.AddrEnd - m.AddrStart }

type Permissions struct {
	Read    bool
	Write   bool
	Execute bool
	Private bool
	Shared  bool
}

type Device struct {
	Major int64
	Minor int64
}

// ParseMapsLine parses one line of /proc/<pid>/maps, in the format
// documented in spec.md §6:
//
//	start-end perms offset dev_major:dev_minor inode [pathname]
func ParseMapsLine(line string) (MemoryMap, error) {
	cols := strings.Fields(line)
	if len(cols) < 5 {
		return MemoryMap{}, fmt.Errorf("memory map line has %d columns, want at least 5: %q", len(cols), line)
	}

	addrStart, addrEnd, err := parseAddrRange(cols[0])
	if err != nil {
		return MemoryMap{}, err
	}
	perms, err := parsePermissions(cols[1])
	if err != nil {
		return MemoryMap{}, err
	}
	offset, err := strconv.ParseUint(cols[2], 16, 64)
	if err != nil {
		return MemoryMap{}, fmt.Errorf("offset %q is not hexadecimal: %w", cols[2], err)
	}
	dev, err := parseDevice(cols[3])
	if err != nil {
		return MemoryMap{}, err
	}
	inode, err := strconv.ParseUint(cols[4], 10, 64)
	if err != nil {
		return MemoryMap{}, fmt.Errorf("inode %q is not decimal: %w", cols[4], err)
	}

	var pathname string
	if len(cols) > 5 {
		// Pathnames may contain spaces; take everything after the inode
		// column from the original (untrimmed) field boundaries.
		idx := nthFieldEnd(line, 5)
		pathname = strings.TrimSpace(line[idx:])
	}

	return MemoryMap{
		AddrStart: addrStart,
		AddrEnd:   addrEnd,
		Perms:     perms,
		Offset:    offset,
		Dev:       dev,
		Inode:     inode,
		Pathname:  pathname,
	}, nil
}

// nthFieldEnd returns the byte offset in line immediately after the first n
// whitespace-separated fields, used to recover the untouched
// remainder of the line for a pathname that may itself contain spaces.
func nthFieldEnd(line string, n int) int {
	fieldsSeen := 0
	inField := false
	for i, r := range line {
		isSpace := r == ' ' || r == '\t'
		if !isSpace && !inField {
			inField = true
		} else if isSpace && inField {
			inField = false
			fieldsSeen++
			if fieldsSeen == n {
				return i
			}
		}
	}
	return len(line)
}

func parseAddrRange(col string) (start, end uint64, err error) {
	parts := strings.SplitN(col, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("address range %q has no '-' separator", col)
	}
	start, err = strconv.ParseUint(parts[0], 16, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("start address %q is not hexadecimal: %w", parts[0], err)
	}
	end, err = strconv.ParseUint(parts[1], 16, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("end address %q is not hexadecimal: %w", parts[1], err)
	}
	return start, end, nil
}

func parsePermissions(col string) (Permissions, error) {
	if len(col) != 4 {
		return Permissions{}, fmt.Errorf("permission string %q must be 4 characters", col)
	}
	return Permissions{
		Read:    col[0] == 'r',
		Write:   col[1] == 'w',
		Execute: col[2] == 'x',
		Private: col[3] == 'p',
		Shared:  col[3] == 's',
	}, nil
}

func parseDevice(col string) (Device, error) {
	parts := strings.SplitN(col, ":", 2)
	if len(parts) != 2 {
		return Device{}, fmt.Errorf("device string %q has no ':' separator", col)
	}
	major, err := strconv.ParseInt(parts[0], 16, 64)
	if err != nil {
		return Device{}, fmt.Errorf("device major %q is not hexadecimal: %w", parts[0], err)
	}
	minor, err := strconv.ParseInt(parts[1], 16, 64)
	if err != nil {
		return Device{}, fmt.Errorf("device minor %q is not hexadecimal: %w", parts[1], err)
	}
	return Device{Major: major, Minor: minor}, nil
}

// ParseMaps parses the full contents of a /proc/<pid>/maps file, preserving
// source order as spec.md §4.3 requires.
func ParseMaps(contents string) ([]MemoryMap, error) {
	lines := strings.Split(contents, "\n")
	maps := make([]MemoryMap, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := ParseMapsLine(line)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}
