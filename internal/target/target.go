package target

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Target is an attached process: its pid, command line, and the memory-map
// catalogue read from /proc/<pid>/maps at attach time. ProcRoot lets callers
// (and tests) redirect the catalogue and command lookups away from the real
// /proc, mirroring the teacher's habit of keeping OS interaction behind a
// narrow, substitutable surface.
type Target struct {
	Pid      int
	Command  string
	ProcRoot string
	Maps     []MemoryMap
}

// DefaultProcRoot is used when a caller does not supply one.
const DefaultProcRoot = "/proc"

// Attach reads /proc/<pid>/cmdline and /proc/<pid>/maps under procRoot (or
// DefaultProcRoot if procRoot is empty) and returns a populated Target. It
// does not itself open /proc/<pid>/mem; that is internal/memreader's job.
func Attach(pid int, procRoot string) (*Target, error) {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}

	cmd, err := readCmdline(procRoot, pid)
	if err != nil {
		return nil, fmt.Errorf("attach pid %d: %w", pid, err)
	}

	mapsPath := filepath.Join(procRoot, fmt.Sprintf("%d", pid), "maps")
	contents, err := os.ReadFile(mapsPath)
	if err != nil {
		return nil, fmt.Errorf("attach pid %d: reading %s: %w", pid, mapsPath, err)
	}
	maps, err := ParseMaps(string(contents))
	if err != nil {
		return nil, fmt.Errorf("attach pid %d: %w", pid, err)
	}

	return &Target{
		Pid:      pid,
		Command:  cmd,
		ProcRoot: procRoot,
		Maps:     maps,
	}, nil
}

// Refresh re-reads the memory-map catalogue, reflecting any mmap/munmap the
// target has done since attach or the last refresh.
func (t *Target) Refresh() error {
	mapsPath := filepath.Join(t.ProcRoot, fmt.Sprintf("%d", t.Pid), "maps")
	contents, err := os.ReadFile(mapsPath)
	if err != nil {
		return fmt.Errorf("refresh pid %d: reading %s: %w", t.Pid, mapsPath, err)
	}
	maps, err := ParseMaps(string(contents))
	if err != nil {
		return fmt.Errorf("refresh pid %d: %w", t.Pid, err)
	}
	t.Maps = maps
	return nil
}

// MemPath is the path to the target's mem pseudo-file, for internal/memreader.
func (t *Target) MemPath() string {
	return filepath.Join(t.ProcRoot, fmt.Sprintf("%d", t.Pid), "mem")
}

func readCmdline(procRoot string, pid int) (string, error) {
	path := filepath.Join(procRoot, fmt.Sprintf("%d", pid), "cmdline")
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	// cmdline is NUL-separated with a trailing NUL; join with spaces for a
	// human-readable command string as ps/top do.
	args := strings.Split(strings.TrimRight(string(raw), "\x00"), "\x00")
	return strings.Join(args, " "), nil
}
