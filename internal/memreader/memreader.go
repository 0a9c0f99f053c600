// Package memreader provides random-access I/O against a live process's
// memory through /proc/<pid>/mem. Its shape is taken from the teacher's
// program.File interface: only ReaderAt/WriterAt, not Reader/Writer, because
// the enormous address space of a process makes sequential helpers like
// io.Copy dangerous, and random access by address is the pattern a scanner
// actually needs.
package memreader

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/memscan/memscan/internal/arch"
)

// Reader implements io.ReaderAt and io.WriterAt against a target's mem
// pseudo-file.
type Reader struct {
	file *os.File
}

var (
	_ interface {
		ReadAt(p []byte, off int64) (int, error)
		WriteAt(p []byte, off int64) (int, error)
		Close() error
	} = (*Reader)(nil)
)

// Open opens memPath (typically /proc/<pid>/mem) for reading and writing.
func Open(memPath string) (*Reader, error) {
	f, err := os.OpenFile(memPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", memPath, err)
	}
	return &Reader{file: f}, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	return r.file.ReadAt(p, off)
}

func (r *Reader) WriteAt(p []byte, off int64) (int, error) {
	return r.file.WriteAt(p, off)
}

func (r *Reader) Close() error {
	return r.file.Close()
}

// Clone duplicates the underlying file descriptor so the returned Reader can
// be used concurrently with the original: ReadAt/WriteAt are offset-explicit
// syscalls, so nothing is shared by the duplicate but the kernel file
// description's access mode, which is exactly what a second reader needs.
func (r *Reader) Clone() (*Reader, error) {
	newFd, err := unix.Dup(int(r.file.Fd()))
	if err != nil {
		return nil, fmt.Errorf("duplicating mem fd: %w", err)
	}
	return &Reader{file: os.NewFile(uintptr(newFd), r.file.Name())}, nil
}

// ReadValue reads exactly Size bytes at addr and decodes them with desc. A
// short read or I/O error (e.g. an unmapped or since-unmapped page) is
// reported as (zero value, false) rather than an error: the scan engine
// treats an address that can no longer be read as one to drop silently,
// matching spec.md's "fail-silent" read contract for scan refinement.
func ReadValue[T arch.Value[T]](r *Reader, addr uint64, desc arch.Descriptor[T]) (T, bool) {
	buf := make([]byte, desc.Size)
	n, err := r.ReadAt(buf, int64(addr))
	if err != nil || n != desc.Size {
		var zero T
		return zero, false
	}
	return desc.Decode(buf), true
}

// WriteValue encodes v with desc and writes it at addr, reporting whether the
// full write succeeded.
func WriteValue[T arch.Value[T]](r *Reader, addr uint64, desc arch.Descriptor[T], v T) bool {
	buf := desc.Encode(v)
	n, err := r.WriteAt(buf, int64(addr))
	return err == nil && n == len(buf)
}
