// Package arch provides the little-endian reinterpretation capability the
// scan engine needs to turn raw bytes read from a target's memory into a
// typed value, and back again. It generalizes the teacher's per-architecture
// byte-order helpers (golang.org/x/debug/ogle/arch.Architecture) into a
// generic capability parameterized over the element type, since this system
// has no notion of "target architecture" the way a DWARF-aware debugger
// does: every supported element type is simply decoded host-little-endian.
package arch

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Value is the constraint satisfied by every element type the scan engine
// can hold: it must support a total order against another value of the same
// type. Every supported width, including the two 128-bit types that have no
// native Go representation, implements this via a named wrapper type so the
// rest of the engine (scan.AddressSet[T]) can stay free of per-width
// branching.
type Value[T any] interface {
	comparable
	Less(other T) bool
}

// Descriptor bundles everything the scan engine needs to work with a
// concrete element type without naming it: its width in bytes, how to decode
// it from exactly Size bytes in host little-endian order, how to encode it
// back to bytes for a write-back, and how to parse a literal operand typed
// by the user.
type Descriptor[T Value[T]] struct {
	Name   string
	Size   int
	Decode func(buf []byte) T
	Encode func(v T) []byte
	Parse  func(s string) (T, error)
}

// --- native integer widths ---
//
// Each width is wrapped in a named type so it can carry a Less method and
// satisfy Value[T]; the underlying decode is delegated to encoding/binary,
// matching the teacher's use of binary.ByteOrder rather than hand-rolled bit
// shifting.

type (
	I8   int8
	U8   uint8
	I16  int16
	U16  uint16
	I32  int32
	U32  uint32
	I64  int64
	U64  uint64
)

func (a I8) Less(b I8) bool   { return a < b }
func (a U8) Less(b U8) bool   { return a < b }
func (a I16) Less(b I16) bool { return a < b }
func (a U16) Less(b U16) bool { return a < b }
func (a I32) Less(b I32) bool { return a < b }
func (a U32) Less(b U32) bool { return a < b }
func (a I64) Less(b I64) bool { return a < b }
func (a U64) Less(b U64) bool { return a < b }

func decodeI8(buf []byte) I8   { return I8(buf[0]) }
func decodeU8(buf []byte) U8   { return U8(buf[0]) }
func decodeI16(buf []byte) I16 { return I16(binary.LittleEndian.Uint16(buf)) }
func decodeU16(buf []byte) U16 { return U16(binary.LittleEndian.Uint16(buf)) }
func decodeI32(buf []byte) I32 { return I32(binary.LittleEndian.Uint32(buf)) }
func decodeU32(buf []byte) U32 { return U32(binary.LittleEndian.Uint32(buf)) }
func decodeI64(buf []byte) I64 { return I64(binary.LittleEndian.Uint64(buf)) }
func decodeU64(buf []byte) U64 { return U64(binary.LittleEndian.Uint64(buf)) }

func encodeI8(v I8) []byte   { return []byte{byte(v)} }
func encodeU8(v U8) []byte   { return []byte{byte(v)} }
func encodeI16(v I16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, uint16(v)); return b }
func encodeU16(v U16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, uint16(v)); return b }
func encodeI32(v I32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, uint32(v)); return b }
func encodeU32(v U32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, uint32(v)); return b }
func encodeI64(v I64) []byte { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, uint64(v)); return b }
func encodeU64(v U64) []byte { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, uint64(v)); return b }

func parseI8(s string) (I8, error) {
	n, err := strconv.ParseInt(s, 0, 8)
	return I8(n), err
}
func parseU8(s string) (U8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	return U8(n), err
}
func parseI16(s string) (I16, error) {
	n, err := strconv.ParseInt(s, 0, 16)
	return I16(n), err
}
func parseU16(s string) (U16, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	return U16(n), err
}
func parseI32(s string) (I32, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	return I32(n), err
}
func parseU32(s string) (U32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	return U32(n), err
}
func parseI64(s string) (I64, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	return I64(n), err
}
func parseU64(s string) (U64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	return U64(n), err
}

// Descriptors for the eight native widths. Held as concrete vars (rather
// than behind the TypeTag switch directly) so both scan.NewScanner and tests
// can reach them without re-deriving the function values.
var (
	DescI8  = Descriptor[I8]{Name: "i8", Size: 1, Decode: decodeI8, Encode: encodeI8, Parse: parseI8}
	DescU8  = Descriptor[U8]{Name: "u8", Size: 1, Decode: decodeU8, Encode: encodeU8, Parse: parseU8}
	DescI16 = Descriptor[I16]{Name: "i16", Size: 2, Decode: decodeI16, Encode: encodeI16, Parse: parseI16}
	DescU16 = Descriptor[U16]{Name: "u16", Size: 2, Decode: decodeU16, Encode: encodeU16, Parse: parseU16}
	DescI32 = Descriptor[I32]{Name: "i32", Size: 4, Decode: decodeI32, Encode: encodeI32, Parse: parseI32}
	DescU32 = Descriptor[U32]{Name: "u32", Size: 4, Decode: decodeU32, Encode: encodeU32, Parse: parseU32}
	DescI64 = Descriptor[I64]{Name: "i64", Size: 8, Decode: decodeI64, Encode: encodeI64, Parse: parseI64}
	DescU64 = Descriptor[U64]{Name: "u64", Size: 8, Decode: decodeU64, Encode: encodeU64, Parse: parseU64}
)

// fmtValue renders a Value for display; used by scan to avoid every
// Descriptor consumer re-deriving a %v-compatible string.
func fmtValue[T any](v T) string {
	return fmt.Sprintf("%v", v)
}

// FormatI8 and friends are thin fmt.Sprintf wrappers kept next to the
// descriptors so scan's display code never has to special-case a width.
func FormatI8(v I8) string   { return fmtValue(v) }
func FormatU8(v U8) string   { return fmtValue(v) }
func FormatI16(v I16) string { return fmtValue(v) }
func FormatU16(v U16) string { return fmtValue(v) }
func FormatI32(v I32) string { return fmtValue(v) }
func FormatU32(v U32) string { return fmtValue(v) }
func FormatI64(v I64) string { return fmtValue(v) }
func FormatU64(v U64) string { return fmtValue(v) }
