package arch

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// Uint128 and Int128 give the scan engine 128-bit widths without a native
// Go integer of that size. Each is a pair of 64-bit halves rather than a
// math/big.Int, so Decode/Encode stay allocation-free in the scanning inner
// loop; math/big is used only for Parse, where an operand is parsed once
// before a scan begins (spec.md §4.5 "literal parsing fails loudly before
// any iteration begins"), and for String, which formats values for display
// outside the scan loop.
type Uint128 struct {
	Hi, Lo uint64
}

type Int128 struct {
	Hi, Lo uint64
}

func (a Uint128) Less(b Uint128) bool {
	if a.Hi != b.Hi {
		return a.Hi < b.Hi
	}
	return a.Lo < b.Lo
}

// Less compares two's-complement 128-bit values by flipping the sign bit of
// the high half, which maps signed order onto the same lexicographic
// (Hi, Lo) comparison used for the unsigned case.
func (a Int128) Less(b Int128) bool {
	ah := a.Hi ^ (1 << 63)
	bh := b.Hi ^ (1 << 63)
	if ah != bh {
		return ah < bh
	}
	return a.Lo < b.Lo
}

func decodeUint128(buf []byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(buf[0:8]),
		Hi: binary.LittleEndian.Uint64(buf[8:16]),
	}
}

func decodeInt128(buf []byte) Int128 {
	u := decodeUint128(buf)
	return Int128{Hi: u.Hi, Lo: u.Lo}
}

func encodeUint128(v Uint128) []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[0:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:16], v.Hi)
	return b
}

func encodeInt128(v Int128) []byte {
	return encodeUint128(Uint128{Hi: v.Hi, Lo: v.Lo})
}

var (
	uint128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	int128Min  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	int128Max  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

func parseUint128(s string) (Uint128, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Uint128{}, fmt.Errorf("%q is not a valid u128 literal", s)
	}
	if n.Sign() < 0 || n.Cmp(uint128Max) > 0 {
		return Uint128{}, fmt.Errorf("%q is out of range for u128", s)
	}
	return bigToUint128(n), nil
}

func parseInt128(s string) (Int128, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Int128{}, fmt.Errorf("%q is not a valid i128 literal", s)
	}
	if n.Cmp(int128Min) < 0 || n.Cmp(int128Max) > 0 {
		return Int128{}, fmt.Errorf("%q is out of range for i128", s)
	}
	if n.Sign() < 0 {
		n = new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	u := bigToUint128(n)
	return Int128{Hi: u.Hi, Lo: u.Lo}, nil
}

func bigToUint128(n *big.Int) Uint128 {
	var buf [16]byte
	n.FillBytes(buf[:]) // big-endian, 16 bytes
	return Uint128{
		Hi: binary.BigEndian.Uint64(buf[0:8]),
		Lo: binary.BigEndian.Uint64(buf[8:16]),
	}
}

func (v Uint128) String() string {
	hi := new(big.Int).Lsh(new(big.Int).SetUint64(v.Hi), 64)
	return new(big.Int).Or(hi, new(big.Int).SetUint64(v.Lo)).String()
}

func (v Int128) String() string {
	u := Uint128{Hi: v.Hi, Lo: v.Lo}
	if v.Hi&(1<<63) == 0 {
		return u.String()
	}
	// Negative: two's-complement negate (16-byte width) then print with a sign.
	hi, lo := ^u.Hi, ^u.Lo+1
	if lo == 0 {
		hi++
	}
	mag := Uint128{Hi: hi, Lo: lo}
	return "-" + mag.String()
}

var (
	DescI128 = Descriptor[Int128]{Name: "i128", Size: 16, Decode: decodeInt128, Encode: encodeInt128, Parse: parseInt128}
	DescU128 = Descriptor[Uint128]{Name: "u128", Size: 16, Decode: decodeUint128, Encode: encodeUint128, Parse: parseUint128}
)

func FormatI128(v Int128) string  { return v.String() }
func FormatU128(v Uint128) string { return v.String() }
