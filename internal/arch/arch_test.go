package arch

import "testing"

func TestDecodeEncodeRoundTrip(t *testing.T) {
	if got := DescI32.Decode(DescI32.Encode(I32(-42))); got != -42 {
		t.Errorf("i32 round trip: got %v, want -42", got)
	}
	if got := DescU16.Decode(DescU16.Encode(U16(65000))); got != 65000 {
		t.Errorf("u16 round trip: got %v, want 65000", got)
	}
	if got := DescI8.Decode(DescI8.Encode(I8(-1))); got != -1 {
		t.Errorf("i8 round trip: got %v, want -1", got)
	}
}

func TestDecodeLittleEndian(t *testing.T) {
	buf := []byte{0xee, 0xff, 0xc0, 0x00}
	got := DescU32.Decode(buf)
	if want := U32(0x00c0ffee); got != want {
		t.Errorf("decode: got %#x, want %#x", got, want)
	}
}

func TestParseI32(t *testing.T) {
	v, err := DescI32.Parse("13369854")
	if err != nil {
		t.Fatal(err)
	}
	if v != 13369854 {
		t.Errorf("got %v, want 13369854", v)
	}
	if _, err := DescI32.Parse("not-a-number"); err == nil {
		t.Error("expected parse error for non-numeric literal")
	}
}

func TestUint128RoundTripAndOrder(t *testing.T) {
	a, err := parseUint128("340282366920938463463374607431768211455") // 2^128-1
	if err != nil {
		t.Fatal(err)
	}
	buf := encodeUint128(a)
	b := decodeUint128(buf)
	if a != b {
		t.Errorf("u128 round trip mismatch: %v != %v", a, b)
	}
	small, err := parseUint128("1")
	if err != nil {
		t.Fatal(err)
	}
	if !small.Less(a) {
		t.Error("1 should be less than 2^128-1")
	}
	if _, err := parseUint128("-1"); err == nil {
		t.Error("expected range error for negative u128 literal")
	}
}

func TestInt128NegativeOrder(t *testing.T) {
	neg, err := parseInt128("-1")
	if err != nil {
		t.Fatal(err)
	}
	pos, err := parseInt128("1")
	if err != nil {
		t.Fatal(err)
	}
	if !neg.Less(pos) {
		t.Error("-1 should be less than 1")
	}
	if neg.String() != "-1" {
		t.Errorf("got %q, want -1", neg.String())
	}
	if _, err := parseInt128("170141183460469231731687303715884105728"); err == nil { // 2^127
		t.Error("expected range error for i128 overflow")
	}
}
