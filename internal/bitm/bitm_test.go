// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitm

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&Bitm[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&Bitm[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&Bitm[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&Bitm[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&Bitm[uint64]{}).nbit()},
		{int(unsafe.Sizeof(uintptr(0))) * 8, (&Bitm[uintptr]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("Bitm[T].nbit:\nhave %v\nwant %v", x[0], x[1])
		}
	}
}

func TestZero(t *testing.T) {
	var bitm16 Bitm[uint16]
	if bitm16.m != nil {
		t.Fatalf("bitm16.m:\nhave %v\nwant nil", bitm16.m)
	}
	if n := bitm16.Len(); n != 0 {
		t.Fatalf("bitm16.Len:\nhave %v\nwant 0", n)
	}
	if n := bitm16.Rem(); n != 0 {
		t.Fatalf("bitm16.Rem:\nhave %v\nwant 0", n)
	}
	if _, ok := bitm16.Search(); ok {
		t.Fatal("bitm16.Search: unexpected success on empty map")
	}
}

func TestGrow(t *testing.T) {
	var bitm32 Bitm[uint32]
	for _, x := range [...]struct {
		nplus, wantLen int
	}{
		{1, 32},
		{2, 96},
		{0, 96},
		{-1, 96},
		{5, 256},
	} {
		if n, i := bitm32.Len(), bitm32.Grow(x.nplus); n != i {
			t.Fatalf("bitm32.Grow:\nhave %v\nwant %v", i, n)
		}
		if n := bitm32.Len(); n != x.wantLen {
			t.Fatalf("bitm32.Grow: Len:\nhave %v\nwant %v", n, x.wantLen)
		}
		if n := bitm32.Rem(); n != x.wantLen {
			t.Fatalf("bitm32.Grow: Rem:\nhave %v\nwant %v", n, x.wantLen)
		}
	}
}

func TestSetSearch(t *testing.T) {
	var bitm8 Bitm[uint8]
	bitm8.Grow(2)
	for i := 0; i < 16; i++ {
		idx, ok := bitm8.Search()
		if !ok || idx != i {
			t.Fatalf("bitm8.Search:\nhave %v, %v\nwant %v, true", idx, ok, i)
		}
		bitm8.Set(idx)
		if !bitm8.IsSet(idx) {
			t.Fatalf("bitm8.IsSet(%d):\nhave false\nwant true", idx)
		}
		bitm8.Set(idx)
		if n := bitm8.Rem(); n != 15-i {
			t.Fatalf("bitm8.Rem:\nhave %v\nwant %v", n, 15-i)
		}
	}
	if _, ok := bitm8.Search(); ok {
		t.Fatal("bitm8.Search: unexpected success on full map")
	}

	bitm8.Unset(11)
	bitm8.Unset(11)
	bitm8.Unset(3)
	if n := bitm8.Rem(); n != 2 {
		t.Fatalf("bitm8.Rem:\nhave %v\nwant 2", n)
	}
	if bitm8.IsSet(3) || bitm8.IsSet(11) {
		t.Fatal("bitm8.IsSet: unset bits reported as set")
	}
	if idx, ok := bitm8.Search(); !ok || idx != 3 {
		t.Fatalf("bitm8.Search:\nhave %v, %v\nwant 3, true", idx, ok)
	}
	bitm8.Set(3)
	if idx, ok := bitm8.Search(); !ok || idx != 11 {
		t.Fatalf("bitm8.Search:\nhave %v, %v\nwant 11, true", idx, ok)
	}
}
