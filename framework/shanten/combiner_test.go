package shanten

import (
	"errors"
	"testing"
)

var emptyEntry = DistanceEntry{
	U: [Width]int{0, 3, 6, 9, 12},
	V: [Width]int{2, 5, 8, 11, 14},
}

func TestCombine_Empty(t *testing.T) {
	entries := [4]DistanceEntry{emptyEntry, emptyEntry, emptyEntry, emptyEntry}
	sh, err := Combine(entries)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if sh != 13 {
		t.Fatalf("standard empty = %d, want 13", sh)
	}

	sh, err = CombineWith(MergeLegacy, entries)
	if err != nil {
		t.Fatalf("combine legacy: %v", err)
	}
	if sh != 11 {
		t.Fatalf("legacy empty = %d, want 11", sh)
	}
}

func TestCombine_PairInAnyFamily(t *testing.T) {
	// 万子 3 面子、筒子 1 面子、雀头在字牌
	threeMelds := DistanceEntry{U: [Width]int{0, 0, 0, 0, 3}, V: [Width]int{1, 1, 1, 2, 5}}
	oneMeld := DistanceEntry{U: [Width]int{0, 0, 3, 6, 9}, V: [Width]int{1, 2, 5, 8, 11}}
	pair := DistanceEntry{U: [Width]int{0, 1, 4, 7, 10}, V: [Width]int{0, 3, 6, 9, 12}}

	sh, err := Combine([4]DistanceEntry{threeMelds, oneMeld, emptyEntry, pair})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if sh != -1 {
		t.Fatalf("complete hand = %d, want -1", sh)
	}

	sh, err = Combine([4]DistanceEntry{pair, threeMelds, emptyEntry, oneMeld})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if sh != -1 {
		t.Fatalf("pair in first family = %d, want -1", sh)
	}
}

func TestCombine_Unreachable(t *testing.T) {
	var inf DistanceEntry
	for m := 0; m < Width; m++ {
		inf.U[m], inf.V[m] = Infinity, Infinity
	}
	for _, mode := range []MergeMode{MergeStandard, MergeLegacy} {
		_, err := CombineWith(mode, [4]DistanceEntry{emptyEntry, emptyEntry, emptyEntry, inf})
		if !errors.Is(err, ErrUnreachableHand) {
			t.Fatalf("%v: err = %v, want ErrUnreachableHand", mode, err)
		}
	}
}

func TestCombine_SaturatingAdd(t *testing.T) {
	if add(Infinity, 3) != Infinity || add(2, Infinity) != Infinity || add(2, 3) != 5 {
		t.Fatalf("add is not saturating")
	}
}

func TestParseMergeMode(t *testing.T) {
	cases := map[string]MergeMode{"": MergeStandard, "standard": MergeStandard, " Legacy ": MergeLegacy}
	for in, want := range cases {
		got, err := ParseMergeMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMergeMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMergeMode("fast"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
