package shanten

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		tile   TileType
		family Family
		index  int
	}{
		{Man1, FamilyCharacters, 0},
		{Man9, FamilyCharacters, 8},
		{Pin1, FamilyCircles, 0},
		{Pin5, FamilyCircles, 4},
		{So9, FamilyBamboos, 8},
		{East, FamilyHonours, 0},
		{North, FamilyHonours, 3},
		{Red, FamilyHonours, 6},
		{Spring, FamilyNonStandard, -1},
		{Winter, FamilyNonStandard, -1},
	}
	for _, c := range cases {
		f, idx := Classify(c.tile)
		if f != c.family || idx != c.index {
			t.Fatalf("Classify(%v) = (%v, %d), want (%v, %d)", c.tile, f, idx, c.family, c.index)
		}
	}
}

func TestClassify_CoversEveryType(t *testing.T) {
	perFamily := map[Family]int{}
	for tt := Man1; tt < NumTileTypes; tt++ {
		f, _ := Classify(tt)
		perFamily[f]++
		if tt.IsStandard() != (f != FamilyNonStandard) {
			t.Fatalf("%v: IsStandard disagrees with family %v", tt, f)
		}
	}
	want := map[Family]int{
		FamilyCharacters:  9,
		FamilyCircles:     9,
		FamilyBamboos:     9,
		FamilyHonours:     7,
		FamilyNonStandard: 4,
	}
	for f, n := range want {
		if perFamily[f] != n {
			t.Fatalf("family %v has %d types, want %d", f, perFamily[f], n)
		}
	}
}

func TestTilePredicates(t *testing.T) {
	if !Man1.IsTerminal() || !So9.IsTerminal() || Pin5.IsTerminal() || East.IsTerminal() {
		t.Fatalf("terminal predicate wrong")
	}
	if !Pin5.IsSimple() || Man1.IsSimple() || Red.IsSimple() {
		t.Fatalf("simple predicate wrong")
	}
	if !North.IsWind() || White.IsWind() || !Green.IsDragon() || !Spring.IsSeason() {
		t.Fatalf("honour predicates wrong")
	}
	if !(Tile{Type: Man3, ID: 0}).Equal(Tile{Type: Man3, ID: 2}) {
		t.Fatalf("tiles of the same type must be equal")
	}
}

func TestParseTiles(t *testing.T) {
	got, err := ParseTiles("123m 55p 9s 17z 2f")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []TileType{Man1, Man2, Man3, Pin5, Pin5, So9, East, Red, Summer}
	if len(got) != len(want) {
		t.Fatalf("got %d tiles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Fatalf("tile %d = %v, want %v", i, got[i].Type, want[i])
		}
	}
	if got[3].ID != 0 || got[4].ID != 1 {
		t.Fatalf("duplicate tiles should get increasing IDs, got %d and %d", got[3].ID, got[4].ID)
	}
	if s := FormatTiles(got); s != "123m55p9s17z2f" {
		t.Fatalf("FormatTiles = %q", s)
	}
}

func TestParseTiles_Invalid(t *testing.T) {
	for _, s := range []string{"8z", "0m", "12", "m", "12x"} {
		if _, err := ParseTiles(s); !errors.Is(err, ErrInvalidTile) {
			t.Fatalf("ParseTiles(%q) err = %v, want ErrInvalidTile", s, err)
		}
	}
}
