package shanten

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const emptyRow = " 0 3 6 9 12 2 5 8 11 14"

func TestLoad(t *testing.T) {
	text := "0" + emptyRow + "\n\n   \n1953125" + emptyRow + "\n"
	table, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("len = %d, want 2", table.Len())
	}
	e, err := table.Lookup(0)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if e.U != [Width]int{0, 3, 6, 9, 12} || e.V != [Width]int{2, 5, 8, 11, 14} {
		t.Fatalf("entry = %+v", e)
	}

	sh, err := NewEvaluator(table).Evaluate(nil)
	if err != nil {
		t.Fatalf("evaluate empty hand: %v", err)
	}
	if sh != 13 {
		t.Fatalf("empty hand shanten = %d, want 13", sh)
	}
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few fields":  "0 1 2\n",
		"too many fields": "0" + emptyRow + " 7\n",
		"not an integer":  "0 0 3 6 x 12 2 5 8 11 14\n",
		"negative value":  "0 0 3 -6 9 12 2 5 8 11 14\n",
		"negative id":     "-1" + emptyRow + "\n",
		"id out of range": "2031250" + emptyRow + "\n",
		"distance 255":    "0 0 3 6 9 255 2 5 8 11 14\n",
		"distance 300":    "0 0 3 6 9 300 2 5 8 11 14\n",
	}
	for name, text := range cases {
		_, err := Load(strings.NewReader("1" + emptyRow + "\n" + text))
		if !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("%s: err = %v, want ErrMalformedRecord", name, err)
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("%s: error should name the line: %v", name, err)
		}
	}
}

func TestLoad_LargestFiniteDistance(t *testing.T) {
	table, err := Load(strings.NewReader("0 0 3 6 9 254 2 5 8 11 14\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, err := table.Lookup(0)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if e.U[4] != MaxDistance {
		t.Fatalf("U[4] = %d, want %d", e.U[4], MaxDistance)
	}
}

func TestLoad_Duplicate(t *testing.T) {
	text := "5" + emptyRow + "\n5" + emptyRow + "\n"
	if _, err := Load(strings.NewReader(text)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestLoadFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.dat")); !errors.Is(err, ErrResource) {
		t.Fatalf("missing file err = %v, want ErrResource", err)
	}

	path := filepath.Join(t.TempDir(), "distances.dat")
	if err := os.WriteFile(path, []byte("0"+emptyRow+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d", table.Len())
	}
}

func TestLookup_Unknown(t *testing.T) {
	table, err := Load(strings.NewReader("0" + emptyRow + "\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, id := range []SingleKindID{1, HonourOffset, InvalidSingleKindID, 1 << 30} {
		if _, err := table.Lookup(id); !errors.Is(err, ErrUnknownHandID) {
			t.Fatalf("lookup %d err = %v, want ErrUnknownHandID", id, err)
		}
	}

	// 字牌这一门缺失
	if _, err := NewEvaluator(table).Evaluate(nil); !errors.Is(err, ErrUnknownHandID) {
		t.Fatalf("evaluate err = %v, want ErrUnknownHandID", err)
	}
}

func TestLoad_InfinityEntries(t *testing.T) {
	inf := " 1048576 1048576 1048576 1048576 1048576 1048576 1048576 1048576 1048576 1048576"
	table, err := Load(strings.NewReader("0" + inf + "\n1953125" + inf + "\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, _ := table.Lookup(0)
	if e.U[0] != Infinity || e.V[4] != Infinity {
		t.Fatalf("large values should read back as Infinity: %+v", e)
	}
	if _, err := NewEvaluator(table).Evaluate(nil); !errors.Is(err, ErrUnreachableHand) {
		t.Fatalf("err = %v, want ErrUnreachableHand", err)
	}
}

func TestWriteTo_RoundTrip(t *testing.T) {
	table := generatedTable(t)
	var buf bytes.Buffer
	n, err := table.WriteTo(&buf)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, buffer has %d", n, buf.Len())
	}

	again, err := Load(&buf)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Len() != table.Len() {
		t.Fatalf("reloaded %d entries, want %d", again.Len(), table.Len())
	}
	for _, id := range []SingleKindID{0, 31, 1 + 5 + 25 + 3*625, HonourOffset, HonourOffset + 3} {
		a, err1 := table.Lookup(id)
		b, err2 := again.Lookup(id)
		if err1 != nil || err2 != nil || a != b {
			t.Fatalf("id %d: %+v (%v) vs %+v (%v)", id, a, err1, b, err2)
		}
	}
}
