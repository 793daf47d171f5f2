package shanten

import (
	"sync"
	"testing"
)

var (
	tableOnce sync.Once
	testTable *DistanceTable
	tableErr  error
)

// generatedTable 整个包的测试共用一张生成的距离表
func generatedTable(tb testing.TB) *DistanceTable {
	tb.Helper()
	tableOnce.Do(func() {
		testTable, tableErr = GenerateTable()
	})
	if tableErr != nil {
		tb.Fatalf("generate table: %v", tableErr)
	}
	return testTable
}

func tiles(tb testing.TB, s string) []Tile {
	tb.Helper()
	out, err := ParseTiles(s)
	if err != nil {
		tb.Fatalf("parse %q: %v", s, err)
	}
	return out
}
