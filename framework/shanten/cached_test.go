package shanten

import (
	"errors"
	"testing"

	"gomahjong/common/cache"
)

func newCachedEvaluator(t *testing.T, mode MergeMode) *CachedEvaluator {
	t.Helper()
	c, err := cache.NewGeneralCache(1000, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(c.Close)
	return NewCachedEvaluator(NewEvaluator(generatedTable(t), WithMergeMode(mode)), c)
}

func TestCachedEvaluator(t *testing.T) {
	e := newCachedEvaluator(t, MergeStandard)
	hand := tiles(t, "123456789m123p5s")
	if got := evaluate(t, e, "123456789m123p5s"); got != 0 {
		t.Fatalf("shanten = %d, want 0", got)
	}
	e.cache.Wait()

	key := Encode(hand).key(MergeStandard)
	if v, ok := e.cache.GetInt(key); !ok || v != 0 {
		t.Fatalf("cached value = %d, %v", v, ok)
	}
	// 顺序不同，命中同一个键
	if got := evaluate(t, e, "5s123p987654321m"); got != 0 {
		t.Fatalf("shanten from cache = %d, want 0", got)
	}
}

func TestCachedEvaluator_KeyIncludesMode(t *testing.T) {
	counts := Encode(tiles(t, "123456789m123p5s"))
	if counts.key(MergeStandard) == counts.key(MergeLegacy) {
		t.Fatalf("keys for different merge modes must differ")
	}
	if len(counts.key(MergeStandard)) != 35 {
		t.Fatalf("key length = %d", len(counts.key(MergeStandard)))
	}
}

func TestCachedEvaluator_ErrorsNotCached(t *testing.T) {
	e := newCachedEvaluator(t, MergeStandard)
	hand := tiles(t, "11111m")
	for i := 0; i < 2; i++ {
		if _, err := e.Evaluate(hand); !errors.Is(err, ErrUnknownHandID) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
		e.cache.Wait()
	}
	if _, ok := e.cache.Get(Encode(hand).key(MergeStandard)); ok {
		t.Fatalf("error result was cached")
	}
}
