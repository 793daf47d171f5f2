package shanten

import "gomahjong/common/cache"

// CachedEvaluator 以张数矩阵为键缓存成功的计算结果，错误不缓存
type CachedEvaluator struct {
	inner *Evaluator
	cache *cache.GeneralCache
}

func NewCachedEvaluator(inner *Evaluator, c *cache.GeneralCache) *CachedEvaluator {
	return &CachedEvaluator{inner: inner, cache: c}
}

func (c *CachedEvaluator) Evaluate(hand []Tile) (int, error) {
	counts := Encode(hand)
	key := counts.key(c.inner.mode)
	if v, ok := c.cache.GetInt(key); ok {
		return v, nil
	}
	v, err := c.inner.EvaluateCounts(counts)
	if err != nil {
		return 0, err
	}
	c.cache.Set(key, v)
	return v, nil
}

// key 35 字节：34 种牌的张数 + 合并方式。超过 255 的张数截断，不会与合法手牌撞键
func (m CountMatrix) key(mode MergeMode) string {
	var b [35]byte
	n := 0
	for f := FamilyCharacters; f <= FamilyHonours; f++ {
		size := SuitSize
		if f == FamilyHonours {
			size = HonourSize
		}
		for i := 0; i < size; i++ {
			b[n] = byte(min(max(m[f][i], 0), 255))
			n++
		}
	}
	b[34] = byte(mode)
	return string(b[:])
}
