package shanten

import "sync"

type Hand34 [NumStandardTypes]uint8

// Searcher 深度优先拆牌求一般型向听数，不依赖距离表，用于交叉校验
type Searcher struct {
	mu           sync.RWMutex
	shantenCache map[Hand34]int // 向听数缓存
}

func NewSearcher() *Searcher {
	return &Searcher{
		shantenCache: make(map[Hand34]int, 4096),
	}
}

// Hand34FromTiles 按牌种计数，花牌忽略
func Hand34FromTiles(tiles []Tile) Hand34 {
	var h Hand34
	for _, t := range tiles {
		if t.Type.IsStandard() {
			h[int(t.Type)]++
		}
	}
	return h
}

// ShantenNormal 一般型向听数
func (s *Searcher) ShantenNormal(h Hand34) int {
	s.mu.RLock()
	if v, ok := s.shantenCache[h]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	best := 8 // 一般型最差上界
	work := h
	dfsNormalShanten(&work, 0, 0, 0, &best)

	s.mu.Lock()
	s.shantenCache[h] = best
	s.mu.Unlock()
	return best
}

func isNumberTile(i int) bool { return TileType(i).IsSuit() }

func suitOf(i int) int {
	f, _ := Classify(TileType(i))
	if f == FamilyHonours || f == FamilyNonStandard {
		return -1
	}
	return int(f)
}

// dfsNormalShanten m：已成面子数、p：雀头数（0/1）、t：搭子数、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < NumStandardTypes; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if isNumberTile(i) && i+2 < NumStandardTypes && suitOf(i) == suitOf(i+2) {
		if (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	if p == 0 && (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		(*h)[i] += 2
	}

	// 对子作搭子
	if (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i] += 2
	}

	if isNumberTile(i) && i+1 < NumStandardTypes && suitOf(i) == suitOf(i+1) && (*h)[i+1] > 0 {
		(*h)[i]--
		(*h)[i+1]--
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i]++
		(*h)[i+1]++
	}

	if isNumberTile(i) && i+2 < NumStandardTypes && suitOf(i) == suitOf(i+2) && (*h)[i+2] > 0 {
		(*h)[i]--
		(*h)[i+2]--
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i]++
		(*h)[i+2]++
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}
