package shanten

import "fmt"

// familyShape 单门的形状：格数以及是否允许顺子
type familyShape struct {
	size      int
	sequences bool
	offset    SingleKindID
}

var (
	suitShape   = familyShape{size: SuitSize, sequences: true}
	honourShape = familyShape{size: HonourSize, sequences: false, offset: HonourOffset}
)

// 距离状态 k = m + Width*pair，共 10 种
const states = 2 * Width

// GenerateTable 离线生成完整距离表。
// 对每门先枚举全部 "m 面子(+雀头)" 目标形，向上闭包得到距离为 0 的张数分布，
// 再按总张数从大到小递推 d(h) = 1 + min d(h+e_i)
func GenerateTable() (*DistanceTable, error) {
	t := newDistanceTable()
	for _, shape := range []familyShape{suitShape, honourShape} {
		if err := shape.fill(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s familyShape) melds() [][]int {
	var out [][]int
	for i := 0; i < s.size; i++ {
		m := make([]int, s.size)
		m[i] = 3
		out = append(out, m)
	}
	if s.sequences {
		for i := 0; i+2 < s.size; i++ {
			m := make([]int, s.size)
			m[i], m[i+1], m[i+2] = 1, 1, 1
			out = append(out, m)
		}
	}
	return out
}

func (s familyShape) fill(t *DistanceTable) error {
	space := pow5(s.size)
	pows := make([]int, s.size)
	for i := range pows {
		pows[i] = pow5(i)
	}
	digits := func(idx, i int) int { return idx / pows[i] % radix }

	// zero[idx] 第 k 位为 1 表示状态 k 的距离为 0
	zero := make([]uint16, space)
	melds := s.melds()
	counts := make([]int, s.size)
	var walk func(start, m int)
	walk = func(start, m int) {
		idx := 0
		for i, c := range counts {
			idx += c * pows[i]
		}
		zero[idx] |= 1 << m
		for j := 0; j < s.size; j++ {
			if counts[j]+2 <= 4 {
				zero[idx+2*pows[j]] |= 1 << (m + Width)
			}
		}
		if m == MaxMelds {
			return
		}
		for k := start; k < len(melds); k++ {
			ok := true
			for i, c := range melds[k] {
				if counts[i]+c > 4 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			for i, c := range melds[k] {
				counts[i] += c
			}
			walk(k, m+1)
			for i, c := range melds[k] {
				counts[i] -= c
			}
		}
	}
	walk(0, 0)

	for idx := 0; idx < space; idx++ {
		for i := 0; i < s.size; i++ {
			if digits(idx, i) > 0 {
				zero[idx] |= zero[idx-pows[i]]
			}
		}
	}

	dist := make([][states]uint8, space)
	for idx := space - 1; idx >= 0; idx-- {
		var best [states]uint8
		for k := range best {
			best[k] = unreach
		}
		for i := 0; i < s.size; i++ {
			if digits(idx, i) == 4 {
				continue
			}
			nb := &dist[idx+pows[i]]
			for k := 0; k < states; k++ {
				if nb[k] != unreach && nb[k]+1 < best[k] {
					best[k] = nb[k] + 1
				}
			}
		}
		for k := 0; k < states; k++ {
			if zero[idx]&(1<<k) != 0 {
				best[k] = 0
			}
		}
		dist[idx] = best
	}

	for idx := 0; idx < space; idx++ {
		total := 0
		for i := 0; i < s.size; i++ {
			total += digits(idx, i)
		}
		if total > MaxHand {
			continue
		}
		var e DistanceEntry
		for m := 0; m < Width; m++ {
			e.U[m] = unpack(dist[idx][m])
			e.V[m] = unpack(dist[idx][m+Width])
		}
		if err := t.put(SingleKindID(idx)+s.offset, e); err != nil {
			return fmt.Errorf("generate %d cells: %w", s.size, err)
		}
	}
	return nil
}
