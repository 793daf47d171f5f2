package shanten

import (
	"fmt"
	"strings"
)

// MergeMode 跨门合并方式
type MergeMode int

const (
	// MergeStandard 雀头可以出现在任意一门
	MergeStandard MergeMode = iota
	// MergeLegacy 旧版合并：V 只从 V 延伸，末尾允许无雀头。保留用于与旧距离表的结果比对
	MergeLegacy
)

func (m MergeMode) String() string {
	if m == MergeLegacy {
		return "legacy"
	}
	return "standard"
}

// ParseMergeMode 配置项解析，空串为 standard
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return MergeStandard, nil
	case "legacy":
		return MergeLegacy, nil
	default:
		return MergeStandard, fmt.Errorf("unknown merge mode: %s", s)
	}
}

// add 饱和加法，任一侧不可达则结果不可达
func add(a, b int) int {
	if a >= Infinity || b >= Infinity {
		return Infinity
	}
	return a + b
}

// Combine 以 standard 方式合并四门距离（顺序 万、筒、索、字），返回向听数
func Combine(entries [4]DistanceEntry) (int, error) {
	return CombineWith(MergeStandard, entries)
}

// CombineWith 两阶段 DP：先依次并入筒、索得到 U/V[2]，再以 4 个面子为目标并入字牌，最后减 1
func CombineWith(mode MergeMode, entries [4]DistanceEntry) (int, error) {
	u, v := entries[0].U, entries[0].V

	for k := 1; k < 3; k++ {
		e := entries[k]
		var nu, nv [Width]int
		for m := 0; m < Width; m++ {
			nu[m], nv[m] = Infinity, Infinity
			for l := 0; l <= m; l++ {
				nu[m] = min(nu[m], add(u[l], e.U[m-l]))
				if mode == MergeLegacy {
					nv[m] = min(nv[m], add(v[l], e.V[m-l]), add(v[l], e.U[m-l]))
				} else {
					nv[m] = min(nv[m], add(v[l], e.U[m-l]), add(u[l], e.V[m-l]))
				}
			}
		}
		u, v = nu, nv
	}

	h := entries[3]
	result := Infinity
	for l := 0; l < Width; l++ {
		if mode == MergeLegacy {
			result = min(result, add(u[l], h.U[MaxMelds-l]), add(v[l], h.V[MaxMelds-l]))
		} else {
			result = min(result, add(u[l], h.V[MaxMelds-l]), add(v[l], h.U[MaxMelds-l]))
		}
	}

	if result >= Infinity {
		return 0, ErrUnreachableHand
	}
	return result - 1, nil
}
