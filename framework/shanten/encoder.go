package shanten

const (
	SuitSize   = 9 // 数牌每门 9 种
	HonourSize = 7 // 字牌 4 风 + 3 元
	radix      = 5 // 每种牌 0-4 张
	MaxHand    = 14
)

// SingleKindID 单门牌张数分布的编码，id = Σ count[i]·5^i，字牌另加 HonourOffset
type SingleKindID int

// InvalidSingleKindID 张数超出 0-4 时的编码结果，查表必然失败
const InvalidSingleKindID SingleKindID = -1

// HonourOffset 字牌编码偏移。取数牌编码空间的大小 5^9，使两类 id 不相交
var HonourOffset = SingleKindID(pow5(SuitSize))

// SuitCountVector 单门张数，字牌只使用前 7 格
type SuitCountVector [SuitSize]int

// CountMatrix 四门张数矩阵，顺序为 万、筒、索、字
type CountMatrix [4]SuitCountVector

func pow5(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= radix
	}
	return p
}

// Encode 聚合手牌为四门张数矩阵，花牌跳过；不校验单种超过 4 张
func Encode(hand []Tile) CountMatrix {
	var m CountMatrix
	for _, t := range hand {
		if !t.Type.IsStandard() {
			continue
		}
		f, idx := Classify(t.Type)
		m[f][idx]++
	}
	return m
}

// ToSingleKindID 按 5 进制编码单门张数分布
func ToSingleKindID(v SuitCountVector, isHonour bool) SingleKindID {
	size := SuitSize
	if isHonour {
		size = HonourSize
	}
	id, p := 0, 1
	for i := 0; i < size; i++ {
		if v[i] < 0 || v[i] >= radix {
			return InvalidSingleKindID
		}
		id += v[i] * p
		p *= radix
	}
	if isHonour {
		for i := HonourSize; i < SuitSize; i++ {
			if v[i] != 0 {
				return InvalidSingleKindID
			}
		}
		return SingleKindID(id) + HonourOffset
	}
	return SingleKindID(id)
}

// FromSingleKindID 解码，ok 为 false 表示 id 不在编码空间内
func FromSingleKindID(id SingleKindID) (v SuitCountVector, isHonour bool, ok bool) {
	if id < 0 {
		return v, false, false
	}
	size := SuitSize
	if id >= HonourOffset {
		isHonour = true
		id -= HonourOffset
		size = HonourSize
	}
	n := int(id)
	for i := 0; i < size; i++ {
		v[i] = n % radix
		n /= radix
	}
	if n != 0 {
		return SuitCountVector{}, false, false
	}
	return v, isHonour, true
}

// Sum 单门总张数
func (v SuitCountVector) Sum() int {
	s := 0
	for _, c := range v {
		s += c
	}
	return s
}

// IDs 四门各自的编码
func (m CountMatrix) IDs() [4]SingleKindID {
	var ids [4]SingleKindID
	for f := FamilyCharacters; f <= FamilyHonours; f++ {
		ids[f] = ToSingleKindID(m[f], f == FamilyHonours)
	}
	return ids
}

// Total 标准牌总张数
func (m CountMatrix) Total() int {
	s := 0
	for _, v := range m {
		s += v.Sum()
	}
	return s
}
