package shanten

import (
	"fmt"
	"strconv"
	"strings"
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red

	// 季节花牌 (34-37)，不参与向听数计算
	Spring
	Summer
	Autumn
	Winter
)

const (
	NumStandardTypes = 34 // 标准牌种类数
	NumTileTypes     = 38 // 含花牌
)

// Family 牌的大类
type Family int

const (
	FamilyCharacters  Family = iota // 万子
	FamilyCircles                   // 筒子
	FamilyBamboos                   // 索子
	FamilyHonours                   // 字牌
	FamilyNonStandard               // 花牌
)

func (f Family) String() string {
	switch f {
	case FamilyCharacters:
		return "characters"
	case FamilyCircles:
		return "circles"
	case FamilyBamboos:
		return "bamboos"
	case FamilyHonours:
		return "honours"
	default:
		return "non-standard"
	}
}

// Tile 实体牌，ID 用于区分同种的四张（0-3）。相等与排序只看 Type
type Tile struct {
	Type TileType
	ID   int
}

// Classify 返回牌所属大类以及在大类内的下标；花牌下标为 -1
func Classify(t TileType) (Family, int) {
	switch {
	case t >= Man1 && t <= Man9:
		return FamilyCharacters, int(t - Man1)
	case t >= Pin1 && t <= Pin9:
		return FamilyCircles, int(t - Pin1)
	case t >= So1 && t <= So9:
		return FamilyBamboos, int(t - So1)
	case t >= East && t <= Red:
		return FamilyHonours, int(t - East)
	default:
		return FamilyNonStandard, -1
	}
}

func (t TileType) IsCharacter() bool { return t >= Man1 && t <= Man9 }
func (t TileType) IsCircle() bool    { return t >= Pin1 && t <= Pin9 }
func (t TileType) IsBamboo() bool    { return t >= So1 && t <= So9 }
func (t TileType) IsSuit() bool      { return t >= Man1 && t <= So9 }
func (t TileType) IsWind() bool      { return t >= East && t <= North }
func (t TileType) IsDragon() bool    { return t >= White && t <= Red }
func (t TileType) IsHonour() bool    { return t.IsWind() || t.IsDragon() }
func (t TileType) IsSeason() bool    { return t >= Spring && t <= Winter }

// IsStandard 数牌或字牌
func (t TileType) IsStandard() bool { return t.IsSuit() || t.IsHonour() }

// IsTerminal 老头牌（数牌 1、9）
func (t TileType) IsTerminal() bool {
	if !t.IsSuit() {
		return false
	}
	_, idx := Classify(t)
	return idx == 0 || idx == 8
}

// IsSimple 中张牌（数牌 2-8）
func (t TileType) IsSimple() bool { return t.IsSuit() && !t.IsTerminal() }

// String 紧凑记法：1m、5p、9s、1z-7z、1f-4f
func (t TileType) String() string {
	switch {
	case t.IsCharacter():
		return strconv.Itoa(int(t-Man1)+1) + "m"
	case t.IsCircle():
		return strconv.Itoa(int(t-Pin1)+1) + "p"
	case t.IsBamboo():
		return strconv.Itoa(int(t-So1)+1) + "s"
	case t.IsHonour():
		return strconv.Itoa(int(t-East)+1) + "z"
	case t.IsSeason():
		return strconv.Itoa(int(t-Spring)+1) + "f"
	default:
		return "?"
	}
}

// Name 控制台展示用的中文牌名
func (t TileType) Name() string {
	switch {
	case t.IsCharacter():
		return strconv.Itoa(int(t-Man1)+1) + "万"
	case t.IsCircle():
		return strconv.Itoa(int(t-Pin1)+1) + "筒"
	case t.IsBamboo():
		return strconv.Itoa(int(t-So1)+1) + "条"
	case t.IsHonour():
		names := []string{"东", "南", "西", "北", "白", "发", "中"}
		return names[t-East]
	case t.IsSeason():
		names := []string{"春", "夏", "秋", "冬"}
		return names[t-Spring]
	default:
		return "未知"
	}
}

func (t Tile) String() string { return t.Type.String() }

// Equal 只比较牌种
func (t Tile) Equal(other Tile) bool { return t.Type == other.Type }

// Less 按牌种排序
func (t Tile) Less(other Tile) bool { return t.Type < other.Type }

var suffixBase = map[byte]struct {
	base  TileType
	limit int
}{
	'm': {Man1, 9},
	'p': {Pin1, 9},
	's': {So1, 9},
	'z': {East, 7},
	'f': {Spring, 4},
}

// ParseTiles 解析 "123m456p789s11z" 形式的牌串，同种牌的 ID 依次递增
func ParseTiles(s string) ([]Tile, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	var out []Tile
	var pending []int
	seen := make(map[TileType]int)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			pending = append(pending, int(c-'0'))
			continue
		}
		suit, ok := suffixBase[c]
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidTile, c, i)
		}
		if len(pending) == 0 {
			return nil, fmt.Errorf("%w: suffix %q without numbers at %d", ErrInvalidTile, c, i)
		}
		for _, n := range pending {
			if n < 1 || n > suit.limit {
				return nil, fmt.Errorf("%w: %d%c", ErrInvalidTile, n, c)
			}
			tt := suit.base + TileType(n-1)
			out = append(out, Tile{Type: tt, ID: seen[tt]})
			seen[tt]++
		}
		pending = pending[:0]
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: trailing numbers without suffix", ErrInvalidTile)
	}
	return out, nil
}

// FormatTiles ParseTiles 的逆操作，按输入顺序输出，同花色连续的牌合并后缀
func FormatTiles(tiles []Tile) string {
	var b strings.Builder
	var last byte
	for i, t := range tiles {
		str := t.Type.String()
		digit, suffix := str[:len(str)-1], str[len(str)-1]
		if i > 0 && suffix != last {
			b.WriteByte(last)
		}
		b.WriteString(digit)
		last = suffix
	}
	if len(tiles) > 0 {
		b.WriteByte(last)
	}
	return b.String()
}
