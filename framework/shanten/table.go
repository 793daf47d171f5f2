package shanten

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	MaxMelds = 4               // 一般型需要 4 个面子
	Width    = MaxMelds + 1    // 每个距离向量 5 项，对应 0-4 个面子
	Infinity = 1 << 20         // 不可达
	fields   = 1 + 2*Width     // 每行 11 个整数
	unreach  = uint8(255)      // 压缩存储中的不可达
	tableCap = 1953125 + 78125 // 5^9 + 5^7，覆盖全部合法 id
)

// MaxDistance 可存储的最大有限距离，更大的值只能写成 >= Infinity 表示不可达
const MaxDistance = int(unreach) - 1

// DistanceEntry 单门距离。U[m]：凑出 m 个面子还差几张（不含雀头）；V[m]：m 个面子加一个雀头
type DistanceEntry struct {
	U [Width]int
	V [Width]int
}

// DistanceTable 只读距离表，加载后不再修改，可被任意数量的协程并发读取
type DistanceTable struct {
	cells   [][2 * Width]uint8
	present []bool
	size    int
}

func newDistanceTable() *DistanceTable {
	return &DistanceTable{
		cells:   make([][2 * Width]uint8, tableCap),
		present: make([]bool, tableCap),
	}
}

func pack(v int) uint8 {
	if v >= int(unreach) {
		return unreach
	}
	return uint8(v)
}

func unpack(v uint8) int {
	if v == unreach {
		return Infinity
	}
	return int(v)
}

func (t *DistanceTable) put(id SingleKindID, e DistanceEntry) error {
	if t.present[id] {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	var c [2 * Width]uint8
	for m := 0; m < Width; m++ {
		c[m] = pack(e.U[m])
		c[Width+m] = pack(e.V[m])
	}
	t.cells[id] = c
	t.present[id] = true
	t.size++
	return nil
}

// Load 解析距离表，每行 "<id> <u0..u4> <v0..v4>"，空行忽略。
// 任何一行不合法都会拒绝整张表
func Load(r io.Reader) (*DistanceTable, error) {
	t := newDistanceTable()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != fields {
			return nil, fmt.Errorf("%w: line %d: expected %d integers, got %d", ErrMalformedRecord, lineNo, fields, len(parts))
		}
		var nums [fields]int
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: line %d: field %d %q", ErrMalformedRecord, lineNo, i+1, p)
			}
			if i > 0 && n > MaxDistance && n < Infinity {
				return nil, fmt.Errorf("%w: line %d: field %d distance %d exceeds %d", ErrMalformedRecord, lineNo, i+1, n, MaxDistance)
			}
			nums[i] = n
		}
		id := SingleKindID(nums[0])
		if _, _, ok := FromSingleKindID(id); !ok {
			return nil, fmt.Errorf("%w: line %d: id %d out of range", ErrMalformedRecord, lineNo, id)
		}
		var e DistanceEntry
		copy(e.U[:], nums[1:1+Width])
		copy(e.V[:], nums[1+Width:])
		if err := t.put(id, e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	return t, nil
}

// LoadFile 从文件加载距离表
func LoadFile(path string) (*DistanceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	defer f.Close()
	return Load(f)
}

// Lookup 查表，不存在的 id 直接报错，不回退为 0 或 Infinity
func (t *DistanceTable) Lookup(id SingleKindID) (DistanceEntry, error) {
	var e DistanceEntry
	if id < 0 || int(id) >= len(t.present) || !t.present[id] {
		return e, fmt.Errorf("%w: %d", ErrUnknownHandID, id)
	}
	c := t.cells[id]
	for m := 0; m < Width; m++ {
		e.U[m] = unpack(c[m])
		e.V[m] = unpack(c[Width+m])
	}
	return e, nil
}

// Len 记录条数
func (t *DistanceTable) Len() int { return t.size }

// WriteTo 按 id 升序输出与 Load 相同的文本格式
func (t *DistanceTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	buf := make([]byte, 0, 64)
	for id := range t.present {
		if !t.present[id] {
			continue
		}
		e, _ := t.Lookup(SingleKindID(id))
		buf = strconv.AppendInt(buf[:0], int64(id), 10)
		for _, v := range e.U {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		for _, v := range e.V {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
		n, err := bw.Write(buf)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// WriteTable 写出距离表，供生成的表落盘或发布
func WriteTable(w io.Writer, table *DistanceTable) error {
	if table == nil {
		return fmt.Errorf("%w: nil table", ErrResource)
	}
	_, err := table.WriteTo(w)
	return err
}
