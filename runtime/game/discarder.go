package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gomahjong/framework/shanten"
)

// Discarder 选择要打出的牌的下标
type Discarder interface {
	Discard(ctx context.Context, p *Player, shantenNum int) (int, error)
}

// ConsoleDiscarder 从输入读取下标，非法输入会重新提示
type ConsoleDiscarder struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleDiscarder(in io.Reader, out io.Writer) *ConsoleDiscarder {
	return &ConsoleDiscarder{in: bufio.NewReader(in), out: out}
}

func (d *ConsoleDiscarder) Discard(ctx context.Context, p *Player, shantenNum int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(d.out, "选择要打出的牌 (从左开始 0-%d) >>> ", p.Hand.Len()-1)
		line, err := d.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("读取输入失败: %w", err)
		}
		idx, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && idx >= 0 && idx < p.Hand.Len() {
			return idx, nil
		}
		fmt.Fprintf(d.out, "无效的下标: %q\n", strings.TrimSpace(line))
		if err != nil {
			return 0, fmt.Errorf("读取输入失败: %w", err)
		}
	}
}

// GreedyDiscarder 逐张试打，选打出后向听数最小的一张；相同时取靠右的牌
type GreedyDiscarder struct {
	evaluator shanten.HandEvaluator
}

func NewGreedyDiscarder(evaluator shanten.HandEvaluator) *GreedyDiscarder {
	return &GreedyDiscarder{evaluator: evaluator}
}

func (d *GreedyDiscarder) Discard(ctx context.Context, p *Player, _ int) (int, error) {
	tiles := p.Hand.Tiles()
	if len(tiles) == 0 {
		return 0, fmt.Errorf("座位 %d 手牌为空", p.Seat)
	}
	best, bestIdx := 0, -1
	rest := make([]shanten.Tile, 0, len(tiles))
	for i := range tiles {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		// 花牌直接打出
		if !tiles[i].Type.IsStandard() {
			return i, nil
		}
		if i > 0 && tiles[i].Equal(tiles[i-1]) {
			continue
		}
		rest = append(rest[:0], tiles[:i]...)
		rest = append(rest, tiles[i+1:]...)
		sh, err := d.evaluator.Evaluate(rest)
		if err != nil {
			return 0, err
		}
		if bestIdx == -1 || sh <= best {
			best, bestIdx = sh, i
		}
	}
	return bestIdx, nil
}
