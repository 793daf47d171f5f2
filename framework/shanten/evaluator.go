package shanten

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// HandEvaluator 对外唯一入口：给定手牌返回向听数
type HandEvaluator interface {
	Evaluate(hand []Tile) (int, error)
}

// Evaluator 编码 -> 查表 -> 合并。自身无可变状态，可并发调用
type Evaluator struct {
	table *DistanceTable
	mode  MergeMode
}

type Option func(*Evaluator)

// WithMergeMode 指定跨门合并方式
func WithMergeMode(mode MergeMode) Option {
	return func(e *Evaluator) {
		e.mode = mode
	}
}

func NewEvaluator(table *DistanceTable, opts ...Option) *Evaluator {
	e := &Evaluator{table: table, mode: MergeStandard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Mode() MergeMode { return e.mode }

// Evaluate 计算一般型（四面子一雀头）向听数，-1 为和牌，0 为听牌
func (e *Evaluator) Evaluate(hand []Tile) (int, error) {
	return e.EvaluateCounts(Encode(hand))
}

// EvaluateCounts 对已编码的张数矩阵求向听数
func (e *Evaluator) EvaluateCounts(counts CountMatrix) (int, error) {
	if counts.Total() > MaxHand {
		return 0, fmt.Errorf("%w: %d", ErrTooManyTiles, counts.Total())
	}
	var entries [4]DistanceEntry
	for f, id := range counts.IDs() {
		entry, err := e.table.Lookup(id)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", Family(f), err)
		}
		entries[f] = entry
	}
	return CombineWith(e.mode, entries)
}

// EvaluateAll 并发计算多副手牌，并发数不超过 GOMAXPROCS，任一失败返回第一个错误
func EvaluateAll(ctx context.Context, evaluator HandEvaluator, hands [][]Tile) ([]int, error) {
	out := make([]int, len(hands))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, hand := range hands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := evaluator.Evaluate(hand)
			if err != nil {
				return fmt.Errorf("hand %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
