package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"gomahjong/framework/shanten"
)

// TurnRecord 一次摸打
type TurnRecord struct {
	Sequence        int           `json:"sequence"`
	Seat            int           `json:"seat"`
	Drawn           string        `json:"drawn"`
	Discarded       string        `json:"discarded,omitempty"`
	Hand            string        `json:"hand"`
	ShantenBefore   int           `json:"shantenBefore"`
	ShantenAfter    int           `json:"shantenAfter"`
	DrawEvalLatency time.Duration `json:"drawEvalLatency"` // 摸牌后计算耗时
	EvalLatency     time.Duration `json:"evalLatency"`     // 打牌后计算耗时
	Win             bool          `json:"win"`
}

// RoundRecord 一局
type RoundRecord struct {
	ID          string       `json:"id"`
	RoundNumber int          `json:"roundNumber"`
	RoundWind   string       `json:"roundWind"`
	DealerIndex int          `json:"dealerIndex"`
	Turns       []TurnRecord `json:"turns"`
	WinnerSeat  int          `json:"winnerSeat"` // -1 表示流局
	Remaining   int          `json:"remaining"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     time.Time    `json:"endTime"`
}

func (r *RoundRecord) Exhausted() bool {
	return r.WinnerSeat < 0
}

// Recorder 对局事件的去向：控制台、mongodb、nats
type Recorder interface {
	RecordTurn(ctx context.Context, round *RoundRecord, turn TurnRecord) error
	RecordRound(ctx context.Context, round *RoundRecord) error
}

// Recorders 依次调用，遇错即返回
type Recorders []Recorder

func (rs Recorders) RecordTurn(ctx context.Context, round *RoundRecord, turn TurnRecord) error {
	for _, r := range rs {
		if err := r.RecordTurn(ctx, round, turn); err != nil {
			return err
		}
	}
	return nil
}

func (rs Recorders) RecordRound(ctx context.Context, round *RoundRecord) error {
	for _, r := range rs {
		if err := r.RecordRound(ctx, round); err != nil {
			return err
		}
	}
	return nil
}

// ConsoleRecorder 控制台输出，展示逻辑只在这里
type ConsoleRecorder struct {
	out io.Writer
}

func NewConsoleRecorder(out io.Writer) *ConsoleRecorder {
	return &ConsoleRecorder{out: out}
}

func (c *ConsoleRecorder) RecordTurn(_ context.Context, _ *RoundRecord, turn TurnRecord) error {
	ms := float64(turn.EvalLatency.Microseconds()) / 1000.0
	drawMs := float64(turn.DrawEvalLatency.Microseconds()) / 1000.0
	fmt.Fprintf(c.out, "=== 玩家 %d ===\n", turn.Seat)
	fmt.Fprintf(c.out, "摸牌: %s\n", turn.Drawn)
	if turn.Win {
		fmt.Fprintf(c.out, "手牌: %s\n自摸和了   计算时间: %.3f [ms]\n\n", turn.Hand, drawMs)
		return nil
	}
	fmt.Fprintf(c.out, "向听数: %d   计算时间: %.3f [ms]\n", turn.ShantenBefore, drawMs)
	fmt.Fprintf(c.out, "打牌: %s\n", turn.Discarded)
	fmt.Fprintf(c.out, "手牌: %s\n", turn.Hand)
	fmt.Fprintf(c.out, "向听数: %d   计算时间: %.3f [ms]\n\n", turn.ShantenAfter, ms)
	return nil
}

func (c *ConsoleRecorder) RecordRound(_ context.Context, round *RoundRecord) error {
	if round.Exhausted() {
		fmt.Fprintf(c.out, "第 %d 局 (%s 场) 流局，共 %d 巡\n", round.RoundNumber, round.RoundWind, len(round.Turns))
		return nil
	}
	fmt.Fprintf(c.out, "第 %d 局 (%s 场) 玩家 %d 和了，余牌 %d\n", round.RoundNumber, round.RoundWind, round.WinnerSeat, round.Remaining)
	return nil
}

func tileName(t shanten.Tile) string {
	return t.Type.Name()
}
