package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gomahjong/common/log"
	"gomahjong/framework/shanten"

	"github.com/google/uuid"
)

// Options 对局参数
type Options struct {
	Rounds        int
	InitialPoints int
	OpenSimples   bool // 食断，只记录不参与计算
	UseSeasons    bool
	Seed          int64
}

// Game 四人单机模拟：只摸打，不处理鸣牌与和牌点数
type Game struct {
	opts       Options
	evaluator  shanten.HandEvaluator
	players    [SeatCount]*Player
	discarders [SeatCount]Discarder
	wall       *Wall
	situation  Situation
	recorder   Recorder
}

// NewGame discarders 长度为 1 时四个座位共用
func NewGame(opts Options, evaluator shanten.HandEvaluator, recorder Recorder, discarders ...Discarder) (*Game, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("缺少向听数计算器")
	}
	if len(discarders) != 1 && len(discarders) != SeatCount {
		return nil, fmt.Errorf("需要 1 或 %d 个出牌策略, 实际 %d", SeatCount, len(discarders))
	}
	if opts.Rounds <= 0 {
		opts.Rounds = 1
	}
	if opts.InitialPoints == 0 {
		opts.InitialPoints = InitialPoints
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if recorder == nil {
		recorder = Recorders{}
	}

	g := &Game{
		opts:      opts,
		evaluator: evaluator,
		wall:      NewWall(rand.New(rand.NewSource(seed)), opts.UseSeasons),
		situation: Situation{DealerIndex: 0, RoundWind: WindEast, RoundNumber: 1},
		recorder:  recorder,
	}
	for seat := 0; seat < SeatCount; seat++ {
		g.players[seat] = NewPlayer(seat, "bot-"+uuid.NewString()[:8], opts.InitialPoints)
		if len(discarders) == 1 {
			g.discarders[seat] = discarders[0]
		} else {
			g.discarders[seat] = discarders[seat]
		}
	}
	return g, nil
}

func (g *Game) Player(seat int) *Player {
	return g.players[seat]
}

func (g *Game) Wall() *Wall {
	return g.wall
}

func (g *Game) Situation() Situation {
	return g.situation
}

// Deal 洗牌后按座位每人 3 轮各 4 张，再各 1 张，最后理牌
func (g *Game) Deal() error {
	g.wall.Reset()
	for _, p := range g.players {
		p.Hand.Reset()
	}
	for i := 0; i < 3; i++ {
		for _, p := range g.seatOrder() {
			for j := 0; j < 4; j++ {
				if err := g.drawTo(p); err != nil {
					return err
				}
			}
		}
	}
	for _, p := range g.seatOrder() {
		if err := g.drawTo(p); err != nil {
			return err
		}
		p.Hand.Sort()
	}
	return nil
}

// seatOrder 从庄家开始
func (g *Game) seatOrder() []*Player {
	out := make([]*Player, 0, SeatCount)
	for i := 0; i < SeatCount; i++ {
		out = append(out, g.players[(g.situation.DealerIndex+i)%SeatCount])
	}
	return out
}

func (g *Game) drawTo(p *Player) error {
	t, ok := g.wall.Draw()
	if !ok {
		return fmt.Errorf("配牌时牌山不足")
	}
	p.Hand.Add(t)
	return nil
}

// evaluate 计算向听数并计时
func (g *Game) evaluate(hand []shanten.Tile) (int, time.Duration, error) {
	start := time.Now()
	sh, err := g.evaluator.Evaluate(hand)
	return sh, time.Since(start), err
}

// PlayRound 打一局：牌山摸完或有人自摸为止
func (g *Game) PlayRound(ctx context.Context) (*RoundRecord, error) {
	if err := g.Deal(); err != nil {
		return nil, err
	}
	round := &RoundRecord{
		ID:          uuid.NewString(),
		RoundNumber: g.situation.RoundNumber,
		RoundWind:   g.situation.RoundWind.String(),
		DealerIndex: g.situation.DealerIndex,
		WinnerSeat:  -1,
		StartTime:   time.Now(),
	}
	log.Debug("第 %d 局开始, id=%s, 庄家 %d", round.RoundNumber, round.ID, round.DealerIndex)

	turns := NewTurnManager(g.situation.DealerIndex)
	for g.wall.Remaining() > 0 {
		if err := ctx.Err(); err != nil {
			return round, err
		}
		seat := turns.NextTurn()
		turn, err := g.playTurn(ctx, seat, len(round.Turns))
		if err != nil {
			return round, fmt.Errorf("座位 %d: %w", seat, err)
		}
		round.Turns = append(round.Turns, turn)
		if err := g.recorder.RecordTurn(ctx, round, turn); err != nil {
			return round, err
		}
		if turn.Win {
			round.WinnerSeat = seat
			break
		}
	}

	round.Remaining = g.wall.Remaining()
	round.EndTime = time.Now()
	if err := g.recorder.RecordRound(ctx, round); err != nil {
		return round, err
	}
	return round, nil
}

func (g *Game) playTurn(ctx context.Context, seat int, seq int) (TurnRecord, error) {
	p := g.players[seat]
	drawn, _ := g.wall.Draw()
	p.Hand.Add(drawn)

	before, drawLatency, err := g.evaluate(p.Hand.Tiles())
	if err != nil {
		return TurnRecord{}, err
	}
	turn := TurnRecord{
		Sequence:        seq,
		Seat:            seat,
		Drawn:           tileName(drawn),
		ShantenBefore:   before,
		ShantenAfter:    before,
		DrawEvalLatency: drawLatency,
	}
	if before == -1 {
		p.Hand.Sort()
		turn.Win = true
		turn.Hand = p.Hand.String()
		return turn, nil
	}

	idx, err := g.discarders[seat].Discard(ctx, p, before)
	if err != nil {
		return TurnRecord{}, err
	}
	discarded, err := p.Hand.Remove(idx)
	if err != nil {
		return TurnRecord{}, err
	}
	p.Hand.Sort()

	after, latency, err := g.evaluate(p.Hand.Tiles())
	if err != nil {
		return TurnRecord{}, err
	}
	turn.Discarded = tileName(discarded)
	turn.Hand = p.Hand.String()
	turn.ShantenAfter = after
	turn.EvalLatency = latency
	return turn, nil
}

// Run 依次打完配置的局数，每局后轮庄
func (g *Game) Run(ctx context.Context) ([]*RoundRecord, error) {
	rounds := make([]*RoundRecord, 0, g.opts.Rounds)
	for i := 0; i < g.opts.Rounds; i++ {
		round, err := g.PlayRound(ctx)
		if err != nil {
			return rounds, err
		}
		rounds = append(rounds, round)
		g.situation.Advance()
	}
	return rounds, nil
}
