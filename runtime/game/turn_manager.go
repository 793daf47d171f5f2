package game

// Situation 场况
type Situation struct {
	DealerIndex int  // 庄家座位(0-3)
	RoundWind   Wind // 场风
	RoundNumber int  // 第几局，从 1 开始
}

// Advance 庄家轮换，四局后场风前进
func (s *Situation) Advance() {
	s.RoundNumber++
	s.DealerIndex = (s.DealerIndex + 1) % SeatCount
	if s.DealerIndex == 0 {
		s.RoundWind = (s.RoundWind + 1) % 4
	}
}

// SeatWind 座位的自风
func (s *Situation) SeatWind(seat int) Wind {
	return Wind((seat - s.DealerIndex + SeatCount) % SeatCount)
}

type TurnManager struct {
	TurnPointer int // 当前出牌玩家座位，-1 表示尚未开始
}

// NewTurnManager 从庄家的上家开始，第一次 NextTurn 即轮到庄家
func NewTurnManager(dealer int) *TurnManager {
	return &TurnManager{TurnPointer: (dealer + SeatCount - 1) % SeatCount}
}

// NextTurn 下一个玩家出牌
func (tm *TurnManager) NextTurn() int {
	tm.TurnPointer = (tm.TurnPointer + 1) % SeatCount
	return tm.TurnPointer
}

// GetCurrentPlayer 获取当前出牌玩家座位
func (tm *TurnManager) GetCurrentPlayer() int {
	return tm.TurnPointer
}
