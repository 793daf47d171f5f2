package message

import (
	"context"
	"encoding/json"

	"gomahjong/common/log"
	"gomahjong/runtime/game"
)

const (
	EventTurn  = "turn"
	EventRound = "round"
)

// TurnEvent 发布到 nats 的消息体
type TurnEvent struct {
	Type        string           `json:"type"`
	RoundID     string           `json:"roundId"`
	RoundNumber int              `json:"roundNumber"`
	Turn        *game.TurnRecord `json:"turn,omitempty"`
	WinnerSeat  *int             `json:"winnerSeat,omitempty"`
	Turns       int              `json:"turns,omitempty"`
}

// TurnPublisher 每巡与每局结束各发布一条事件
type TurnPublisher struct {
	client  Client
	subject string
}

func NewTurnPublisher(client Client, subject string) *TurnPublisher {
	return &TurnPublisher{client: client, subject: subject}
}

func (p *TurnPublisher) RecordTurn(_ context.Context, round *game.RoundRecord, turn game.TurnRecord) error {
	return p.publish(TurnEvent{
		Type:        EventTurn,
		RoundID:     round.ID,
		RoundNumber: round.RoundNumber,
		Turn:        &turn,
	})
}

func (p *TurnPublisher) RecordRound(_ context.Context, round *game.RoundRecord) error {
	winner := round.WinnerSeat
	return p.publish(TurnEvent{
		Type:        EventRound,
		RoundID:     round.ID,
		RoundNumber: round.RoundNumber,
		WinnerSeat:  &winner,
		Turns:       len(round.Turns),
	})
}

func (p *TurnPublisher) publish(event TurnEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.SendMessage(p.subject, data); err != nil {
		log.Error("nats 发送错误, subject=%s, err:%v", p.subject, err)
		return err
	}
	return nil
}
