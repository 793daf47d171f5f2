package message

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gomahjong/runtime/game"
)

type captureClient struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *captureClient) SendMessage(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *captureClient) Close() error { return nil }

func TestTurnPublisher(t *testing.T) {
	client := &captureClient{}
	p := NewTurnPublisher(client, "game.turn")
	round := &game.RoundRecord{ID: "r1", RoundNumber: 1, WinnerSeat: -1}
	ctx := context.Background()

	if err := p.RecordTurn(ctx, round, game.TurnRecord{Seat: 2, Drawn: "东", ShantenBefore: 1}); err != nil {
		t.Fatalf("record turn: %v", err)
	}
	round.Turns = make([]game.TurnRecord, 5)
	if err := p.RecordRound(ctx, round); err != nil {
		t.Fatalf("record round: %v", err)
	}
	if len(client.payloads) != 2 || client.subjects[0] != "game.turn" {
		t.Fatalf("published %d messages to %v", len(client.payloads), client.subjects)
	}

	var turn TurnEvent
	if err := json.Unmarshal(client.payloads[0], &turn); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if turn.Type != EventTurn || turn.RoundID != "r1" || turn.Turn == nil || turn.Turn.Seat != 2 {
		t.Fatalf("turn event = %+v", turn)
	}

	var summary TurnEvent
	if err := json.Unmarshal(client.payloads[1], &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary.Type != EventRound || summary.WinnerSeat == nil || *summary.WinnerSeat != -1 || summary.Turns != 5 {
		t.Fatalf("round event = %+v", summary)
	}
}

func TestTurnPublisher_SendError(t *testing.T) {
	p := NewTurnPublisher(&captureClient{err: ErrNotConnected}, "game.turn")
	err := p.RecordRound(context.Background(), &game.RoundRecord{})
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v", err)
	}
}
