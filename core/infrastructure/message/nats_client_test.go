package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestDeliver(t *testing.T) {
	readChan := make(chan []byte, 1)
	deliver(context.Background(), readChan)(&nats.Msg{Data: []byte("turn")})
	if got := string(<-readChan); got != "turn" {
		t.Fatalf("delivered %q", got)
	}
}

func TestDeliver_ReturnsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	readChan := make(chan []byte) // 无人读取
	handler := deliver(ctx, readChan)

	done := make(chan struct{})
	go func() {
		handler(&nats.Msg{Data: []byte("late")})
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("handler still blocked after cancel")
	}
}

func TestNatsClient_NotConnected(t *testing.T) {
	nc := NewNatsClient()
	if err := nc.Subscribe(context.Background(), "game.turn", make(chan []byte)); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("subscribe err = %v", err)
	}
	if err := nc.SendMessage("game.turn", nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("send err = %v", err)
	}
	if err := nc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
