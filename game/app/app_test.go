package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gomahjong/common/config"
	"gomahjong/core/domain/entity"
	"gomahjong/core/domain/repository"
	"gomahjong/core/infrastructure/message"
	"gomahjong/framework/shanten"
	"gomahjong/runtime/game"
)

func TestGenerateTableAndEvaluate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.dat")
	if err := GenerateTable(path, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := shanten.LoadFile(path); err != nil {
		t.Fatalf("generated file does not load: %v", err)
	}

	cfg := config.Default()
	cfg.Table.Path = path
	var out bytes.Buffer
	if err := Evaluate(context.Background(), cfg, "123456789m123p5s", true, &out); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !strings.Contains(out.String(), "向听数 0") {
		t.Fatalf("output = %q", out.String())
	}
	if err := Evaluate(context.Background(), cfg, "12x", false, &out); err == nil {
		t.Fatalf("invalid notation should fail")
	}
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, message.TurnEvent{
		Type:        message.EventTurn,
		RoundID:     "0123456789abcdef",
		RoundNumber: 2,
		Turn:        &game.TurnRecord{Sequence: 5, Seat: 1, ShantenBefore: 3, ShantenAfter: 2},
	})
	winner := 3
	printEvent(&out, message.TurnEvent{Type: message.EventRound, RoundID: "abc", RoundNumber: 2, WinnerSeat: &winner, Turns: 40})
	got := out.String()
	if !strings.Contains(got, "[01234567] 第 2 局 第 5 巡 座位 1 向听 3 -> 2") {
		t.Fatalf("turn line = %q", got)
	}
	if !strings.Contains(got, "[abc] 第 2 局结束, 和牌座位 3, 共 40 巡") {
		t.Fatalf("round line = %q", got)
	}
}

func TestPublishTable_NoRedis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.dat")
	if err := GenerateTable(path, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg := config.Default()
	cfg.Table.Path = path
	if err := PublishTable(context.Background(), cfg); err == nil {
		t.Fatalf("publish without redis should fail")
	}
}

type historyRepo struct {
	records   []*entity.RoundRecord
	lastLimit int
}

func (h *historyRepo) SaveRoundRecord(context.Context, *entity.RoundRecord) error { return nil }

func (h *historyRepo) FindRoundRecord(_ context.Context, roundID string) (*entity.RoundRecord, error) {
	for _, r := range h.records {
		if r.RoundID == roundID {
			return r, nil
		}
	}
	return nil, repository.ErrRoundRecordNotFound
}

func (h *historyRepo) FindRecentRoundRecords(_ context.Context, limit int) ([]*entity.RoundRecord, error) {
	h.lastLimit = limit
	return h.records, nil
}

func TestWriteHistory(t *testing.T) {
	repo := &historyRepo{records: []*entity.RoundRecord{{
		RoundID: "r-1", RoundNumber: 1, RoundWind: "East", WinnerSeat: 2, Remaining: 30,
		StartTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Events: []entity.RoundEvent{
			{Sequence: 0, SeatIndex: 0, Drawn: "1万", Discarded: "中", ShantenBefore: 3, ShantenAfter: 3},
			{Sequence: 1, SeatIndex: 2, Drawn: "5筒", ShantenBefore: -1, ShantenAfter: -1},
		},
	}}}

	var out bytes.Buffer
	if err := writeHistory(context.Background(), repo, 0, "", &out); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if repo.lastLimit != 20 || !strings.Contains(out.String(), "2024-01-02 03:04:05 r-1 第 1 局 (East) 和牌座位 2 共 2 巡") {
		t.Fatalf("limit %d, output %q", repo.lastLimit, out.String())
	}

	out.Reset()
	if err := writeHistory(context.Background(), repo, 500, "r-1", &out); err != nil {
		t.Fatalf("one round: %v", err)
	}
	if !strings.Contains(out.String(), "座位 0 摸 1万 打 中 向听 3 -> 3") {
		t.Fatalf("output %q", out.String())
	}

	if err := writeHistory(context.Background(), repo, 5, "missing", &out); !errors.Is(err, repository.ErrRoundRecordNotFound) {
		t.Fatalf("missing round err = %v", err)
	}
	_ = writeHistory(context.Background(), repo, 500, "", &out)
	if repo.lastLimit != 100 {
		t.Fatalf("limit should be capped, got %d", repo.lastLimit)
	}
}
