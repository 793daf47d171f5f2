package api

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"testing"
	"time"

	"gomahjong/common/http"
	"gomahjong/core/domain/entity"
	"gomahjong/core/domain/repository"
)

type stubRoundRepo struct {
	records   []*entity.RoundRecord
	lastLimit int
	err       error
}

func (s *stubRoundRepo) SaveRoundRecord(_ context.Context, r *entity.RoundRecord) error {
	s.records = append(s.records, r)
	return nil
}

func (s *stubRoundRepo) FindRoundRecord(_ context.Context, roundID string) (*entity.RoundRecord, error) {
	for _, r := range s.records {
		if r.RoundID == roundID {
			return r, nil
		}
	}
	return nil, repository.ErrRoundRecordNotFound
}

func (s *stubRoundRepo) FindRecentRoundRecords(_ context.Context, limit int) ([]*entity.RoundRecord, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.records[:min(limit, len(s.records))], nil
}

func newRoundServer(repo *stubRoundRepo) *http.HttpServer {
	s := http.NewHttpServer(http.WithMode("test"))
	NewRoundHandler(repo).Register(s, nil)
	return s
}

func sampleRepo() *stubRoundRepo {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &stubRoundRepo{records: []*entity.RoundRecord{
		{
			RoundID: "r-2", RoundNumber: 2, RoundWind: "East", DealerIndex: 1, WinnerSeat: 3, Remaining: 40,
			StartTime: start.Add(time.Hour),
			Events: []entity.RoundEvent{
				{Sequence: 0, EventType: entity.EventTypeDiscardTile, SeatIndex: 1, Drawn: "1万", Discarded: "中", ShantenBefore: 3, ShantenAfter: 3, DrawEvalMicros: 12, EvalMicros: 9},
				{Sequence: 1, EventType: entity.EventTypeTsumo, SeatIndex: 3, Drawn: "5筒", ShantenBefore: -1, ShantenAfter: -1},
			},
		},
		{RoundID: "r-1", RoundNumber: 1, RoundWind: "East", WinnerSeat: -1, StartTime: start},
	}}
}

func TestRounds_Recent(t *testing.T) {
	repo := sampleRepo()
	s := newRoundServer(repo)
	w, env := do(t, s, nethttp.MethodGet, "/api/rounds?limit=1", "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var views []RoundView
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if repo.lastLimit != 1 || len(views) != 1 || views[0].RoundID != "r-2" || views[0].Turns != 2 || views[0].Events != nil {
		t.Fatalf("views = %+v, limit %d", views, repo.lastLimit)
	}

	do(t, s, nethttp.MethodGet, "/api/rounds", "")
	if repo.lastLimit != DefaultRoundLimit {
		t.Fatalf("default limit = %d", repo.lastLimit)
	}
	do(t, s, nethttp.MethodGet, "/api/rounds?limit=5000", "")
	if repo.lastLimit != MaxRoundLimit {
		t.Fatalf("limit should be capped, got %d", repo.lastLimit)
	}
}

func TestRounds_BadLimit(t *testing.T) {
	s := newRoundServer(sampleRepo())
	for _, q := range []string{"0", "-3", "ten"} {
		w, env := do(t, s, nethttp.MethodGet, "/api/rounds?limit="+q, "")
		if w.Code != nethttp.StatusBadRequest || env.Code != http.CodeInvalidParam {
			t.Fatalf("limit=%s: status = %d, body = %s", q, w.Code, w.Body.String())
		}
	}
}

func TestRounds_RepositoryError(t *testing.T) {
	repo := sampleRepo()
	repo.err = errors.Join(repository.ErrMongodb, errors.New("timeout"))
	w, env := do(t, newRoundServer(repo), nethttp.MethodGet, "/api/rounds", "")
	if w.Code != nethttp.StatusInternalServerError || env.Code != http.CodeServerError {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRounds_Get(t *testing.T) {
	s := newRoundServer(sampleRepo())
	w, env := do(t, s, nethttp.MethodGet, "/api/rounds/r-2", "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var view RoundView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Events) != 2 || view.Events[0].DrawEvalMicros != 12 || view.Events[1].EventType != entity.EventTypeTsumo {
		t.Fatalf("view = %+v", view)
	}

	w, env = do(t, s, nethttp.MethodGet, "/api/rounds/missing", "")
	if w.Code != nethttp.StatusNotFound || env.Code != http.CodeNotFound {
		t.Fatalf("missing round status = %d, body = %s", w.Code, w.Body.String())
	}
}
