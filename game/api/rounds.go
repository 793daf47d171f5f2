package api

import (
	"errors"
	"strconv"
	"time"

	"gomahjong/common/http"
	"gomahjong/common/utils"
	"gomahjong/core/domain/entity"
	"gomahjong/core/domain/repository"
)

const (
	DefaultRoundLimit = 20
	MaxRoundLimit     = 100
)

type RoundEventView struct {
	Sequence       int    `json:"sequence"`
	EventType      string `json:"eventType"`
	Seat           int    `json:"seat"`
	Drawn          string `json:"drawn"`
	Discarded      string `json:"discarded,omitempty"`
	ShantenBefore  int    `json:"shantenBefore"`
	ShantenAfter   int    `json:"shantenAfter"`
	DrawEvalMicros int64  `json:"drawEvalMicros"`
	EvalMicros     int64  `json:"evalMicros"`
}

type RoundView struct {
	RoundID     string           `json:"roundId"`
	RoundNumber int              `json:"roundNumber"`
	RoundWind   string           `json:"roundWind"`
	DealerIndex int              `json:"dealerIndex"`
	WinnerSeat  int              `json:"winnerSeat"`
	Remaining   int              `json:"remaining"`
	Turns       int              `json:"turns"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	Events      []RoundEventView `json:"events,omitempty"`
}

// NewRoundView withEvents 为 false 时只返回摘要
func NewRoundView(r *entity.RoundRecord, withEvents bool) RoundView {
	v := RoundView{
		RoundID:     r.RoundID,
		RoundNumber: r.RoundNumber,
		RoundWind:   r.RoundWind,
		DealerIndex: r.DealerIndex,
		WinnerSeat:  r.WinnerSeat,
		Remaining:   r.Remaining,
		Turns:       len(r.Events),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
	if withEvents {
		v.Events = make([]RoundEventView, len(r.Events))
		for i, e := range r.Events {
			v.Events[i] = RoundEventView{
				Sequence:       e.Sequence,
				EventType:      e.EventType,
				Seat:           e.SeatIndex,
				Drawn:          e.Drawn,
				Discarded:      e.Discarded,
				ShantenBefore:  e.ShantenBefore,
				ShantenAfter:   e.ShantenAfter,
				DrawEvalMicros: e.DrawEvalMicros,
				EvalMicros:     e.EvalMicros,
			}
		}
	}
	return v
}

// RoundHandler 对局记录查询
type RoundHandler struct {
	repo repository.RoundRecordRepository
}

func NewRoundHandler(repo repository.RoundRecordRepository) *RoundHandler {
	return &RoundHandler{repo: repo}
}

func (h *RoundHandler) Register(s *http.HttpServer, limiter *utils.KeyedRateLimiter) {
	var middlewares []http.MiddlewareFunc
	if limiter != nil {
		middlewares = append(middlewares, RateLimitMiddleware(limiter))
	}
	g := s.Group("/api/rounds", middlewares...)
	g.GET("", h.Recent)
	g.GET("/:id", h.Get)
}

// Recent GET /api/rounds?limit=N，按开始时间倒序
func (h *RoundHandler) Recent(c *http.Context) error {
	limit, err := ParseLimit(c.GetQuery("limit"))
	if err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	records, err := h.repo.FindRecentRoundRecords(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	out := make([]RoundView, len(records))
	for i, r := range records {
		out[i] = NewRoundView(r, false)
	}
	c.Success(out)
	return nil
}

// Get GET /api/rounds/:id，含逐巡事件
func (h *RoundHandler) Get(c *http.Context) error {
	record, err := h.repo.FindRoundRecord(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRoundRecordNotFound) {
			c.NotFound(err.Error())
			return nil
		}
		return err
	}
	c.Success(NewRoundView(record, true))
	return nil
}

// ParseLimit 空串取默认值，超过上限截断
func ParseLimit(s string) (int, error) {
	if s == "" {
		return DefaultRoundLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, MaxRoundLimit), nil
}
