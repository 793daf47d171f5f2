package api

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"gomahjong/common/http"
	"gomahjong/common/log"
	"gomahjong/common/utils"
	"gomahjong/framework/shanten"
)

// MaxBatchHands 单次批量请求的手牌上限
const MaxBatchHands = 256

type ShantenRequest struct {
	Hand string `json:"hand"`
}

type ShantenResponse struct {
	Shanten int    `json:"shanten"`
	Tiles   int    `json:"tiles"`
	Hand    string `json:"hand"`
}

type BatchRequest struct {
	Hands []string `json:"hands"`
}

// ShantenHandler 向听数计算接口
type ShantenHandler struct {
	evaluator shanten.HandEvaluator
	mode      shanten.MergeMode
	tableSize int
	started   time.Time
}

func NewShantenHandler(evaluator shanten.HandEvaluator, mode shanten.MergeMode, tableSize int) *ShantenHandler {
	return &ShantenHandler{
		evaluator: evaluator,
		mode:      mode,
		tableSize: tableSize,
		started:   time.Now(),
	}
}

// Register 注册路由，limiter 为 nil 时不限流
func (h *ShantenHandler) Register(s *http.HttpServer, limiter *utils.KeyedRateLimiter) {
	var middlewares []http.MiddlewareFunc
	if limiter != nil {
		middlewares = append(middlewares, RateLimitMiddleware(limiter))
	}
	g := s.Group("/api", middlewares...)
	g.GET("/health", h.Health)
	g.POST("/shanten", h.Evaluate)
	g.POST("/shanten/batch", h.EvaluateBatch)
}

func (h *ShantenHandler) Health(c *http.Context) error {
	c.Success(map[string]interface{}{
		"status":    "ok",
		"merge":     h.mode.String(),
		"tableSize": h.tableSize,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	})
	return nil
}

func (h *ShantenHandler) Evaluate(c *http.Context) error {
	var req ShantenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.evaluate(req.Hand)
	if err != nil {
		return h.fail(c, err)
	}
	c.Success(resp)
	return nil
}

// EvaluateBatch 并行计算多手牌，任何一手失败整体失败
func (h *ShantenHandler) EvaluateBatch(c *http.Context) error {
	var req BatchRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	if len(req.Hands) == 0 {
		c.BadRequest("hands is empty")
		return nil
	}
	if len(req.Hands) > MaxBatchHands {
		c.BadRequest(fmt.Sprintf("at most %d hands per batch, got %d", MaxBatchHands, len(req.Hands)))
		return nil
	}
	hands := make([][]shanten.Tile, len(req.Hands))
	for i, s := range req.Hands {
		tiles, err := shanten.ParseTiles(s)
		if err != nil {
			return h.fail(c, err)
		}
		hands[i] = tiles
	}
	results, err := shanten.EvaluateAll(c.Request().Context(), h.evaluator, hands)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]ShantenResponse, len(results))
	for i, v := range results {
		out[i] = ShantenResponse{Shanten: v, Tiles: len(hands[i]), Hand: shanten.FormatTiles(hands[i])}
	}
	c.Success(out)
	return nil
}

func (h *ShantenHandler) evaluate(hand string) (*ShantenResponse, error) {
	tiles, err := shanten.ParseTiles(hand)
	if err != nil {
		return nil, err
	}
	v, err := h.evaluator.Evaluate(tiles)
	if err != nil {
		return nil, err
	}
	return &ShantenResponse{Shanten: v, Tiles: len(tiles), Hand: shanten.FormatTiles(tiles)}, nil
}

// fail 手牌本身的问题返回 400，其余交给 500
func (h *ShantenHandler) fail(c *http.Context, err error) error {
	switch {
	case errors.Is(err, shanten.ErrInvalidTile):
		c.BadRequest(err.Error())
		return nil
	case errors.Is(err, shanten.ErrTooManyTiles),
		errors.Is(err, shanten.ErrUnknownHandID),
		errors.Is(err, shanten.ErrUnreachableHand):
		c.ErrorWithCode(nethttp.StatusBadRequest, http.CodeInvalidHand, err.Error())
		return nil
	case errors.Is(err, context.Canceled):
		return err
	}
	log.Error("向听数计算失败: %v", err)
	return err
}
