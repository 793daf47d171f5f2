package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRecord 局记录（每局一个文档）
type RoundRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	RoundID     string             `bson:"round_id"`     // uuid，对外使用
	RoundNumber int                `bson:"round_number"` // 第几局
	RoundWind   string             `bson:"round_wind"`   // 场风 "East", "South", "West", "North"
	DealerIndex int                `bson:"dealer_index"` // 庄家座位
	WinnerSeat  int                `bson:"winner_seat"`  // -1 表示流局
	Remaining   int                `bson:"remaining"`    // 结束时牌山余数
	Events      []RoundEvent       `bson:"events"`       // 事件流（按时间顺序）
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// RoundEvent 一次摸打
type RoundEvent struct {
	Sequence       int    `bson:"sequence"`
	EventType      string `bson:"event_type"`
	SeatIndex      int    `bson:"seat_index"`
	Drawn          string `bson:"drawn"`
	Discarded      string `bson:"discarded"`
	ShantenBefore  int    `bson:"shanten_before"`
	ShantenAfter   int    `bson:"shanten_after"`
	DrawEvalMicros int64  `bson:"draw_eval_micros"` // 摸牌后计算耗时（微秒）
	EvalMicros     int64  `bson:"eval_micros"`      // 打牌后计算耗时（微秒）
}

// 事件类型常量
const (
	EventTypeDiscardTile = "discard_tile" // 摸打
	EventTypeTsumo       = "tsumo"        // 自摸
)
