package persistence

import (
	"context"
	"errors"
	"time"

	"gomahjong/common/database"
	"gomahjong/common/log"
	"gomahjong/common/utils"
	"gomahjong/core/domain/entity"
	"gomahjong/core/domain/repository"
	"gomahjong/runtime/game"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const roundRecordCollection = "round_records"

type RoundRecordRepository struct {
	mongo *database.MongoManager
}

func NewRoundRecordRepository(mongo *database.MongoManager) repository.RoundRecordRepository {
	return &RoundRecordRepository{mongo: mongo}
}

// SaveRoundRecord 保存局记录（每局一个文档）
func (r *RoundRecordRepository) SaveRoundRecord(ctx context.Context, round *entity.RoundRecord) error {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	_, err := collection.InsertOne(ctx, roundRecordToBson(round))
	if err != nil {
		log.Error("保存局记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	return nil
}

// FindRoundRecord 按 round_id 查找
func (r *RoundRecordRepository) FindRoundRecord(ctx context.Context, roundID string) (*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	var doc bson.M
	err := collection.FindOne(ctx, bson.M{"round_id": roundID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrRoundRecordNotFound
		}
		log.Error("查询局记录失败: %v", err)
		return nil, err
	}
	return docToRoundRecord(doc), nil
}

// FindRecentRoundRecords 最近的局记录
func (r *RoundRecordRepository) FindRecentRoundRecords(ctx context.Context, limit int) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("查询局记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*entity.RoundRecord
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		result = append(result, docToRoundRecord(doc))
	}
	return result, cursor.Err()
}

// RoundRecorder 局结束时写入 mongodb，每巡不落库
type RoundRecorder struct {
	repo repository.RoundRecordRepository
}

func NewRoundRecorder(repo repository.RoundRecordRepository) *RoundRecorder {
	return &RoundRecorder{repo: repo}
}

func (r *RoundRecorder) RecordTurn(context.Context, *game.RoundRecord, game.TurnRecord) error {
	return nil
}

func (r *RoundRecorder) RecordRound(ctx context.Context, round *game.RoundRecord) error {
	return r.repo.SaveRoundRecord(ctx, FromGameRound(round))
}

// FromGameRound 对局记录转为存储实体
func FromGameRound(round *game.RoundRecord) *entity.RoundRecord {
	events := make([]entity.RoundEvent, len(round.Turns))
	for i, t := range round.Turns {
		eventType := entity.EventTypeDiscardTile
		if t.Win {
			eventType = entity.EventTypeTsumo
		}
		events[i] = entity.RoundEvent{
			Sequence:       t.Sequence,
			EventType:      eventType,
			SeatIndex:      t.Seat,
			Drawn:          t.Drawn,
			Discarded:      t.Discarded,
			ShantenBefore:  t.ShantenBefore,
			ShantenAfter:   t.ShantenAfter,
			DrawEvalMicros: t.DrawEvalLatency.Microseconds(),
			EvalMicros:     t.EvalLatency.Microseconds(),
		}
	}
	return &entity.RoundRecord{
		ID:          primitive.NewObjectID(),
		RoundID:     round.ID,
		RoundNumber: round.RoundNumber,
		RoundWind:   round.RoundWind,
		DealerIndex: round.DealerIndex,
		WinnerSeat:  round.WinnerSeat,
		Remaining:   round.Remaining,
		Events:      events,
		StartTime:   round.StartTime,
		EndTime:     round.EndTime,
		CreatedAt:   time.Now(),
	}
}

// ==================== 转换辅助方法 ====================

func roundRecordToBson(round *entity.RoundRecord) bson.M {
	events := make([]bson.M, len(round.Events))
	for i, e := range round.Events {
		events[i] = bson.M{
			"sequence":       e.Sequence,
			"event_type":     e.EventType,
			"seat_index":     e.SeatIndex,
			"drawn":          e.Drawn,
			"discarded":      e.Discarded,
			"shanten_before": e.ShantenBefore,
			"shanten_after":    e.ShantenAfter,
			"draw_eval_micros": e.DrawEvalMicros,
			"eval_micros":      e.EvalMicros,
		}
	}
	return bson.M{
		"_id":          round.ID,
		"round_id":     round.RoundID,
		"round_number": round.RoundNumber,
		"round_wind":   round.RoundWind,
		"dealer_index": round.DealerIndex,
		"winner_seat":  round.WinnerSeat,
		"remaining":    round.Remaining,
		"events":       events,
		"start_time":   round.StartTime,
		"end_time":     round.EndTime,
		"created_at":   round.CreatedAt,
	}
}

func docToRoundRecord(doc bson.M) *entity.RoundRecord {
	var events []entity.RoundEvent
	if eventsDoc, ok := doc["events"].(bson.A); ok {
		events = make([]entity.RoundEvent, 0, len(eventsDoc))
		for _, e := range eventsDoc {
			eMap, ok := e.(bson.M)
			if !ok {
				continue
			}
			events = append(events, entity.RoundEvent{
				Sequence:       utils.ToInt(eMap["sequence"]),
				EventType:      utils.ToString(eMap["event_type"]),
				SeatIndex:      utils.ToInt(eMap["seat_index"]),
				Drawn:          utils.ToString(eMap["drawn"]),
				Discarded:      utils.ToString(eMap["discarded"]),
				ShantenBefore:  utils.ToInt(eMap["shanten_before"]),
				ShantenAfter:   utils.ToInt(eMap["shanten_after"]),
				DrawEvalMicros: utils.ToInt64(eMap["draw_eval_micros"]),
				EvalMicros:     utils.ToInt64(eMap["eval_micros"]),
			})
		}
	}

	id, _ := doc["_id"].(primitive.ObjectID)
	return &entity.RoundRecord{
		ID:          id,
		RoundID:     utils.ToString(doc["round_id"]),
		RoundNumber: utils.ToInt(doc["round_number"]),
		RoundWind:   utils.ToString(doc["round_wind"]),
		DealerIndex: utils.ToInt(doc["dealer_index"]),
		WinnerSeat:  utils.ToInt(doc["winner_seat"]),
		Remaining:   utils.ToInt(doc["remaining"]),
		Events:      events,
		StartTime:   utils.ToTime(doc["start_time"]),
		EndTime:     utils.ToTime(doc["end_time"]),
		CreatedAt:   utils.ToTime(doc["created_at"]),
	}
}
