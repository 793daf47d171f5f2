package repository

import (
	"context"

	"gomahjong/core/domain/entity"
)

// RoundRecordRepository 局记录仓储接口
type RoundRecordRepository interface {
	// SaveRoundRecord 保存局记录
	SaveRoundRecord(ctx context.Context, round *entity.RoundRecord) error

	// FindRoundRecord 按 round_id 查找
	FindRoundRecord(ctx context.Context, roundID string) (*entity.RoundRecord, error)

	// FindRecentRoundRecords 按开始时间倒序
	FindRecentRoundRecords(ctx context.Context, limit int) ([]*entity.RoundRecord, error)
}
