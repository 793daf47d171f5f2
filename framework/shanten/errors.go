package shanten

import "errors"

// 距离表与向听计算相关错误，均为数据完整性错误而非对局事件
var (
	ErrResource        = errors.New("distance table resource unavailable")
	ErrMalformedRecord = errors.New("malformed distance record")
	ErrDuplicateID     = errors.New("duplicate single kind id")
	ErrUnknownHandID   = errors.New("unknown single kind id")
	ErrUnreachableHand = errors.New("hand unreachable with distance table")
)

var (
	ErrTooManyTiles = errors.New("hand has more than 14 tiles")
	ErrInvalidTile  = errors.New("invalid tile notation")
)
