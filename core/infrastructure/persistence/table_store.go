package persistence

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gomahjong/common/database"
	"gomahjong/common/log"
	"gomahjong/core/domain/repository"
	"gomahjong/framework/shanten"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const digestSuffix = ":blake2b"

// kvStore TableStore 用到的 redis 操作
type kvStore interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// TableStore 把距离表文本整体存放在 redis 的一个 key 下，供多个进程共享。
// 文本的 BLAKE2b-256 摘要存放在 key + ":blake2b"，加载时先校验
type TableStore struct {
	redis kvStore
	key   string
}

func NewTableStore(redis *database.RedisManager, key string) *TableStore {
	return &TableStore{redis: redis, key: key}
}

// Publish 以文本格式写入，不过期。先写表再写摘要
func (s *TableStore) Publish(ctx context.Context, table *shanten.DistanceTable) error {
	var buf bytes.Buffer
	if err := shanten.WriteTable(&buf, table); err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key, buf.String(), 0); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", shanten.ErrResource, s.key, err)
	}
	digest := tableDigest(buf.Bytes())
	if err := s.redis.Set(ctx, s.key+digestSuffix, digest, 0); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", shanten.ErrResource, s.key+digestSuffix, err)
	}
	log.Info("距离表已发布到 redis, key=%s, 条目 %d, 字节 %d, blake2b %s", s.key, table.Len(), buf.Len(), digest[:16])
	return nil
}

// Load key 不存在、摘要不符或 redis 不可用都视为资源错误
func (s *TableStore) Load(ctx context.Context) (*shanten.DistanceTable, error) {
	text, err := s.get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	want, err := s.get(ctx, s.key+digestSuffix)
	if err != nil {
		return nil, err
	}
	if got := tableDigest([]byte(text)); got != want {
		return nil, fmt.Errorf("%w: %w: key %s", shanten.ErrResource, repository.ErrTableDigestMismatch, s.key)
	}
	return shanten.Load(strings.NewReader(text))
}

func (s *TableStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.redis.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %w: key %s", shanten.ErrResource, repository.ErrTableNotPublished, key)
		}
		return "", fmt.Errorf("%w: redis get %s: %v", shanten.ErrResource, key, err)
	}
	return v, nil
}

func tableDigest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
