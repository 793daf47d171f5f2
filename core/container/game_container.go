package container

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"gomahjong/common/cache"
	"gomahjong/common/config"
	"gomahjong/common/log"
	"gomahjong/core/domain/repository"
	"gomahjong/core/infrastructure/message"
	"gomahjong/core/infrastructure/persistence"
	"gomahjong/framework/shanten"
	"gomahjong/runtime/game"
)

// GameContainer 装配距离表、向听数计算器以及对局记录的各个去向
type GameContainer struct {
	*BaseContainer
	cfg        *config.Config
	Table      *shanten.DistanceTable
	Evaluator  shanten.HandEvaluator
	Engine     *shanten.Evaluator // 未经缓存，校验与批量计算使用
	TableStore *persistence.TableStore
	RoundRepo  repository.RoundRecordRepository
	cache      *cache.GeneralCache
	nats       *message.NatsClient
	closed     bool
	mu         sync.Mutex
}

// NewGameContainer 按配置连接外部依赖并加载距离表
func NewGameContainer(ctx context.Context, cfg *config.Config) (*GameContainer, error) {
	base, err := NewBase(ctx, cfg.DatabaseConf)
	if err != nil {
		return nil, fmt.Errorf("基础容器初始化失败: %w", err)
	}
	c := &GameContainer{BaseContainer: base, cfg: cfg}

	if base.GetRedis() != nil && cfg.Table.RedisKey != "" {
		c.TableStore = persistence.NewTableStore(base.GetRedis(), cfg.Table.RedisKey)
	}
	if base.GetMongo() != nil {
		c.RoundRepo = persistence.NewRoundRecordRepository(base.GetMongo())
	}
	if cfg.Nats.URL != "" {
		nc := message.NewNatsClient()
		if err := nc.Run(cfg.Nats.URL); err != nil {
			_ = c.Close()
			return nil, err
		}
		c.nats = nc
	}

	if err := c.loadTable(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.buildEvaluator(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// loadTable 优先本地文件，其次 redis，都没有时现场生成
func (c *GameContainer) loadTable(ctx context.Context) error {
	start := time.Now()
	var (
		table  *shanten.DistanceTable
		source string
		err    error
	)
	switch {
	case c.cfg.Table.Path != "":
		source = c.cfg.Table.Path
		table, err = shanten.LoadFile(c.cfg.Table.Path)
	case c.TableStore != nil:
		source = "redis:" + c.cfg.Table.RedisKey
		table, err = c.TableStore.Load(ctx)
	default:
		source = "generated"
		log.Warn("未配置距离表来源，现场生成")
		table, err = shanten.GenerateTable()
	}
	if err != nil {
		return fmt.Errorf("加载距离表失败 (%s): %w", source, err)
	}
	c.Table = table
	log.Info("距离表加载完成, 来源 %s, 条目 %d, 耗时 %v", source, table.Len(), time.Since(start))
	return nil
}

func (c *GameContainer) buildEvaluator() error {
	mode, err := shanten.ParseMergeMode(c.cfg.Table.Merge)
	if err != nil {
		return err
	}
	c.Engine = shanten.NewEvaluator(c.Table, shanten.WithMergeMode(mode))
	c.Evaluator = c.Engine
	if c.cfg.Cache.MaxCost > 0 {
		ttl := time.Duration(c.cfg.Cache.TtlSeconds) * time.Second
		gc, err := cache.NewGeneralCache(c.cfg.Cache.MaxCost, ttl)
		if err != nil {
			return err
		}
		c.cache = gc
		c.Evaluator = shanten.NewCachedEvaluator(c.Engine, gc)
	}
	log.Info("向听数计算器就绪, 合并方式 %s, 缓存容量 %d", mode, c.cfg.Cache.MaxCost)
	return nil
}

// Recorders 控制台输出加上已配置的 mongodb、nats
func (c *GameContainer) Recorders(out io.Writer) game.Recorders {
	rs := game.Recorders{game.NewConsoleRecorder(out)}
	if c.RoundRepo != nil {
		rs = append(rs, persistence.NewRoundRecorder(c.RoundRepo))
	}
	if c.nats != nil {
		rs = append(rs, message.NewTurnPublisher(c.nats, c.cfg.Nats.Subject))
	}
	return rs
}

// Nats 未配置时为 nil
func (c *GameContainer) Nats() *message.NatsClient {
	return c.nats
}

// Close 关闭容器资源（幂等操作，可以安全地多次调用）
func (c *GameContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.nats != nil {
		_ = c.nats.Close()
	}
	if c.cache != nil {
		c.cache.Close()
	}
	if err := c.BaseContainer.Close(); err != nil {
		log.Error("BaseContainer 关闭失败: %v", err)
		return err
	}
	log.Info("GameContainer 已关闭")
	return nil
}
