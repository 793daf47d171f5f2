package container

import (
	"context"
	"errors"

	"gomahjong/common/config"
	"gomahjong/common/database"
	"gomahjong/common/log"
)

// BaseContainer 基础容器，管理共享的数据库连接。未配置的数据库不连接
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase 创建基础容器并初始化已配置的依赖
func NewBase(ctx context.Context, conf config.DatabaseConf) (*BaseContainer, error) {
	c := &BaseContainer{}
	if conf.MongoConf.Url != "" {
		mongo, err := database.NewMongo(ctx, conf.MongoConf)
		if err != nil {
			return nil, err
		}
		c.mongo = mongo
		log.Info("mongodb 连接成功, db=%s", conf.MongoConf.Db)
	}
	if conf.RedisConf.Addr != "" || len(conf.RedisConf.ClusterAddrs) > 0 {
		redis, err := database.NewRedis(ctx, conf.RedisConf)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.redis = redis
		log.Info("redis 连接成功")
	}
	return c, nil
}

// GetMongo 未配置时为 nil
func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

// GetRedis 未配置时为 nil
func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	var errs []error
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
