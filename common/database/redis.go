package database

import (
	"context"
	"fmt"
	"time"

	"gomahjong/common/config"
	"gomahjong/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
}

// NewRedis 按配置创建单机或集群客户端并 Ping 一次
func NewRedis(ctx context.Context, redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if redisConf.Addr == "" && len(redisConf.ClusterAddrs) == 0 {
		return nil, fmt.Errorf("redis 配置出错: addr 与 clusterAddrs 均为空")
	}

	m := &RedisManager{}
	if len(redisConf.ClusterAddrs) == 0 {
		m.Cli = redis.NewClient(&redis.Options{
			Addr:         redisConf.Addr,
			Password:     redisConf.Password, // 如果没有密码，这个字段为空字符串，Redis会忽略
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		m.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	cli, _ := m.GetClient()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return m, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Set(ctx, key, value, expiration).Err()
}

// Get key 不存在时返回 redis.Nil，由调用方判断
func (r *RedisManager) Get(ctx context.Context, key string) (string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return "", err
	}
	return cli.Get(ctx, key).Result()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
