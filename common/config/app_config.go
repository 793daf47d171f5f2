package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	Table        TableConf    `mapstructure:"table"`
	Cache        CacheConf    `mapstructure:"cache"`
	Game         GameConf     `mapstructure:"game"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	Nats         NatsConfig   `mapstructure:"nats"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// TableConf 距离表来源。path 为空时从 redis 的 redisKey 读取；都为空时现场生成
type TableConf struct {
	Path     string `mapstructure:"path"`
	Merge    string `mapstructure:"merge"`
	RedisKey string `mapstructure:"redisKey"`
}

type CacheConf struct {
	MaxCost    int64 `mapstructure:"maxCost"`
	TtlSeconds int   `mapstructure:"ttlSeconds"`
}

type GameConf struct {
	Rounds        int   `mapstructure:"rounds"`
	InitialPoints int   `mapstructure:"initialPoints"`
	OpenSimples   bool  `mapstructure:"openSimples"` // 食断，仅记录
	UseSeasons    bool  `mapstructure:"useSeasons"`
	Interactive   bool  `mapstructure:"interactive"`
	Seed          int64 `mapstructure:"seed"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
}

type NatsConfig struct {
	URL     string `json:"url" mapstructure:"url"`
	Subject string `json:"subject" mapstructure:"subject"`
}

var (
	mu       sync.RWMutex
	watchers []func(*Config)
)

// Default 未提供配置文件时使用
func Default() *Config {
	cfg := &Config{
		AppName:    "game",
		Log:        LogConf{Level: "info"},
		HttpPort:   8080,
		MetricPort: 0,
		Table:      TableConf{Merge: "standard", RedisKey: "shanten:distances"},
		Cache:      CacheConf{MaxCost: 1 << 16},
		Game: GameConf{
			Rounds:        1,
			InitialPoints: 25000,
		},
		Nats: NatsConfig{Subject: "game.turn"},
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("appName", d.AppName)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("httpPort", d.HttpPort)
	v.SetDefault("table.merge", d.Table.Merge)
	v.SetDefault("table.redisKey", d.Table.RedisKey)
	v.SetDefault("cache.maxCost", d.Cache.MaxCost)
	v.SetDefault("game.rounds", d.Game.Rounds)
	v.SetDefault("game.initialPoints", d.Game.InitialPoints)
	v.SetDefault("nats.subject", d.Nats.Subject)
}

// Load 读取配置文件并监听变更。configFile 为空时只使用默认值与环境变量
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错, err:%w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错, err:%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	Conf = cfg
	mu.Unlock()

	if configFile != "" {
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			next := new(Config)
			if err := v.Unmarshal(next); err != nil || next.Validate() != nil {
				return
			}
			mu.Lock()
			Conf = next
			ws := append([]func(*Config){}, watchers...)
			mu.Unlock()
			for _, w := range ws {
				w(next)
			}
		})
	}
	return cfg, nil
}

// OnChange 注册配置热更新回调
func OnChange(fn func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	watchers = append(watchers, fn)
}

// Current 当前生效的配置
func Current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if Conf == nil {
		return Default()
	}
	return Conf
}

func (c *Config) Validate() error {
	if c.Game.Rounds <= 0 {
		return fmt.Errorf("game.rounds 必须为正数: %d", c.Game.Rounds)
	}
	if c.Game.InitialPoints < 0 {
		return fmt.Errorf("game.initialPoints 不能为负: %d", c.Game.InitialPoints)
	}
	if c.Cache.MaxCost < 0 {
		return fmt.Errorf("cache.maxCost 不能为负: %d", c.Cache.MaxCost)
	}
	switch strings.ToLower(c.Table.Merge) {
	case "", "standard", "legacy":
	default:
		return fmt.Errorf("table.merge 取值 standard 或 legacy: %s", c.Table.Merge)
	}
	return nil
}
