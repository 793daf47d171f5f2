package database

import (
	"context"
	"fmt"
	"time"

	"gomahjong/common/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoManager struct {
	Cli *mongo.Client
	Db  *mongo.Database
}

func NewMongo(ctx context.Context, mongoConf config.MongoConf) (*MongoManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if mongoConf.Url == "" {
		return nil, fmt.Errorf("mongodb 配置出错: url 为空")
	}
	clientOptions := options.Client().ApplyURI(mongoConf.Url)
	if mongoConf.MinPoolSize > 0 {
		clientOptions.SetMinPoolSize(uint64(mongoConf.MinPoolSize))
	}
	if mongoConf.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(uint64(mongoConf.MaxPoolSize))
	}

	if mongoConf.Username != "" && mongoConf.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: mongoConf.Username,
			Password: mongoConf.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb 连接错误: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb Ping 错误: %w", err)
	}
	return &MongoManager{
		Cli: client,
		Db:  client.Database(mongoConf.Db),
	}, nil
}

func (m *MongoManager) Close() error {
	if m == nil {
		return nil
	}
	return m.Cli.Disconnect(context.TODO())
}
