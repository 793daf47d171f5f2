package message

import (
	"context"
	"errors"

	"gomahjong/common/log"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("nats not connected")

// Client 发布端最小接口，测试中可替换
type Client interface {
	SendMessage(subject string, data []byte) error
	Close() error
}

// NatsClient 不能及时发现 nats 服务关闭
type NatsClient struct {
	conn *nats.Conn
}

func NewNatsClient() *NatsClient {
	return &NatsClient{}
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) Run(url string) error {
	log.Info("nats 正在连接, url:%s", url)
	var err error
	nc.conn, err = nats.Connect(url, nats.Name("gomahjong"))
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	log.Info("nats 连接成功, url:%s", url)
	return nil
}

// Subscribe 消息写入 readChan，ctx 取消后退订，未送出的消息丢弃
func (nc *NatsClient) Subscribe(ctx context.Context, subject string, readChan chan<- []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	sub, err := nc.conn.Subscribe(subject, deliver(ctx, readChan))
	if err != nil {
		log.Error("nats sub err:%v", err)
		return err
	}
	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) && !errors.Is(err, nats.ErrBadSubscription) {
			log.Warn("nats 退订失败: %v", err)
		}
	}()
	return nil
}

// deliver 回调在 ctx 取消后立即返回，不阻塞 nats 的分发协程
func deliver(ctx context.Context, readChan chan<- []byte) nats.MsgHandler {
	return func(message *nats.Msg) {
		select {
		case readChan <- message.Data:
		case <-ctx.Done():
		}
	}
}

func (nc *NatsClient) SendMessage(subject string, data []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	return nc.conn.Publish(subject, data)
}

func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	if err := nc.conn.Drain(); err != nil {
		nc.conn.Close()
	}
	log.Info("NATS 连接已关闭")
	return nil
}
