package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomahjong/common/config"
	"gomahjong/common/http"
	"gomahjong/common/log"
	"gomahjong/common/utils"
	"gomahjong/core/container"
	"gomahjong/core/domain/repository"
	"gomahjong/core/infrastructure/message"
	"gomahjong/framework/shanten"
	"gomahjong/game/api"
	"gomahjong/runtime/game"
)

// Play 控制台模拟对局，interactive 时东家由 in 输入出牌，其余座位为机器人
func Play(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	ctx, cancel := withSignal(ctx)
	defer cancel()

	gameContainer, err := container.NewGameContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeContainer(gameContainer)

	bot := game.NewGreedyDiscarder(gameContainer.Evaluator)
	discarders := []game.Discarder{bot}
	if cfg.Game.Interactive {
		discarders = []game.Discarder{game.NewConsoleDiscarder(in, out), bot, bot, bot}
	}
	g, err := game.NewGame(game.Options{
		Rounds:        cfg.Game.Rounds,
		InitialPoints: cfg.Game.InitialPoints,
		OpenSimples:   cfg.Game.OpenSimples,
		UseSeasons:    cfg.Game.UseSeasons,
		Seed:          cfg.Game.Seed,
	}, gameContainer.Evaluator, gameContainer.Recorders(out), discarders...)
	if err != nil {
		return err
	}

	rounds, err := g.Run(ctx)
	for _, r := range rounds {
		if r.Exhausted() {
			fmt.Fprintf(out, "第 %d 局 (%s) 流局, 共 %d 巡\n", r.RoundNumber, r.RoundWind, len(r.Turns))
		} else {
			fmt.Fprintf(out, "第 %d 局 (%s) 座位 %d 自摸, 共 %d 巡\n", r.RoundNumber, r.RoundWind, r.WinnerSeat, len(r.Turns))
		}
	}
	return err
}

// Serve 启动 HTTP 向听数接口，收到信号后优雅关闭
func Serve(ctx context.Context, cfg *config.Config, rate, burst int) error {
	ctx, cancel := withSignal(ctx)
	defer cancel()

	gameContainer, err := container.NewGameContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeContainer(gameContainer)

	server := http.NewHttpServer(http.WithPort(cfg.HttpPort))
	server.Use(http.RequestIDMiddleware(), http.LoggerMiddleware(), http.CorsMiddleware())
	var limiter *utils.KeyedRateLimiter
	if rate > 0 {
		limiter = utils.NewKeyedRateLimiter(rate, burst)
	}
	api.NewShantenHandler(gameContainer.Evaluator, gameContainer.Engine.Mode(), gameContainer.Table.Len()).
		Register(server, limiter)
	if gameContainer.RoundRepo != nil {
		api.NewRoundHandler(gameContainer.RoundRepo).Register(server, limiter)
	} else {
		log.Info("未配置 mongodb，不提供对局记录查询")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP 服务启动, 端口 %d", server.GetPort())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("正在关闭 HTTP 服务...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("关闭 HTTP 服务超时: %v", err)
		return err
	}
	log.Info("HTTP 服务已关闭")
	return nil
}

// Evaluate 计算一手牌，verify 时与深度搜索结果比对
func Evaluate(ctx context.Context, cfg *config.Config, hand string, verify bool, out io.Writer) error {
	tiles, err := shanten.ParseTiles(hand)
	if err != nil {
		return err
	}
	gameContainer, err := container.NewGameContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeContainer(gameContainer)

	start := time.Now()
	v, err := gameContainer.Evaluator.Evaluate(tiles)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: 向听数 %d (%s, %v)\n", shanten.FormatTiles(tiles), v, gameContainer.Engine.Mode(), time.Since(start))
	if verify {
		want := shanten.NewSearcher().ShantenNormal(shanten.Hand34FromTiles(tiles))
		if want != v {
			return fmt.Errorf("距离表结果 %d 与深度搜索结果 %d 不一致", v, want)
		}
		fmt.Fprintf(out, "深度搜索结果一致\n")
	}
	return nil
}

// GenerateTable 生成距离表写入 path，path 为 "-" 时写标准输出
func GenerateTable(path string, out io.Writer) error {
	start := time.Now()
	table, err := shanten.GenerateTable()
	if err != nil {
		return err
	}
	w := out
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %v", shanten.ErrResource, err)
		}
		defer f.Close()
		w = f
	}
	if err := shanten.WriteTable(w, table); err != nil {
		return err
	}
	log.Info("距离表生成完成, 条目 %d, 耗时 %v", table.Len(), time.Since(start))
	return nil
}

// PublishTable 加载配置的距离表并写入 redis
func PublishTable(ctx context.Context, cfg *config.Config) error {
	gameContainer, err := container.NewGameContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeContainer(gameContainer)
	if gameContainer.TableStore == nil {
		return fmt.Errorf("未配置 redis，无法发布距离表")
	}
	if err := gameContainer.TableStore.Publish(ctx, gameContainer.Table); err != nil {
		return err
	}
	log.Info("距离表已发布到 redis, key=%s, 条目 %d", cfg.Table.RedisKey, gameContainer.Table.Len())
	return nil
}

// History 查询 mongodb 中的对局记录。roundID 非空时输出该局逐巡事件，否则列出最近 limit 局
func History(ctx context.Context, cfg *config.Config, limit int, roundID string, out io.Writer) error {
	gameContainer, err := container.NewGameContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeContainer(gameContainer)
	if gameContainer.RoundRepo == nil {
		return fmt.Errorf("未配置 mongodb，无法查询对局记录")
	}
	return writeHistory(ctx, gameContainer.RoundRepo, limit, roundID, out)
}

func writeHistory(ctx context.Context, repo repository.RoundRecordRepository, limit int, roundID string, out io.Writer) error {
	if roundID != "" {
		record, err := repo.FindRoundRecord(ctx, roundID)
		if err != nil {
			return err
		}
		v := api.NewRoundView(record, true)
		fmt.Fprintf(out, "%s 第 %d 局 (%s) 庄家 %d 和牌座位 %d 余牌 %d\n",
			v.RoundID, v.RoundNumber, v.RoundWind, v.DealerIndex, v.WinnerSeat, v.Remaining)
		for _, e := range v.Events {
			fmt.Fprintf(out, "  %3d 座位 %d 摸 %s 打 %s 向听 %d -> %d\n",
				e.Sequence, e.Seat, e.Drawn, e.Discarded, e.ShantenBefore, e.ShantenAfter)
		}
		return nil
	}
	if limit <= 0 {
		limit = api.DefaultRoundLimit
	}
	records, err := repo.FindRecentRoundRecords(ctx, min(limit, api.MaxRoundLimit))
	if err != nil {
		return err
	}
	for _, r := range records {
		v := api.NewRoundView(r, false)
		fmt.Fprintf(out, "%s %s 第 %d 局 (%s) 和牌座位 %d 共 %d 巡\n",
			v.StartTime.Format(time.DateTime), v.RoundID, v.RoundNumber, v.RoundWind, v.WinnerSeat, v.Turns)
	}
	return nil
}

// Watch 订阅 nats 上的对局事件并逐条输出
func Watch(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if cfg.Nats.URL == "" {
		return fmt.Errorf("未配置 nats.url")
	}
	ctx, cancel := withSignal(ctx)
	defer cancel()

	client := message.NewNatsClient()
	if err := client.Run(cfg.Nats.URL); err != nil {
		return err
	}
	defer client.Close()

	readChan := make(chan []byte, 64)
	if err := client.Subscribe(ctx, cfg.Nats.Subject, readChan); err != nil {
		return err
	}
	log.Info("订阅 %s", cfg.Nats.Subject)
	for {
		select {
		case <-ctx.Done():
			return nil
		case data := <-readChan:
			var event message.TurnEvent
			if err := json.Unmarshal(data, &event); err != nil {
				log.Warn("无法解析的消息: %v", err)
				continue
			}
			printEvent(out, event)
		}
	}
}

func printEvent(out io.Writer, event message.TurnEvent) {
	switch event.Type {
	case message.EventTurn:
		if event.Turn == nil {
			return
		}
		fmt.Fprintf(out, "[%s] 第 %d 局 第 %d 巡 座位 %d 向听 %d -> %d\n",
			event.RoundID[:min(8, len(event.RoundID))], event.RoundNumber, event.Turn.Sequence,
			event.Turn.Seat, event.Turn.ShantenBefore, event.Turn.ShantenAfter)
	case message.EventRound:
		winner := -1
		if event.WinnerSeat != nil {
			winner = *event.WinnerSeat
		}
		fmt.Fprintf(out, "[%s] 第 %d 局结束, 和牌座位 %d, 共 %d 巡\n",
			event.RoundID[:min(8, len(event.RoundID))], event.RoundNumber, winner, event.Turns)
	}
}

func closeContainer(c *container.GameContainer) {
	if err := c.Close(); err != nil {
		log.Error("关闭 game 容器失败: %v", err)
	}
}

// withSignal 收到中断、终止或挂起信号时取消 ctx
func withSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	go func() {
		defer signal.Stop(c)
		select {
		case s := <-c:
			log.Info("收到信号 %v，服务停止", s)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
