package main

import (
	"context"
	"fmt"
	"os"

	"gomahjong/common/config"
	"gomahjong/common/log"
	"gomahjong/common/metrics"
	"gomahjong/game/app"

	"github.com/spf13/cobra"
)

// 加载配置 -> 启动监控 -> 执行子命令

var (
	configFile  string
	logLevel    string
	interactive bool
	verify      bool
	merge       string
	outPath     string
	rate        int
	burst       int
	limit       int
	roundID     string
)

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "game 向听数计算与单机对局模拟",
	Long:  `game 向听数计算与单机对局模拟`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		conf, err := config.Load(configFile)
		if err != nil {
			log.Fatal("加载配置失败: %v", err)
		}
		if logLevel != "" {
			conf.Log.Level = logLevel
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		config.OnChange(func(c *config.Config) {
			log.SetLevel(c.Log.Level)
			log.Info("配置已更新, 日志级别 %s", c.Log.Level)
		})
		log.Debug("配置文件: %+v", conf)

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "控制台模拟四人对局",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := config.Current()
		if cmd.Flags().Changed("interactive") {
			conf.Game.Interactive = interactive
		}
		return app.Play(context.Background(), conf, os.Stdin, os.Stdout)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 向听数接口",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Serve(context.Background(), config.Current(), rate, burst)
	},
}

var evalCmd = &cobra.Command{
	Use:     "eval <hand>",
	Short:   "计算一手牌的向听数, 例如 123m456p789s1122z",
	Args:    cobra.ExactArgs(1),
	Example: "game eval 123456789m123p5s --verify",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := config.Current()
		if merge != "" {
			conf.Table.Merge = merge
		}
		return app.Evaluate(context.Background(), conf, args[0], verify, os.Stdout)
	},
}

var genTableCmd = &cobra.Command{
	Use:   "gentable",
	Short: "生成距离表",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.GenerateTable(outPath, os.Stdout)
	},
}

var publishTableCmd = &cobra.Command{
	Use:   "publish-table",
	Short: "把距离表写入 redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PublishTable(context.Background(), config.Current())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查询 mongodb 中的对局记录",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.History(context.Background(), config.Current(), limit, roundID, os.Stdout)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "订阅 nats 上的对局事件",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Watch(context.Background(), config.Current(), os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "config file, defaults only when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "", "log level: debug, info, warn, error")

	playCmd.Flags().BoolVar(&interactive, "interactive", false, "east seat discards from stdin")
	serveCmd.Flags().IntVar(&rate, "rate", 50, "requests per second per client, 0 disables limiting")
	serveCmd.Flags().IntVar(&burst, "burst", 100, "rate limiter burst")
	evalCmd.Flags().BoolVar(&verify, "verify", false, "cross-check with depth-first search")
	evalCmd.Flags().StringVar(&merge, "merge", "", "merge mode: standard, legacy")
	genTableCmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "number of recent rounds")
	historyCmd.Flags().StringVar(&roundID, "round", "", "show the turns of one round")

	rootCmd.AddCommand(playCmd, serveCmd, evalCmd, genTableCmd, publishTableCmd, historyCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
