package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// InitLog 之前的默认 logger，保证测试与命令行工具也能直接打印
var logger = newLogger(os.Stdout, "")

func newLogger(w io.Writer, appName string) *log.Logger {
	// 使用 os.Stdout 而不是 os.Stderr
	// GoLand 控制台会将 stderr 显示为红色，stdout 显示为正常颜色
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	// 启用调用者信息（显示文件名和行号），跳过本包的一层封装
	l.SetReportCaller(true)
	l.SetCallerOffset(1)
	return l
}

func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	SetLevel(logLevel)
}

// SetOutput 重定向输出，测试中使用
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 运行时调整级别，配置热更新时调用
func SetLevel(logLevel string) {
	// 默认为 info 级别
	switch strings.ToLower(logLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatalf("%s", format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Infof("%s", format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warnf("%s", format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Errorf("%s", format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debugf("%s", format)
	} else {
		logger.Debugf(format, args...)
	}
}
