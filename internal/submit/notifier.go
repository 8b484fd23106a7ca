package submit

import (
	"time"

	"go.uber.org/zap"
)

// Notifier 用户可见的瞬时提示（加载中 / 成功 / 失败）
type Notifier interface {
	// Loading 显示加载提示，返回的函数用于关闭提示
	Loading(msg string) func()
	Success(msg string)
	Error(msg string, err error)
}

// LogNotifier 把提示输出到日志，命令行场景使用
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Loading(msg string) func() {
	start := time.Now()
	n.log.Info(msg)
	return func() {
		n.log.Debug("done", zap.String("step", msg), zap.Duration("elapsed", time.Since(start)))
	}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info(msg)
}

func (n *LogNotifier) Error(msg string, err error) {
	n.log.Error(msg, zap.Error(err))
}
