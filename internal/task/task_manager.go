package task

import (
	"context"

	"go.uber.org/zap"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务的启停
type TaskManager struct {
	reportTask *VerificationReportTask
	log        *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Reports ReportSource
}

// TaskManagerConfig 任务管理器配置，cron 为空表示不启用
type TaskManagerConfig struct {
	VerificationReportCron string
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps TaskManagerDeps, cfg TaskManagerConfig, log *zap.Logger) *TaskManager {
	tm := &TaskManager{log: log}

	// 待审核报告
	if cfg.VerificationReportCron != "" && deps.Reports != nil {
		tm.reportTask = NewVerificationReportTask(deps.Reports, cfg.VerificationReportCron, log)
	}
	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有已启用的任务
func (tm *TaskManager) Start() error {
	if tm.reportTask != nil {
		if err := tm.reportTask.Start(); err != nil {
			return err
		}
	}
	tm.log.Info("background tasks started", zap.Any("tasks", tm.Status()))
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.reportTask != nil {
		tm.reportTask.Stop()
	}
	tm.log.Info("background tasks stopped")
}

// ==================== 手动触发 ====================

// TriggerVerificationReport 立即输出一次待审核报告
func (tm *TaskManager) TriggerVerificationReport(ctx context.Context) (int64, error) {
	if tm.reportTask == nil {
		return 0, ErrTaskDisabled
	}
	return tm.reportTask.RunOnce(ctx)
}

// Status 各任务是否启用
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"verificationReport": tm.reportTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
