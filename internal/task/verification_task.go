package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
)

// ==================== VerificationReportTask 审核积压报告 ====================

// ReportSource 审核统计来源
type ReportSource interface {
	VerificationReport(ctx context.Context) (*dto.VerificationReport, error)
}

// VerificationReportTask 定时输出待审核数量
type VerificationReportTask struct {
	source   ReportSource
	log      *zap.Logger
	cron     *cron.Cron
	schedule string
}

// NewVerificationReportTask 创建审核报告任务，schedule 为 6 位 cron 表达式（含秒）
func NewVerificationReportTask(source ReportSource, schedule string, log *zap.Logger) *VerificationReportTask {
	return &VerificationReportTask{
		source:   source,
		log:      log,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
	}
}

// Start 启动定时任务
func (t *VerificationReportTask) Start() error {
	_, err := t.cron.AddFunc(t.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := t.RunOnce(ctx); err != nil {
			t.log.Error("verification report failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule verification report %q: %w", t.schedule, err)
	}

	t.cron.Start()
	t.log.Info("verification report task started", zap.String("cron", t.schedule))
	return nil
}

// Stop 停止任务，等待执行中的报告结束
func (t *VerificationReportTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("verification report task stopped")
}

// RunOnce 统计并记录待审核数量，返回待审核总数
func (t *VerificationReportTask) RunOnce(ctx context.Context) (int64, error) {
	report, err := t.source.VerificationReport(ctx)
	if err != nil {
		return 0, err
	}

	pending := string(model.VerificationPending)
	agencies := report.Agencies[pending]
	agents := report.Agents[pending]
	projects := report.Projects[pending]
	total := agencies + agents + projects

	fields := []zap.Field{
		zap.Int64("agencies", agencies),
		zap.Int64("agents", agents),
		zap.Int64("projects", projects),
		zap.Int64("total", total),
	}
	if total > 0 {
		t.log.Info("listings awaiting verification", fields...)
	} else {
		t.log.Debug("no listings awaiting verification", fields...)
	}
	return total, nil
}
