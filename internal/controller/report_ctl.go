package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/service"
	"estate_listing_v1/internal/task"
)

// ReportTrigger 手动触发审核积压报告
type ReportTrigger interface {
	TriggerVerificationReport(ctx context.Context) (int64, error)
}

type ReportController struct {
	reportService *service.ReportService
	trigger       ReportTrigger
	log           *zap.Logger
}

// NewReportController trigger 可为 nil，此时手动触发返回 409
func NewReportController(reportService *service.ReportService, trigger ReportTrigger, log *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, trigger: trigger, log: log}
}

// Verification 审核积压统计
// @Summary 审核统计
// @Tags Report (统计)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VerificationReport
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Failure 403 {object} dto.ErrorResp "非审核员"
// @Router /api/reports/verification [get]
func (r *ReportController) Verification(c *gin.Context) {
	report, err := r.reportService.VerificationReport(c.Request.Context())
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RunVerification 立即执行一次积压报告任务（写日志），返回待审核总数
// @Summary 手动触发审核报告
// @Tags Report (统计)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Failure 403 {object} dto.ErrorResp "非审核员"
// @Failure 409 {object} dto.ErrorResp "定时任务未启用"
// @Router /api/reports/verification/run [post]
func (r *ReportController) RunVerification(c *gin.Context) {
	if r.trigger == nil {
		c.JSON(http.StatusConflict, gin.H{"error": task.ErrTaskDisabled.Error(), "details": "VERIFICATION_REPORT_CRON is not set"})
		return
	}
	pending, err := r.trigger.TriggerVerificationReport(c.Request.Context())
	if errors.Is(err, task.ErrTaskDisabled) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "details": "VERIFICATION_REPORT_CRON is not set"})
		return
	}
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
