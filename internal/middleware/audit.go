package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 审计上下文 ====================

type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID string
	Email  string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID, email string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID: userID,
		Email:  email,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID 从 context 获取审计用户 ID
func GetAuditUserID(ctx context.Context) string {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UserID
	}
	return ""
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将会话中的用户注入 request context，供 GORM 回调使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := GetSession(c); s != nil {
			ctx := WithAuditInfo(c.Request.Context(), s.UserID, s.Email)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// AuditFieldReviewedBy 审核状态变更时写入的操作人字段
const AuditFieldReviewedBy = "ReviewedBy"

// RegisterAuditCallbacks 注册 GORM 审计回调
// Update 时为带 ReviewedBy 字段的模型写入操作人
func RegisterAuditCallbacks(db *gorm.DB) error {
	return db.Callback().Update().Before("gorm:update").Register("audit:update", func(tx *gorm.DB) {
		if tx.Statement.Context == nil {
			return
		}

		userID := GetAuditUserID(tx.Statement.Context)
		if userID == "" {
			return
		}

		setAuditField(tx, AuditFieldReviewedBy, userID)
	})
}

// setAuditField 设置审计字段
// SetColumn 同时覆盖 Update(column, value) 的 map 目标与结构体目标
func setAuditField(tx *gorm.DB, fieldName, value string) {
	if tx.Statement.Schema == nil {
		return
	}
	if tx.Statement.Schema.LookUpField(fieldName) == nil {
		return
	}
	tx.Statement.SetColumn(fieldName, value, true)
}
