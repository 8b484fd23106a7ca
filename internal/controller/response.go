package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/middleware"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/schema"
	"estate_listing_v1/internal/service"
)

// errBadBody 请求体无法解析
var errBadBody = errors.New("invalid request body")

// respondError 统一错误响应 {error, details}
// 5xx 不回显内部错误，只返回请求 ID 便于排查日志
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		verr     *schema.ValidationError
		enumErr  *model.EnumError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Fields})
	case errors.As(err, &enumErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": enumErr.Error(), "details": enumErr.Allowed})
	case errors.Is(err, errBadBody),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrOwnerRequired),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrInvalidUpload):
		c.JSON(http.StatusBadRequest, gin.H{"error": rootMessage(err), "details": err.Error()})
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "request body too large",
			"details": "limit is " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
		})
	case errors.Is(err, service.ErrOwnerMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "details": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": rootMessage(err), "details": err.Error()})
	default:
		requestID := middleware.GetRequestID(c)
		log.Error("request failed",
			zap.String("request_id", requestID),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": "request " + requestID + " failed",
		})
	}
}

// rootMessage 取哨兵错误本身的文案
func rootMessage(err error) string {
	for _, sentinel := range []error{
		errBadBody,
		service.ErrMissingField,
		service.ErrOwnerRequired,
		service.ErrEmailInUse,
		service.ErrInvalidUpload,
		service.ErrUserNotFound,
		service.ErrListingNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// bindJSON 解析请求体，失败统一为 errBadBody
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return errors.Join(errBadBody, err)
	}
	return nil
}

// resolveOwner 确定归属用户
// 有会话时以会话为准，body 中的 id 必须一致；无会话时使用 body 中的 id
func resolveOwner(c *gin.Context, bodyID string) (string, error) {
	if s := middleware.GetSession(c); s != nil {
		if bodyID != "" && bodyID != s.UserID {
			return "", service.ErrOwnerMismatch
		}
		return s.UserID, nil
	}
	if bodyID == "" {
		return "", service.ErrOwnerRequired
	}
	return bodyID, nil
}

// parseID 解析路径参数 :id
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "details": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
