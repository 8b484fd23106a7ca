package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/service"
)

// UploadFormField multipart 字段名
const UploadFormField = "files"

type UploadController struct {
	storageService *service.StorageService
	log            *zap.Logger
}

func NewUploadController(storageService *service.StorageService, log *zap.Logger) *UploadController {
	return &UploadController{storageService: storageService, log: log}
}

// Upload 上传图片/证书
// @Summary 上传文件
// @Description 支持多文件，返回的 URL 与上传顺序一致
// @Tags Upload (上传)
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "图片或 PDF，可多个"
// @Success 200 {object} dto.UploadResp
// @Failure 400 {object} dto.ErrorResp "数量/大小/类型不合法"
// @Failure 413 {object} dto.ErrorResp "请求体超过上限"
// @Failure 429 {object} dto.ErrorResp "上传过于频繁"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/upload [post]
func (u *UploadController) Upload(c *gin.Context) {
	limit := u.storageService.MaxRequestBytes()
	if c.Request.ContentLength > limit {
		respondError(c, u.log, &http.MaxBytesError{Limit: limit})
		return
	}
	// 未声明长度（chunked）时边读边限
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, u.log, tooLarge)
			return
		}
		respondError(c, u.log, fmt.Errorf("%w: %v", service.ErrInvalidUpload, err))
		return
	}
	defer func() { _ = form.RemoveAll() }()
	headers := form.File[UploadFormField]

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		// 先看声明大小，避免把超大文件读进内存
		if fh.Size > u.storageService.MaxFileBytes() {
			respondError(c, u.log, fmt.Errorf("%w: %s exceeds %d bytes", service.ErrInvalidUpload, fh.Filename, u.storageService.MaxFileBytes()))
			return
		}
		data, err := readPart(fh)
		if err != nil {
			respondError(c, u.log, err)
			return
		}
		files = append(files, service.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	urls, err := u.storageService.UploadFiles(c.Request.Context(), files)
	if err != nil {
		respondError(c, u.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResp{URLs: urls})
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
