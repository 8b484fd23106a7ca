package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ==================== 接口定义 ====================

// StorageProvider 存储提供者接口
type StorageProvider interface {
	// Upload 上传文件，返回公开访问URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // S3 兼容服务的自定义端点 (MinIO/COS 等)
	CDNDomain string // CDN域名 (可选)
	BasePath  string // s3: key 前缀；local: 本地目录
	PublicURL string // local: 对外访问前缀

	MaxFiles     int
	MaxFileBytes int64
}

// 允许上传的类型：图片与 PDF 证书
func allowedContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	return strings.HasPrefix(ct, "image/") || ct == "application/pdf"
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== StorageService 上传服务 ====================

// UploadFile 待上传文件
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StorageService 上传服务：校验 -> 并发上传 -> 按输入顺序返回 URL
type StorageService struct {
	provider StorageProvider
	config   StorageConfig
	log      *zap.Logger
}

// NewStorageService 创建存储服务
func NewStorageService(cfg StorageConfig, log *zap.Logger) (*StorageService, error) {
	provider, err := NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewStorageServiceWithProvider(provider, cfg, log), nil
}

// NewStorageServiceWithProvider 使用指定 Provider（测试注入）
func NewStorageServiceWithProvider(provider StorageProvider, cfg StorageConfig, log *zap.Logger) *StorageService {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 10
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 10 << 20
	}
	return &StorageService{provider: provider, config: cfg, log: log}
}

// MaxFileBytes 单文件大小上限
func (s *StorageService) MaxFileBytes() int64 {
	return s.config.MaxFileBytes
}

// multipart 边界与表头的余量
const multipartOverhead = 1 << 20

// MaxRequestBytes 单次上传请求体上限：文件数 × 单文件上限 + 余量
func (s *StorageService) MaxRequestBytes() int64 {
	return int64(s.config.MaxFiles)*s.config.MaxFileBytes + multipartOverhead
}

// Validate 校验数量、大小、类型；ContentType 为空时按内容探测
func (s *StorageService) Validate(files []UploadFile) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: no files", ErrInvalidUpload)
	}
	if len(files) > s.config.MaxFiles {
		return fmt.Errorf("%w: at most %d files per request", ErrInvalidUpload, s.config.MaxFiles)
	}
	for i := range files {
		f := &files[i]
		if int64(len(f.Data)) > s.config.MaxFileBytes {
			return fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidUpload, f.Filename, s.config.MaxFileBytes)
		}
		if f.ContentType == "" || f.ContentType == "application/octet-stream" {
			f.ContentType = detectContentType(f.Data)
		}
		if !allowedContentType(f.ContentType) {
			return fmt.Errorf("%w: %s has unsupported type %s", ErrInvalidUpload, f.Filename, f.ContentType)
		}
	}
	return nil
}

// UploadFiles 并发上传，返回的 URL 与输入顺序一致
// 任一文件失败时尽力删除已上传的文件
func (s *StorageService) UploadFiles(ctx context.Context, files []UploadFile) ([]string, error) {
	if err := s.Validate(files); err != nil {
		return nil, err
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := s.provider.Upload(gctx, f.Data, f.Filename, f.ContentType)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.cleanup(urls)
		s.log.Warn("upload failed", zap.Int("files", len(files)), zap.Error(err))
		return nil, err
	}

	s.log.Info("files uploaded", zap.Int("files", len(files)))
	return urls, nil
}

func (s *StorageService) cleanup(urls []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := s.provider.Delete(ctx, u); err != nil {
			s.log.Warn("cleanup uploaded file failed", zap.String("url", u), zap.Error(err))
		}
	}
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
	basePath  string
}

func NewS3Storage(cfg StorageConfig) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	// 未配置静态密钥时走默认凭证链 (环境变量 / IAM Role)
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  endpoint,
		cdnDomain: cfg.CDNDomain,
		basePath:  strings.Trim(cfg.BasePath, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := generateKey(s.basePath, filename)

	if contentType == "" {
		contentType = detectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.publicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) urlPrefix() string {
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/", s.cdnDomain)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	}
}

func (s *S3Storage) publicURL(key string) string {
	return s.urlPrefix() + key
}

func (s *S3Storage) extractKey(url string) string {
	prefix := s.urlPrefix()
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储 (开发测试用) ====================

// LocalStorage 写入本地目录，由 gin 静态路由 /uploads 对外提供
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg StorageConfig) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := generateKey("", filename)
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	if key == url || key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("无法解析文件路径")
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ==================== 工具函数 ====================

// generateKey 生成对象 key：{prefix}/yyyy/mm/dd/{uuid}{ext}
func generateKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	datePath := time.Now().Format("2006/01/02")
	if prefix != "" {
		return path.Join(prefix, datePath, name)
	}
	return path.Join(datePath, name)
}

func detectContentType(data []byte) string {
	return http.DetectContentType(data)
}
