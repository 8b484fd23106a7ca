package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Session  SessionConfig
	Submit   SubmitConfig
	Task     TaskConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig 数据库配置
// Driver: postgres (生产) / sqlite (本地开发)
type DatabaseConfig struct {
	Driver       string
	DSN          string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

// StorageConfig 上传存储配置
type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // S3 兼容服务的自定义端点
	CDNDomain string
	BasePath  string
	PublicURL string // 本地存储对外访问前缀
}

type UploadConfig struct {
	MaxFiles  int
	MaxSizeMB int
	Burst     int // 每个客户端在 SUBMIT_COOLDOWN 内可连续上传的次数
}

// SessionConfig 会话配置，Secret 为空时不启用 JWT 会话
type SessionConfig struct {
	Secret string
	Issuer string
}

type SubmitConfig struct {
	Cooldown time.Duration
	Burst    int
}

type TaskConfig struct {
	VerificationReportCron string
}

// ClientConfig estatectl 使用的 API 客户端配置
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

// Load 加载配置：.env (可选) -> 环境变量 -> 默认值
func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("SERVER_PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:          v.GetString("DB_DSN"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(v.GetString("STORAGE_PROVIDER")),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			CDNDomain: v.GetString("STORAGE_CDN_DOMAIN"),
			BasePath:  v.GetString("STORAGE_BASE_PATH"),
			PublicURL: strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
		},
		Upload: UploadConfig{
			MaxFiles:  v.GetInt("UPLOAD_MAX_FILES"),
			MaxSizeMB: v.GetInt("UPLOAD_MAX_SIZE_MB"),
			Burst:     v.GetInt("UPLOAD_BURST"),
		},
		Session: SessionConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Submit: SubmitConfig{
			Cooldown: v.GetDuration("SUBMIT_COOLDOWN"),
			Burst:    v.GetInt("SUBMIT_BURST"),
		},
		Task: TaskConfig{
			VerificationReportCron: v.GetString("VERIFICATION_REPORT_CRON"),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Timeout: v.GetDuration("API_TIMEOUT"),
			Token:   v.GetString("API_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient 只加载 API 客户端配置，命令行工具不需要服务端配置
func LoadClient() ClientConfig {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return ClientConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: v.GetDuration("API_TIMEOUT"),
		Token:   v.GetString("API_TOKEN"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_DSN", "host=localhost user=estate password=estate dbname=estate port=5432 sslmode=disable")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)

	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("STORAGE_BASE_PATH", "uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads")

	v.SetDefault("UPLOAD_MAX_FILES", 10)
	v.SetDefault("UPLOAD_MAX_SIZE_MB", 10)
	v.SetDefault("UPLOAD_BURST", 10)

	v.SetDefault("JWT_ISSUER", "estate-listing")

	v.SetDefault("SUBMIT_COOLDOWN", "2s")
	v.SetDefault("SUBMIT_BURST", 3)

	// 每小时整点
	v.SetDefault("VERIFICATION_REPORT_CRON", "0 0 * * * *")

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "15s")
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}

	switch c.Storage.Provider {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET and STORAGE_REGION are required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.Storage.Provider))
	}

	if c.Upload.MaxFiles <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILES must be positive"))
	}
	if c.Upload.MaxSizeMB <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_SIZE_MB must be positive"))
	}
	if c.Upload.Burst <= 0 {
		errs = append(errs, errors.New("UPLOAD_BURST must be positive"))
	}
	if c.Submit.Cooldown <= 0 || c.Submit.Burst <= 0 {
		errs = append(errs, errors.New("SUBMIT_COOLDOWN and SUBMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// MaxUploadBytes 单文件大小上限（字节）
func (u UploadConfig) MaxUploadBytes() int64 {
	return int64(u.MaxSizeMB) << 20
}
