package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ==================== 配置 ====================

type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   string // 会话 Token，可选
}

// Kind 房源类型
type Kind string

const (
	KindAgency  Kind = "agency"
	KindAgent   Kind = "agent"
	KindProject Kind = "project"
)

// Endpoint 类型对应的 API 路径
func (k Kind) Endpoint() (string, error) {
	switch k {
	case KindAgency:
		return "/api/agency", nil
	case KindAgent:
		return "/api/agents", nil
	case KindProject:
		return "/api/projects", nil
	}
	return "", fmt.Errorf("unknown listing kind %q", string(k))
}

// ParseKind 解析类型，兼容复数写法
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "agency", "agencies":
		return KindAgency, nil
	case "agent", "agents":
		return KindAgent, nil
	case "project", "projects":
		return KindProject, nil
	}
	return "", fmt.Errorf("unknown listing kind %q (want agency, agent or project)", s)
}

// ==================== 错误 ====================

// APIError 接口返回的 {error, details}
type APIError struct {
	Status  int             `json:"-"`
	Message string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 && string(e.Details) != "null" {
		return fmt.Sprintf("api %d: %s (%s)", e.Status, e.Message, string(e.Details))
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// ==================== Client ====================

// Client 房源 API 客户端
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// File 待上传文件
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func New(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	h := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		h.SetAuthToken(cfg.Token)
	}
	return &Client{http: h, log: log}
}

// check 非 2xx 统一转换为 *APIError
func (c *Client) check(resp *resty.Response, err error, want ...int) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	for _, code := range want {
		if resp.StatusCode() == code {
			return nil
		}
	}
	if len(want) == 0 && resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if jsonErr := json.Unmarshal(resp.Body(), apiErr); jsonErr != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.String())
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
	}
	c.log.Debug("api error",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL),
		zap.Int("status", apiErr.Status))
	return apiErr
}

// Upload 上传文件，返回的 URL 与输入顺序一致
func (c *Client) Upload(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	req := c.http.R().SetContext(ctx)
	for _, f := range files {
		ct := f.ContentType
		if ct == "" {
			ct = http.DetectContentType(f.Data)
		}
		req.SetMultipartField("files", f.Name, ct, bytes.NewReader(f.Data))
	}

	var out struct {
		URLs []string `json:"urls"`
	}
	resp, err := req.SetResult(&out).Post("/api/upload")
	if err := c.check(resp, err, http.StatusOK); err != nil {
		return nil, err
	}
	if len(out.URLs) != len(files) {
		return nil, fmt.Errorf("upload returned %d urls for %d files", len(out.URLs), len(files))
	}
	return out.URLs, nil
}

// Submit 提交 payload，成功返回创建结果原文
func (c *Client) Submit(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(endpoint)
	if err := c.check(resp, err, http.StatusCreated); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// Verify 变更审核状态
func (c *Client) Verify(ctx context.Context, kind Kind, id int64, status string) error {
	endpoint, err := kind.Endpoint()
	if err != nil {
		return err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"status": status}).
		Patch(fmt.Sprintf("%s/%d/verification", endpoint, id))
	return c.check(resp, err, http.StatusOK)
}

// getJSON GET 并解析响应
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(out).Get(path)
	return c.check(resp, err, http.StatusOK)
}

// List 拉取某类房源全部记录
func List[T any](ctx context.Context, c *Client, kind Kind) ([]T, error) {
	endpoint, err := kind.Endpoint()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get 拉取单条房源
func Get[T any](ctx context.Context, c *Client, kind Kind, id int64) (*T, error) {
	endpoint, err := kind.Endpoint()
	if err != nil {
		return nil, err
	}
	var out T
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d", endpoint, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
