package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/schema"
	"estate_listing_v1/pkg/client"
)

var (
	ErrUploadInProgress = errors.New("upload already in progress for this field")
	ErrUploadsPending   = errors.New("uploads still in progress")
	ErrUnknownField     = errors.New("unknown form field")
	ErrUnknownOption    = errors.New("option not in catalog")
	ErrNoFiles          = errors.New("no files selected")
)

// Uploader 上传组件：文件 -> 公开 URL，顺序一致
type Uploader interface {
	Upload(ctx context.Context, files []client.File) ([]string, error)
}

// Submitter 把组装好的 payload 提交到 API
type Submitter interface {
	Submit(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Deps 表单的外部协作者
type Deps struct {
	Uploader  Uploader
	Submitter Submitter
	Notifier  Notifier
	Log       *zap.Logger
}

type assetBinding[P any] struct {
	set      func(p *P, urls []string)
	maxFiles int // 0 表示不限
}

type optionBinding[P any] struct {
	catalog model.Catalog
	field   func(p *P) *[]string
}

// Form 提交表单：持有字段值、上传忙碌标记，提交前本地校验
type Form[P any] struct {
	mu      sync.Mutex
	payload P
	busy    map[string]bool

	endpoint   string
	successMsg string
	assets     map[string]assetBinding[P]
	options    map[string]optionBinding[P]

	uploader  Uploader
	submitter Submitter
	notifier  Notifier
	log       *zap.Logger
}

func newForm[P any](endpoint, successMsg string, payload P, deps Deps) *Form[P] {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &Form[P]{
		payload:    payload,
		busy:       make(map[string]bool),
		endpoint:   endpoint,
		successMsg: successMsg,
		assets:     make(map[string]assetBinding[P]),
		options:    make(map[string]optionBinding[P]),
		uploader:   deps.Uploader,
		submitter:  deps.Submitter,
		notifier:   notifier,
		log:        log,
	}
}

func (f *Form[P]) asset(name string, maxFiles int, set func(p *P, urls []string)) {
	f.assets[name] = assetBinding[P]{set: set, maxFiles: maxFiles}
}

func (f *Form[P]) option(name string, catalog model.Catalog, field func(p *P) *[]string) {
	f.options[name] = optionBinding[P]{catalog: catalog, field: field}
}

// Payload 当前字段值的快照
func (f *Form[P]) Payload() P {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payload
}

// Update 修改字段值
func (f *Form[P]) Update(fn func(p *P)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.payload)
}

// Busy 字段是否正在上传
func (f *Form[P]) Busy(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy[field]
}

// AssetFields 可上传的字段名
func (f *Form[P]) AssetFields() []string {
	names := make([]string, 0, len(f.assets))
	for name := range f.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ==================== 上传 ====================

// UploadAsset 上传某个字段的文件；失败时字段保持原值
func (f *Form[P]) UploadAsset(ctx context.Context, field string, files []client.File) ([]string, error) {
	binding, ok := f.assets[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s (upload fields: %s)", ErrUnknownField, field, strings.Join(f.AssetFields(), ", "))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", field, ErrNoFiles)
	}
	if binding.maxFiles > 0 && len(files) > binding.maxFiles {
		return nil, fmt.Errorf("%s accepts at most %d file(s), got %d", field, binding.maxFiles, len(files))
	}

	f.mu.Lock()
	if f.busy[field] {
		f.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", field, ErrUploadInProgress)
	}
	f.busy[field] = true
	f.mu.Unlock()

	done := f.notifier.Loading(fmt.Sprintf("Uploading %s...", field))
	urls, err := f.uploader.Upload(ctx, files)
	done()
	if err == nil && len(urls) != len(files) {
		err = fmt.Errorf("uploader returned %d urls for %d files", len(urls), len(files))
	}

	f.mu.Lock()
	delete(f.busy, field)
	if err == nil {
		binding.set(&f.payload, urls)
	}
	f.mu.Unlock()

	if err != nil {
		f.log.Warn("asset upload failed", zap.String("field", field), zap.Error(err))
		f.notifier.Error(fmt.Sprintf("Failed to upload %s", field), err)
		return nil, fmt.Errorf("upload %s: %w", field, err)
	}
	f.notifier.Success(fmt.Sprintf("%s uploaded", field))
	return urls, nil
}

// UploadAssets 并发上传多个字段，单个字段失败不影响其他字段
func (f *Form[P]) UploadAssets(ctx context.Context, files map[string][]client.File) error {
	fields := make([]string, 0, len(files))
	for field := range files {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var g errgroup.Group
	for _, field := range fields {
		g.Go(func() error {
			_, err := f.UploadAsset(ctx, field, files[field])
			return err
		})
	}
	return g.Wait()
}

// ==================== 多选 ====================

// Toggle 切换多选字段中的某个选项，返回切换后是否选中
func (f *Form[P]) Toggle(field, option string) (bool, error) {
	binding, ok := f.options[field]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values := binding.field(&f.payload)
	set, err := NewOptionSet(binding.catalog, *values...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", field, err)
	}
	on, err := set.Toggle(option)
	if err != nil {
		return false, fmt.Errorf("%s: %w", field, err)
	}
	*values = set.Values()
	return on, nil
}

// ==================== 提交 ====================

// Submit 本地校验通过后提交；失败时保留字段值以便重试
func (f *Form[P]) Submit(ctx context.Context) (json.RawMessage, error) {
	f.mu.Lock()
	if len(f.busy) > 0 {
		f.mu.Unlock()
		return nil, ErrUploadsPending
	}
	payload := f.payload
	f.mu.Unlock()

	if err := schema.Validate(payload); err != nil {
		f.notifier.Error("Please fix the highlighted fields", err)
		return nil, err
	}

	done := f.notifier.Loading("Submitting...")
	raw, err := f.submitter.Submit(ctx, f.endpoint, payload)
	done()
	if err != nil {
		f.log.Warn("submit failed", zap.String("endpoint", f.endpoint), zap.Error(err))
		f.notifier.Error("Submission failed", err)
		return nil, err
	}

	f.notifier.Success(f.successMsg)
	return raw, nil
}
