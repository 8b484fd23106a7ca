package view

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// State 视图状态：loading -> success | error，不会回到 loading
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "loading"
}

// SkeletonCount 加载中占位卡片数
const SkeletonCount = 4

// ==================== 列表视图 ====================

// ListView 拉取一次集合并逐条渲染卡片
type ListView[T any] struct {
	Title   string
	Columns int // 每行卡片数，<=0 时为 2

	fetch func(ctx context.Context) ([]T, error)
	card  func(T) string
	log   *zap.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
	items []T
	err   error
}

func NewListView[T any](title string, fetch func(ctx context.Context) ([]T, error), card func(T) string, log *zap.Logger) *ListView[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListView[T]{Title: title, fetch: fetch, card: card, log: log}
}

// Load 首次调用时拉取数据，之后的调用不再请求
func (v *ListView[T]) Load(ctx context.Context) {
	v.once.Do(func() {
		items, err := v.fetch(ctx)

		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.log.Error("failed to load listings", zap.String("view", v.Title), zap.Error(err))
			v.state, v.err = StateError, err
			return
		}
		v.state, v.items = StateSuccess, items
	})
}

func (v *ListView[T]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Items 已加载的记录，error 状态下为空
func (v *ListView[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.items
}

func (v *ListView[T]) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Render 按当前状态渲染
func (v *ListView[T]) Render() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var cards []string
	switch v.state {
	case StateLoading:
		for range SkeletonCount {
			cards = append(cards, Skeleton())
		}
	case StateSuccess:
		for _, item := range v.items {
			cards = append(cards, v.card(item))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(v.Title), grid(cards, v.Columns))
}

// ==================== 详情视图 ====================

// DetailView 单条记录视图，状态机同 ListView
type DetailView[T any] struct {
	Title string

	fetch  func(ctx context.Context) (*T, error)
	render func(T) string
	log    *zap.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
	item  *T
	err   error
}

func NewDetailView[T any](title string, fetch func(ctx context.Context) (*T, error), render func(T) string, log *zap.Logger) *DetailView[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &DetailView[T]{Title: title, fetch: fetch, render: render, log: log}
}

func (v *DetailView[T]) Load(ctx context.Context) {
	v.once.Do(func() {
		item, err := v.fetch(ctx)

		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.log.Error("failed to load listing", zap.String("view", v.Title), zap.Error(err))
			v.state, v.err = StateError, err
			return
		}
		v.state, v.item = StateSuccess, item
	})
}

func (v *DetailView[T]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *DetailView[T]) Item() *T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.item
}

func (v *DetailView[T]) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

func (v *DetailView[T]) Render() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	body := ""
	switch v.state {
	case StateLoading:
		body = Skeleton()
	case StateSuccess:
		if v.item != nil {
			body = v.render(*v.item)
		}
	case StateError:
		body = mutedStyle.Render("Listing unavailable")
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(v.Title), body)
}

// grid 按列数把卡片排成网格
func grid(cards []string, columns int) string {
	if columns <= 0 {
		columns = 2
	}
	rows := make([]string, 0, (len(cards)+columns-1)/columns)
	for i := 0; i < len(cards); i += columns {
		end := min(i+columns, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return strings.Join(rows, "\n")
}
