package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estate_listing_v1/internal/model"
)

// ==================== AgentRepository 经纪人仓库 ====================

// AgentRepository 经纪人仓库接口
type AgentRepository interface {
	// Create 仅写入主表，社交链接由 CreateSocialLinks 显式写入
	Create(ctx context.Context, agent *model.Agent) error
	CreateSocialLinks(ctx context.Context, links *model.SocialMediaLinks) error
	GetByID(ctx context.Context, id int64) (*model.Agent, error)
	List(ctx context.Context) ([]model.Agent, error)
	UpdateApproval(ctx context.Context, id int64, status model.VerificationStatus) (bool, error)
	CountByStatus(ctx context.Context) (StatusCount, error)
}

type agentRepo struct {
	db *gorm.DB
}

// NewAgentRepository 创建经纪人仓库
func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, agent *model.Agent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(agent).Error
}

func (r *agentRepo) CreateSocialLinks(ctx context.Context, links *model.SocialMediaLinks) error {
	return r.db.WithContext(ctx).Create(links).Error
}

func (r *agentRepo) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).Preload("SocialMediaLinks").First(&agent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepo) List(ctx context.Context) ([]model.Agent, error) {
	agents := make([]model.Agent, 0)
	err := r.db.WithContext(ctx).Preload("SocialMediaLinks").Order("id ASC").Find(&agents).Error
	return agents, err
}

func (r *agentRepo) UpdateApproval(ctx context.Context, id int64, status model.VerificationStatus) (bool, error) {
	return updateStatus(ctx, r.db, &model.Agent{}, id, "approval_status", string(status))
}

func (r *agentRepo) CountByStatus(ctx context.Context) (StatusCount, error) {
	return countByStatus(ctx, r.db, &model.Agent{}, "approval_status")
}
