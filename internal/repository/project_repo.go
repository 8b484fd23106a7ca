package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estate_listing_v1/internal/model"
)

// ==================== ProjectRepository 楼盘项目仓库 ====================

// ProjectRepository 楼盘项目仓库接口
type ProjectRepository interface {
	// Create 仅写入主表，子表由下列方法显式写入
	Create(ctx context.Context, project *model.Project) error
	CreatePriceRange(ctx context.Context, pr *model.PriceRange) error
	CreateAuthorizedAgents(ctx context.Context, agents []model.AuthorizedAgent) error
	CreateImages(ctx context.Context, images []model.ProjectImage) error

	GetByID(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	UpdateVerification(ctx context.Context, id int64, status model.VerificationStatus) (bool, error)
	CountByStatus(ctx context.Context) (StatusCount, error)
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepository 创建楼盘项目仓库
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

func (r *projectRepo) CreatePriceRange(ctx context.Context, pr *model.PriceRange) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *projectRepo) CreateAuthorizedAgents(ctx context.Context, agents []model.AuthorizedAgent) error {
	if len(agents) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&agents).Error
}

func (r *projectRepo) CreateImages(ctx context.Context, images []model.ProjectImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// withRelations 预加载子表，图片按上传顺序
func (r *projectRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("PriceRange").
		Preload("AuthorizedAgents", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		})
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := r.withRelations(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	projects := make([]model.Project, 0)
	err := r.withRelations(ctx).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) UpdateVerification(ctx context.Context, id int64, status model.VerificationStatus) (bool, error) {
	return updateStatus(ctx, r.db, &model.Project{}, id, "verification_status", string(status))
}

func (r *projectRepo) CountByStatus(ctx context.Context) (StatusCount, error) {
	return countByStatus(ctx, r.db, &model.Project{}, "verification_status")
}
