package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"estate_listing_v1/internal/model"
)

// ==================== AgencyRepository 中介机构仓库 ====================

// AgencyRepository 中介机构仓库接口
type AgencyRepository interface {
	Create(ctx context.Context, agency *model.Agency) error
	GetByID(ctx context.Context, id int64) (*model.Agency, error)
	FindByEmail(ctx context.Context, email string) (*model.Agency, error)
	List(ctx context.Context) ([]model.Agency, error)
	UpdateVerification(ctx context.Context, id int64, status model.VerificationStatus) (bool, error)
	CountByStatus(ctx context.Context) (StatusCount, error)
}

type agencyRepo struct {
	db *gorm.DB
}

// NewAgencyRepository 创建中介机构仓库
func NewAgencyRepository(db *gorm.DB) AgencyRepository {
	return &agencyRepo{db: db}
}

func (r *agencyRepo) Create(ctx context.Context, agency *model.Agency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

// GetByID 不存在返回 nil, nil
func (r *agencyRepo) GetByID(ctx context.Context, id int64) (*model.Agency, error) {
	var agency model.Agency
	err := r.db.WithContext(ctx).First(&agency, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// FindByEmail 根据邮箱查找，不存在返回 nil, nil
func (r *agencyRepo) FindByEmail(ctx context.Context, email string) (*model.Agency, error) {
	var agency model.Agency
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// List 全量列表，无分页
func (r *agencyRepo) List(ctx context.Context) ([]model.Agency, error) {
	agencies := make([]model.Agency, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&agencies).Error
	return agencies, err
}

func (r *agencyRepo) UpdateVerification(ctx context.Context, id int64, status model.VerificationStatus) (bool, error) {
	return updateStatus(ctx, r.db, &model.Agency{}, id, "verification_status", string(status))
}

func (r *agencyRepo) CountByStatus(ctx context.Context) (StatusCount, error) {
	return countByStatus(ctx, r.db, &model.Agency{}, "verification_status")
}
