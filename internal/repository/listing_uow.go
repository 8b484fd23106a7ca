package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== 工作单元 ====================

// ListingUnitOfWork 房源提交工作单元
// 主表与子表写入在同一事务内完成，任一步失败整体回滚
type ListingUnitOfWork struct {
	db       *gorm.DB
	Users    UserRepository
	Agencies AgencyRepository
	Agents   AgentRepository
	Projects ProjectRepository
}

// NewListingUnitOfWork 创建工作单元
func NewListingUnitOfWork(db *gorm.DB) *ListingUnitOfWork {
	return &ListingUnitOfWork{
		db:       db,
		Users:    NewUserRepository(db),
		Agencies: NewAgencyRepository(db),
		Agents:   NewAgentRepository(db),
		Projects: NewProjectRepository(db),
	}
}

// Transaction 执行事务，fn 内的仓储均绑定到同一个 tx
func (u *ListingUnitOfWork) Transaction(ctx context.Context, fn func(uow *ListingUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewListingUnitOfWork(tx))
	})
}
