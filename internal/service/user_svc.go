package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/repository"
	"estate_listing_v1/internal/schema"
)

// UserService 外部认证用户同步
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

// SyncUser 认证回调时写入或更新用户
func (s *UserService) SyncUser(ctx context.Context, req dto.UserPayload) (*model.User, error) {
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		return nil, ErrOwnerRequired
	}
	if err := schema.Validate(req); err != nil {
		return nil, err
	}

	user := &model.User{ID: req.ID, Email: req.Email, Name: req.Name}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user synced", zap.String("user_id", user.ID))
	return user, nil
}

// GetUser 获取用户，不存在返回 ErrUserNotFound
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
