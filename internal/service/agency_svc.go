package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/repository"
	"estate_listing_v1/internal/schema"
)

type AgencyService struct {
	uow *repository.ListingUnitOfWork
	log *zap.Logger
}

func NewAgencyService(uow *repository.ListingUnitOfWork, log *zap.Logger) *AgencyService {
	return &AgencyService{uow: uow, log: log}
}

// CreateAgency 创建中介机构
// 1. 归属用户必填 2. 必填字段 3. schema 校验 4. 枚举/数值转换
// 5. 事务内：用户存在 -> 邮箱未被占用 -> 写入
func (s *AgencyService) CreateAgency(ctx context.Context, ownerID string, req dto.AgencyPayload) (*model.Agency, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if err := requireFields(
		"name", req.Name,
		"officeAddress", req.OfficeAddress,
		"phoneNumber", req.PhoneNumber,
		"email", req.Email,
	); err != nil {
		return nil, err
	}
	if err := schema.Validate(req); err != nil {
		return nil, err
	}

	agency, err := buildAgency(ownerID, req)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(tx *repository.ListingUnitOfWork) error {
		if err := ensureUser(ctx, tx, ownerID); err != nil {
			return err
		}

		// 同一邮箱只能有一个机构，同一用户重复提交同样拒绝
		existing, err := tx.Agencies.FindByEmail(ctx, agency.Email)
		if err != nil {
			return fmt.Errorf("find agency by email: %w", err)
		}
		if existing != nil {
			return ErrEmailInUse
		}

		if err := tx.Agencies.Create(ctx, agency); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailInUse
			}
			return fmt.Errorf("create agency: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("agency created",
		zap.Int64("agency_id", agency.ID),
		zap.String("user_id", ownerID),
		zap.String("email", agency.Email))
	return agency, nil
}

// ListAgencies 全部机构
func (s *AgencyService) ListAgencies(ctx context.Context) ([]model.Agency, error) {
	return s.uow.Agencies.List(ctx)
}

// GetAgency 机构详情
func (s *AgencyService) GetAgency(ctx context.Context, id int64) (*model.Agency, error) {
	agency, err := s.uow.Agencies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrListingNotFound
	}
	return agency, nil
}

// SetVerification 审核状态变更
func (s *AgencyService) SetVerification(ctx context.Context, id int64, status string) error {
	st, err := model.VerificationStatuses.Parse(status)
	if err != nil {
		return err
	}
	hit, err := s.uow.Agencies.UpdateVerification(ctx, id, st)
	if err != nil {
		return err
	}
	if !hit {
		return ErrListingNotFound
	}
	s.log.Info("agency verification updated", zap.Int64("agency_id", id), zap.String("status", string(st)))
	return nil
}

// ==================== 转换 ====================

func buildAgency(ownerID string, req dto.AgencyPayload) (*model.Agency, error) {
	var en enums
	agencyType := parseOne(&en, model.AgencyTypes, req.AgencyType, model.AgencyBoth)
	responseTime := parseOne(&en, model.ResponseTimes, req.ResponseTime, model.ResponseSameDay)
	areas := parseMany(&en, model.Areas, req.AreasCovered)
	services := parseMany(&en, model.ServiceTypes, req.ServicesOffered)
	propertyTypes := parseMany(&en, model.PropertyTypes, req.PropertyTypes)
	propertyDetails := parseMany(&en, model.PropertyDetails, req.PropertyDetails)
	if err := en.err(); err != nil {
		return nil, err
	}

	var num numbers
	established := num.int("establishedYear", req.EstablishedYear)
	totalAgents := num.int("totalAgents", req.TotalAgents)
	totalListings := num.int("totalListings", req.TotalListings)
	rating := num.float("overallRating", req.OverallRating)
	if err := num.err(); err != nil {
		return nil, err
	}

	testimonials := make([]model.Testimonial, 0, len(req.Testimonials))
	for _, t := range req.Testimonials {
		testimonials = append(testimonials, model.Testimonial{Name: t.Name, Comment: t.Comment, Rating: t.Rating})
	}

	return &model.Agency{
		Name:            req.Name,
		Logo:            model.NullableString(req.Logo),
		Tagline:         model.NullableString(req.Tagline),
		EstablishedYear: established,
		AgencyType:      agencyType,
		OfficeAddress:   req.OfficeAddress,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Website:         model.NullableString(req.Website),
		SocialMedia: datatypes.NewJSONType(model.SocialMedia{
			Facebook:  req.SocialMedia.Facebook,
			Instagram: req.SocialMedia.Instagram,
			LinkedIn:  req.SocialMedia.LinkedIn,
		}),
		RegistrationNumber:  model.NullableString(req.RegistrationNumber),
		License:             model.NullableString(req.License),
		BusinessCertificate: model.NullableString(req.BusinessCertificate),
		AreasCovered:        datatypes.JSONSlice[model.Area](nonNil(areas)),
		ServicesOffered:     datatypes.JSONSlice[model.ServiceType](nonNil(services)),
		PropertyTypes:       datatypes.JSONSlice[model.PropertyType](nonNil(propertyTypes)),
		PropertyDetails:     datatypes.JSONSlice[model.PropertyDetail](nonNil(propertyDetails)),
		TotalAgents:         totalAgents,
		TotalListings:       totalListings,
		Exclusive:           req.Exclusive,
		ListingLink:         model.NullableString(req.ListingLink),
		Testimonials:        datatypes.JSONSlice[model.Testimonial](testimonials),
		OverallRating:       rating,
		ResponseTime:        responseTime,
		// 新提交一律待审核，状态只能通过审核接口变更
		VerificationStatus: model.VerificationPending,
		UserID:             ownerID,
	}, nil
}

// ensureUser 归属用户必须已同步到 users 表
func ensureUser(ctx context.Context, tx *repository.ListingUnitOfWork, ownerID string) error {
	ok, err := tx.Users.Exists(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
