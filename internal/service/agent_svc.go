package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/repository"
	"estate_listing_v1/internal/schema"
)

type AgentService struct {
	uow *repository.ListingUnitOfWork
	log *zap.Logger
}

func NewAgentService(uow *repository.ListingUnitOfWork, log *zap.Logger) *AgentService {
	return &AgentService{uow: uow, log: log}
}

// CreateAgent 经纪人入驻，允许重复提交（无自然键）
// 主表与社交链接在同一事务内写入
func (s *AgentService) CreateAgent(ctx context.Context, ownerID string, req dto.AgentPayload) (*model.Agent, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if err := requireFields(
		"fullName", req.FullName,
		"phoneNumber", req.PhoneNumber,
		"email", req.Email,
	); err != nil {
		return nil, err
	}
	if err := schema.Validate(req); err != nil {
		return nil, err
	}

	agent, err := buildAgent(ownerID, req)
	if err != nil {
		return nil, err
	}
	links := &model.SocialMediaLinks{
		Facebook:  model.NullableString(req.Facebook),
		Instagram: model.NullableString(req.Instagram),
		LinkedIn:  model.NullableString(req.LinkedIn),
	}

	err = s.uow.Transaction(ctx, func(tx *repository.ListingUnitOfWork) error {
		if err := ensureUser(ctx, tx, ownerID); err != nil {
			return err
		}
		if err := tx.Agents.Create(ctx, agent); err != nil {
			return fmt.Errorf("create agent: %w", err)
		}
		links.AgentID = agent.ID
		if err := tx.Agents.CreateSocialLinks(ctx, links); err != nil {
			return fmt.Errorf("create social links: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	agent.SocialMediaLinks = links

	s.log.Info("agent created", zap.Int64("agent_id", agent.ID), zap.String("user_id", ownerID))
	return agent, nil
}

func (s *AgentService) ListAgents(ctx context.Context) ([]model.Agent, error) {
	return s.uow.Agents.List(ctx)
}

func (s *AgentService) GetAgent(ctx context.Context, id int64) (*model.Agent, error) {
	agent, err := s.uow.Agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrListingNotFound
	}
	return agent, nil
}

// SetVerification 经纪人审核状态落在 approval_status
func (s *AgentService) SetVerification(ctx context.Context, id int64, status string) error {
	st, err := model.VerificationStatuses.Parse(status)
	if err != nil {
		return err
	}
	hit, err := s.uow.Agents.UpdateApproval(ctx, id, st)
	if err != nil {
		return err
	}
	if !hit {
		return ErrListingNotFound
	}
	s.log.Info("agent approval updated", zap.Int64("agent_id", id), zap.String("status", string(st)))
	return nil
}

func buildAgent(ownerID string, req dto.AgentPayload) (*model.Agent, error) {
	var en enums
	specialization := parseMany(&en, model.Specializations, req.Specialization)
	services := parseMany(&en, model.ServiceTypes, req.ServicesOffered)
	if err := en.err(); err != nil {
		return nil, err
	}

	var num numbers
	totalListings := num.int("totalListings", req.TotalListings)
	rating := num.float("overallRating", req.OverallRating)
	if err := num.err(); err != nil {
		return nil, err
	}

	return &model.Agent{
		FullName:           req.FullName,
		ProfilePicture:     model.NullableString(req.ProfilePicture),
		AgentType:          req.AgentType,
		Experience:         req.Experience,
		Specialization:     datatypes.JSONSlice[model.Specialization](nonNil(specialization)),
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		OfficeAddress:      model.NullableString(req.OfficeAddress),
		AgencyName:         model.NullableString(req.AgencyName),
		AgencyLogo:         model.NullableString(req.AgencyLogo),
		AgencyRegNumber:    model.NullableString(req.AgencyRegNumber),
		AreasCovered:       datatypes.JSONSlice[string](trimAll(req.AreasCovered)),
		ServicesOffered:    datatypes.JSONSlice[model.ServiceType](nonNil(services)),
		TotalListings:      totalListings,
		ListingLink:        model.NullableString(req.ListingLink),
		Testimonials:       datatypes.JSONSlice[string](nonNil([]string(req.Testimonials))),
		OverallRating:      rating,
		ResponseTime:       req.ResponseTime,
		CnicVerification:   req.CnicVerification,
		LicenseCertificate: model.NullableString(req.LicenseCertificate),
		ApprovalStatus:     model.VerificationPending,
		UserID:             ownerID,
	}, nil
}
