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

type ProjectService struct {
	uow *repository.ListingUnitOfWork
	log *zap.Logger
}

func NewProjectService(uow *repository.ListingUnitOfWork, log *zap.Logger) *ProjectService {
	return &ProjectService{uow: uow, log: log}
}

// projectDraft 主表 + 待写入的子表
type projectDraft struct {
	project *model.Project
	price   *model.PriceRange
	agents  []model.AuthorizedAgent
	images  []model.ProjectImage
}

// CreateProject 楼盘项目发布，允许重复提交
// 价格区间、授权代理、图片与主表在同一事务内写入
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, req dto.ProjectPayload) (*model.Project, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if err := requireFields(
		"name", req.Name,
		"developerName", req.DeveloperName,
		"city", req.City,
		"area", req.Area,
	); err != nil {
		return nil, err
	}
	if err := schema.Validate(req); err != nil {
		return nil, err
	}

	draft, err := buildProject(ownerID, req)
	if err != nil {
		return nil, err
	}
	project := draft.project

	err = s.uow.Transaction(ctx, func(tx *repository.ListingUnitOfWork) error {
		if err := ensureUser(ctx, tx, ownerID); err != nil {
			return err
		}
		if err := tx.Projects.Create(ctx, project); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		draft.price.ProjectID = project.ID
		if err := tx.Projects.CreatePriceRange(ctx, draft.price); err != nil {
			return fmt.Errorf("create price range: %w", err)
		}
		for i := range draft.agents {
			draft.agents[i].ProjectID = project.ID
		}
		if err := tx.Projects.CreateAuthorizedAgents(ctx, draft.agents); err != nil {
			return fmt.Errorf("create authorized agents: %w", err)
		}
		for i := range draft.images {
			draft.images[i].ProjectID = project.ID
		}
		if err := tx.Projects.CreateImages(ctx, draft.images); err != nil {
			return fmt.Errorf("create images: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.PriceRange = draft.price
	project.AuthorizedAgents = draft.agents
	project.Images = draft.images

	s.log.Info("project created",
		zap.Int64("project_id", project.ID),
		zap.String("user_id", ownerID),
		zap.Int("images", len(draft.images)))
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.uow.Projects.List(ctx)
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.uow.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrListingNotFound
	}
	return project, nil
}

func (s *ProjectService) SetVerification(ctx context.Context, id int64, status string) error {
	st, err := model.VerificationStatuses.Parse(status)
	if err != nil {
		return err
	}
	hit, err := s.uow.Projects.UpdateVerification(ctx, id, st)
	if err != nil {
		return err
	}
	if !hit {
		return ErrListingNotFound
	}
	s.log.Info("project verification updated", zap.Int64("project_id", id), zap.String("status", string(st)))
	return nil
}

func buildProject(ownerID string, req dto.ProjectPayload) (*projectDraft, error) {
	var en enums
	projectType := parseOne(&en, model.ProjectTypes, req.ProjectType, "")
	projectStatus := parseOne(&en, model.ProjectStatuses, req.ProjectStatus, "")
	paymentPlan := parseOne(&en, model.PaymentPlans, req.PaymentPlan, model.PaymentInstallments)
	units := parseMany(&en, model.UnitTypes, req.AvailableUnits)
	if err := en.err(); err != nil {
		return nil, err
	}

	launch, err := schema.ParseDate(req.LaunchDate)
	if err != nil {
		return nil, fmt.Errorf("launchDate: %w", err)
	}
	completion, err := schema.ParseDate(req.ExpectedCompletion)
	if err != nil {
		return nil, fmt.Errorf("expectedCompletion: %w", err)
	}

	var num numbers
	price := &model.PriceRange{
		MinPrice: num.float("priceRange.minPrice", req.PriceRange.MinPrice),
		MaxPrice: num.float("priceRange.maxPrice", req.PriceRange.MaxPrice),
	}
	if err := num.err(); err != nil {
		return nil, err
	}

	agents := make([]model.AuthorizedAgent, 0, len(req.AuthorizedAgents))
	for _, a := range req.AuthorizedAgents {
		agents = append(agents, model.AuthorizedAgent{Email: a.Email, Phone: a.Phone})
	}
	images := make([]model.ProjectImage, 0, len(req.Images))
	for i, url := range req.Images {
		images = append(images, model.ProjectImage{URL: url, Position: i})
	}

	project := &model.Project{
		Name:                req.Name,
		DeveloperName:       req.DeveloperName,
		ProjectType:         projectType,
		ProjectStatus:       projectStatus,
		LaunchDate:          launch,
		ExpectedCompletion:  completion,
		City:                req.City,
		Area:                req.Area,
		GoogleMapsLink:      req.GoogleMapsLink,
		NearbyLandmarks:     req.NearbyLandmarks,
		AvailableUnits:      datatypes.JSONSlice[model.UnitType](nonNil(units)),
		SizesAndLayouts:     req.SizesAndLayouts,
		PaymentPlan:         paymentPlan,
		BasicAmenities:      datatypes.JSONSlice[string](trimAll(req.BasicAmenities)),
		LuxuryFeatures:      datatypes.JSONSlice[string](trimAll(req.LuxuryFeatures)),
		NearbyFacilities:    datatypes.JSONSlice[string](nonNil([]string(req.NearbyFacilities))),
		GovernmentApprovals: datatypes.JSONSlice[string](trimAll(req.GovernmentApprovals)),
		RegistrationDetails: req.RegistrationDetails,
		DeveloperPhone:      req.DeveloperPhone,
		BookingProcedure:    req.BookingProcedure,
		VerificationStatus:  model.VerificationPending,
		UserID:              ownerID,
	}
	return &projectDraft{project: project, price: price, agents: agents, images: images}, nil
}
