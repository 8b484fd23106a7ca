package service

import (
	"context"
	"fmt"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/repository"
)

// ReportService 审核积压统计
type ReportService struct {
	uow *repository.ListingUnitOfWork
}

func NewReportService(uow *repository.ListingUnitOfWork) *ReportService {
	return &ReportService{uow: uow}
}

// VerificationReport 三类提交按审核状态计数
func (s *ReportService) VerificationReport(ctx context.Context) (*dto.VerificationReport, error) {
	agencies, err := s.uow.Agencies.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count agencies: %w", err)
	}
	agents, err := s.uow.Agents.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}
	projects, err := s.uow.Projects.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	return &dto.VerificationReport{
		Agencies: agencies,
		Agents:   agents,
		Projects: projects,
	}, nil
}
