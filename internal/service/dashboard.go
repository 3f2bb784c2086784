package service

import (
	"context"

	"abcip/internal/model"
	"abcip/internal/repository"
)

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	repo repository.StatsRepository
}

func NewDashboardService(repo repository.StatsRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return s.repo.Dashboard(ctx)
}
