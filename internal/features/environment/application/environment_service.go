package application

import (
	"context"
	"time"

	"tirewriter/backend/internal/features/environment/domain"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/pacing"
	"tirewriter/backend/internal/session"
)

// EnvironmentService defines the environment check and model loading page.
type EnvironmentService interface {
	Overview(state session.State) *domain.Overview
	CheckEnvironment(ctx context.Context) ([]domain.Check, error)
	LoadModel(ctx context.Context, state *session.State) (*domain.LoadResult, error)
}

// environmentService is the implementation of EnvironmentService.
type environmentService struct {
	pacer      pacing.Pacer
	checkDelay time.Duration
	loadDelay  time.Duration
}

// NewEnvironmentService creates a new instance of environmentService.
func NewEnvironmentService(pacer pacing.Pacer, checkDelay, loadDelay time.Duration) EnvironmentService {
	return &environmentService{pacer: pacer, checkDelay: checkDelay, loadDelay: loadDelay}
}

func (s *environmentService) Overview(state session.State) *domain.Overview {
	ov := &domain.Overview{
		Architecture: domain.Architecture,
		Resources:    domain.Resources,
		ModelInfo:    domain.ModelInfo,
		ModelLoaded:  state.ModelLoaded,
	}
	if state.ModelLoaded {
		ov.Status = domain.StatusLoaded
		ov.Indicators = domain.Indicators
	} else {
		ov.Status = domain.StatusNotLoaded
		ov.Notice = domain.LoadModelHint
	}
	return ov
}

// CheckEnvironment waits, then reports every component as present.
func (s *environmentService) CheckEnvironment(ctx context.Context) ([]domain.Check, error) {
	if err := s.pacer.Wait(ctx, s.checkDelay); err != nil {
		return nil, err
	}
	checks := make([]domain.Check, len(domain.Checks))
	for i, c := range domain.Checks {
		c.Label = "✅ " + c.Component + " " + c.Version
		checks[i] = c
	}
	return checks, nil
}

// LoadModel waits, then marks the model as loaded. Once loaded it stays loaded.
func (s *environmentService) LoadModel(ctx context.Context, state *session.State) (*domain.LoadResult, error) {
	if err := s.pacer.Wait(ctx, s.loadDelay); err != nil {
		return nil, err
	}
	if state.ModelLoaded {
		logger.Debug("Model already loaded", logger.Fields{"module": "environment"})
	}
	state.ModelLoaded = true
	return &domain.LoadResult{ModelLoaded: true, Message: domain.ModelLoadedMessage}, nil
}
