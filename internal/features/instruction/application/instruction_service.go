package application

import (
	"context"
	"time"

	"tirewriter/backend/internal/features/instruction/domain"
	"tirewriter/backend/internal/pacing"
)

// InstructionService defines the instruction-type page.
type InstructionService interface {
	Overview() *domain.Overview
	Classify(ctx context.Context, text string) (*domain.Classification, error)
}

type instructionService struct {
	pacer pacing.Pacer
	delay time.Duration
}

// NewInstructionService creates a new instance of instructionService.
func NewInstructionService(pacer pacing.Pacer, delay time.Duration) InstructionService {
	return &instructionService{pacer: pacer, delay: delay}
}

func (s *instructionService) Overview() *domain.Overview {
	return &domain.Overview{Notes: domain.Notes, DefaultInput: domain.DefaultInput}
}

// Classify waits and returns the fixed classification; text is not inspected.
func (s *instructionService) Classify(ctx context.Context, _ string) (*domain.Classification, error) {
	if err := s.pacer.Wait(ctx, s.delay); err != nil {
		return nil, err
	}
	result := domain.FixedClassification
	result.Probabilities = append([]domain.Probability(nil), domain.FixedClassification.Probabilities...)
	return &result, nil
}
