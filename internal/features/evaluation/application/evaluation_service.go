package application

import (
	"fmt"
	"strings"

	"tirewriter/backend/internal/features/evaluation/domain"
)

// EvaluationService defines the evaluation display.
type EvaluationService interface {
	Overview() *domain.Overview
	Report(kind string) (*domain.Report, error)
}

type evaluationService struct{}

// NewEvaluationService creates a new instance of evaluationService.
func NewEvaluationService() EvaluationService {
	return &evaluationService{}
}

func (s *evaluationService) Overview() *domain.Overview {
	kinds := make([]domain.KindOption, 0, len(domain.Kinds))
	for _, k := range domain.Kinds {
		kinds = append(kinds, domain.KindOption{Kind: k, Label: domain.Labels[k]})
	}
	return &domain.Overview{Notes: domain.Notes, Kinds: kinds}
}

// Report returns the view selected by kind, given either as "auto"/"manual"/
// "combined" or as its display label.
func (s *evaluationService) Report(kind string) (*domain.Report, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	r := domain.Reports[k]
	return &r, nil
}

// ParseKind resolves a kind name or display label.
func ParseKind(kind string) (domain.Kind, error) {
	kind = strings.TrimSpace(kind)
	for _, k := range domain.Kinds {
		if strings.EqualFold(kind, string(k)) || kind == domain.Labels[k] {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}
