package application

import (
	"fmt"

	"tirewriter/backend/internal/features/dataset/domain"
	"tirewriter/backend/internal/features/dataset/infrastructure"
	"tirewriter/backend/internal/session"
)

// DatasetService defines the case browser.
type DatasetService interface {
	Overview() *domain.Overview
	List() []domain.Case
	Select(state *session.State, ref string) (*domain.CaseView, error)
	Current(state session.State) (*domain.CaseView, error)
}

// datasetService is the implementation of DatasetService.
type datasetService struct {
	repo infrastructure.CaseRepository
}

// NewDatasetService creates a new instance of datasetService.
func NewDatasetService(repo infrastructure.CaseRepository) DatasetService {
	return &datasetService{repo: repo}
}

func (s *datasetService) Overview() *domain.Overview {
	cases := s.repo.List()
	keys := make([]string, 0, len(cases))
	for _, c := range cases {
		keys = append(keys, c.Key)
	}
	return &domain.Overview{
		Notes:          domain.OverviewNotes,
		CaseKeys:       keys,
		TrainSize:      domain.TrainSize,
		ValidationSize: domain.ValidationSize,
		TestSize:       domain.TestSize,
	}
}

func (s *datasetService) List() []domain.Case {
	return s.repo.List()
}

// Select resolves ref and records the case key as the session's current case.
func (s *datasetService) Select(state *session.State, ref string) (*domain.CaseView, error) {
	c, err := s.repo.Get(ref)
	if err != nil {
		return nil, err
	}
	state.CurrentCase = c.Key
	return viewOf(c), nil
}

// Current returns the session's current case, or the first case if none is set.
func (s *datasetService) Current(state session.State) (*domain.CaseView, error) {
	ref := state.CurrentCase
	if ref == "" {
		ref = session.DefaultCase
	}
	c, err := s.repo.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("current case: %w", err)
	}
	return viewOf(c), nil
}

func viewOf(c domain.Case) *domain.CaseView {
	m := c.Metrics
	return &domain.CaseView{
		Case: c,
		Bars: []domain.MetricBar{
			bar("ROUGE-L", m.RougeL),
			bar("BLEU", m.BLEU),
			bar("语义相似度", m.SemanticSimilarity),
			bar("视角转换准确度", m.PerspectiveAccuracy),
		},
	}
}

func bar(label string, v float64) domain.MetricBar {
	return domain.MetricBar{Label: label, Value: v, Caption: fmt.Sprintf("%s: %.3f", label, v)}
}
