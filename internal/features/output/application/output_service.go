package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tirewriter/backend/internal/features/output/domain"
	"tirewriter/backend/internal/pacing"
	"tirewriter/backend/internal/session"
)

// OutputService defines text optimisation, report generation, exports and
// the API demo.
type OutputService interface {
	Overview() *domain.Overview
	Optimize(ctx context.Context, text string, state *session.State) (*domain.Optimization, error)
	GenerateReport(ctx context.Context, options []string) (*domain.Report, error)
	Download(format string) (*domain.Download, error)
	CallAPI(ctx context.Context, text, instructionType string) (*domain.APIResult, error)
}

// Delays groups the waits of the output page.
type Delays struct {
	Optimize time.Duration
	Report   time.Duration
	APIDemo  time.Duration
}

type outputService struct {
	pacer        pacing.Pacer
	delays       Delays
	downloadBase string
}

// NewOutputService creates a new instance of outputService. downloadBase is
// the URL prefix of the download route, e.g. "/api/output/report/download".
func NewOutputService(pacer pacing.Pacer, delays Delays, downloadBase string) OutputService {
	return &outputService{pacer: pacer, delays: delays, downloadBase: strings.TrimRight(downloadBase, "/")}
}

func (s *outputService) Overview() *domain.Overview {
	return &domain.Overview{
		Notes:                domain.Notes,
		DefaultOptimizeInput: domain.DefaultOptimizeInput,
		DefaultAPIInput:      domain.DefaultAPIInput,
		ReportOptions:        domain.ReportOptions,
		InstructionTypes:     domain.InstructionTypes,
	}
}

// Optimize waits and returns the canned optimisation for any input. The
// result is remembered in state.
func (s *outputService) Optimize(ctx context.Context, text string, state *session.State) (*domain.Optimization, error) {
	if err := s.pacer.Wait(ctx, s.delays.Optimize); err != nil {
		return nil, err
	}
	state.OptimizationResult = domain.CannedOptimization
	return &domain.Optimization{Original: text, Optimized: domain.CannedOptimization}, nil
}

// GenerateReport waits and concatenates the block of each known option in
// the order given. Unknown options are skipped.
func (s *outputService) GenerateReport(ctx context.Context, options []string) (*domain.Report, error) {
	if err := s.pacer.Wait(ctx, s.delays.Report); err != nil {
		return nil, err
	}

	report := &domain.Report{
		Message:   domain.ReportGeneratedMessage,
		Sections:  []domain.Section{},
		Downloads: s.downloads(),
	}
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		block, ok := domain.ReportBlocks[opt]
		if !ok {
			continue
		}
		report.Sections = append(report.Sections, domain.Section{Option: opt, Markdown: block})
		parts = append(parts, block)
	}
	report.Markdown = strings.Join(parts, "\n")
	return report, nil
}

// Download returns the placeholder export for "pdf" or "docx".
func (s *outputService) Download(format string) (*domain.Download, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	for _, d := range s.downloads() {
		if d.Format == format {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

// CallAPI waits and returns the canned optimisation whatever the inputs.
func (s *outputService) CallAPI(ctx context.Context, _ string, instructionType string) (*domain.APIResult, error) {
	if err := s.pacer.Wait(ctx, s.delays.APIDemo); err != nil {
		return nil, err
	}
	return &domain.APIResult{
		Message:         domain.APISuccessMessage,
		InstructionType: instructionType,
		OptimizedText:   domain.CannedOptimization,
	}, nil
}

func (s *outputService) downloads() []domain.Download {
	out := make([]domain.Download, len(domain.Downloads))
	for i, d := range domain.Downloads {
		d.URL = s.downloadBase + "/" + d.Format
		out[i] = d
	}
	return out
}
