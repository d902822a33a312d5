package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"tirewriter/backend/internal/features/finetune/domain"
	"tirewriter/backend/internal/pacing"
	"tirewriter/backend/internal/session"
)

// ProgressFunc receives each value of the training counter, 0 through 100.
type ProgressFunc func(domain.Progress)

// FinetuneService defines the LoRA configuration and simulated training page.
type FinetuneService interface {
	Overview() *domain.Overview
	Normalize(in domain.ParamsInput) domain.Params
	Train(ctx context.Context, params domain.Params, state *session.State, onInit func(string), onProgress ProgressFunc) (*domain.Result, error)
}

type finetuneService struct {
	pacer     pacing.Pacer
	initDelay time.Duration
	stepDelay time.Duration
	defaults  domain.Params
}

// NewFinetuneService creates a new instance of finetuneService. Fields set in
// defaults replace the built-in panel defaults, pinned to their ranges.
func NewFinetuneService(pacer pacing.Pacer, initDelay, stepDelay time.Duration, defaults domain.ParamsInput) FinetuneService {
	return &finetuneService{
		pacer:     pacer,
		initDelay: initDelay,
		stepDelay: stepDelay,
		defaults:  normalize(defaults, schemaDefaults()),
	}
}

func (s *finetuneService) Overview() *domain.Overview {
	return &domain.Overview{
		Notes:    domain.Notes,
		Schema:   domain.Schema,
		Defaults: s.Normalize(domain.ParamsInput{}),
	}
}

// Normalize fills absent fields with the configured defaults and pins slider
// fields to their ranges and steps.
func (s *finetuneService) Normalize(in domain.ParamsInput) domain.Params {
	return normalize(in, s.defaults)
}

func normalize(in domain.ParamsInput, base domain.Params) domain.Params {
	byName := make(map[string]domain.Parameter, len(domain.Schema))
	for _, p := range domain.Schema {
		byName[p.Name] = p
	}

	intParam := func(name string, v *int, fallback int) int {
		p := byName[name]
		if v == nil {
			return fallback
		}
		return int(clamp(float64(*v), p.Min, p.Max))
	}

	dropout := base.Dropout
	if in.Dropout != nil {
		p := byName["dropout"]
		dropout = clamp(snap(*in.Dropout, p.Step), p.Min, p.Max)
	}

	lr := base.LearningRate
	if in.LearningRate != nil && *in.LearningRate > 0 {
		lr = *in.LearningRate
	}

	return domain.Params{
		R:            intParam("r", in.R, base.R),
		Alpha:        intParam("alpha", in.Alpha, base.Alpha),
		Dropout:      dropout,
		BatchSize:    intParam("batch_size", in.BatchSize, base.BatchSize),
		LearningRate: lr,
		WarmupSteps:  intParam("warmup_steps", in.WarmupSteps, base.WarmupSteps),
		MaxSteps:     intParam("max_steps", in.MaxSteps, base.MaxSteps),
		SaveSteps:    intParam("save_steps", in.SaveSteps, base.SaveSteps),
	}
}

// schemaDefaults is the panel as it ships, before any configured override.
func schemaDefaults() domain.Params {
	def := make(map[string]float64, len(domain.Schema))
	for _, p := range domain.Schema {
		def[p.Name] = p.Default
	}
	return domain.Params{
		R:            int(def["r"]),
		Alpha:        int(def["alpha"]),
		Dropout:      def["dropout"],
		BatchSize:    int(def["batch_size"]),
		LearningRate: def["learning_rate"],
		WarmupSteps:  int(def["warmup_steps"]),
		MaxSteps:     int(def["max_steps"]),
		SaveSteps:    int(def["save_steps"]),
	}
}

// Train waits for the init delay, then advances the counter from 0 to 100
// one step at a time. state.TrainingProgress tracks the counter.
func (s *finetuneService) Train(ctx context.Context, params domain.Params, state *session.State, onInit func(string), onProgress ProgressFunc) (*domain.Result, error) {
	if err := s.pacer.Wait(ctx, s.initDelay); err != nil {
		return nil, err
	}
	state.TrainingProgress = 0
	if onInit != nil {
		onInit(domain.InitMessage)
	}

	for i := 0; i <= domain.ProgressMax; i++ {
		if err := s.pacer.Wait(ctx, s.stepDelay); err != nil {
			return nil, err
		}
		state.TrainingProgress = i
		if onProgress != nil {
			onProgress(domain.Progress{Progress: i, Text: fmt.Sprintf("训练进度: %d%%", i)})
		}
	}

	result := domain.FixedResult
	result.Params = params
	return &result, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// snap rounds v to the nearest multiple of step.
func snap(v, step float64) float64 {
	perUnit := math.Round(1 / step)
	return math.Round(v*perUnit) / perUnit
}
