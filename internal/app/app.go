// Package app builds the application services shared by the HTTP server
// and the terminal UI.
package app

import (
	"context"
	"fmt"

	"tirewriter/backend/internal/config"
	cfgapp "tirewriter/backend/internal/features/config/application"
	cfgdomain "tirewriter/backend/internal/features/config/domain"
	datasetapp "tirewriter/backend/internal/features/dataset/application"
	datasetinfra "tirewriter/backend/internal/features/dataset/infrastructure"
	envapp "tirewriter/backend/internal/features/environment/application"
	evalapp "tirewriter/backend/internal/features/evaluation/application"
	finetuneapp "tirewriter/backend/internal/features/finetune/application"
	finetunedomain "tirewriter/backend/internal/features/finetune/domain"
	instructionapp "tirewriter/backend/internal/features/instruction/application"
	outputapp "tirewriter/backend/internal/features/output/application"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/pacing"
	"tirewriter/backend/internal/session"
)

// DownloadBase is the route prefix of report exports.
const DownloadBase = "/api/output/report/download"

// App holds configuration, session storage and one service per module.
type App struct {
	Version          string
	Config           *config.Config
	AppConfig        *cfgdomain.AppConfig
	AppConfigService config.AppConfigService
	Sessions         session.Store

	ConfigService cfgapp.ConfigService
	Environment   envapp.EnvironmentService
	Dataset       datasetapp.DatasetService
	Instruction   instructionapp.InstructionService
	Finetune      finetuneapp.FinetuneService
	Evaluation    evalapp.EvaluationService
	Output        outputapp.OutputService
}

// New loads the app config, opens the configured session store and builds
// the services.
func New(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	appConfigService := config.NewAppConfigService(cfg.AppConfigPath)
	appConfig, err := appConfigService.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	var store session.Store
	if cfg.UsesRedis() {
		store, err = session.DialRedis(ctx, cfg.RedisURL, session.RedisStoreConfig{TTL: cfg.SessionTTL})
		if err != nil {
			return nil, err
		}
	} else {
		store = session.NewMemoryStore()
	}
	logger.Info("Session store ready", logger.Fields{"backend": store.Backend()})

	a, err := Build(cfg, appConfigService, appConfig, store, version)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// Build wires the services from already-loaded parts.
func Build(cfg *config.Config, appConfigService config.AppConfigService, appConfig *cfgdomain.AppConfig, store session.Store, version string) (*App, error) {
	catalog, err := datasetinfra.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load case catalog: %w", err)
	}

	pacer := pacing.NewScaled(cfg.PacingFactor)
	d := appConfig.Delays

	return &App{
		Version:          version,
		Config:           cfg,
		AppConfig:        appConfig,
		AppConfigService: appConfigService,
		Sessions:         store,

		ConfigService: cfgapp.NewConfigService(cfg, version, store.Backend(), appConfigService),
		Environment:   envapp.NewEnvironmentService(pacer, cfgdomain.Duration(d.EnvironmentCheckMS), cfgdomain.Duration(d.ModelLoadMS)),
		Dataset:       datasetapp.NewDatasetService(catalog),
		Instruction:   instructionapp.NewInstructionService(pacer, cfgdomain.Duration(d.ClassifyMS)),
		Finetune:      finetuneapp.NewFinetuneService(pacer, cfgdomain.Duration(d.TrainingInitMS), cfgdomain.Duration(d.TrainingStepMS), finetuneDefaults(appConfig.Finetune)),
		Evaluation:    evalapp.NewEvaluationService(),
		Output: outputapp.NewOutputService(pacer, outputapp.Delays{
			Optimize: cfgdomain.Duration(d.OptimizeMS),
			Report:   cfgdomain.Duration(d.ReportMS),
			APIDemo:  cfgdomain.Duration(d.APIDemoMS),
		}, DownloadBase),
	}, nil
}

// finetuneDefaults hands every configured field to the fine-tune service,
// which pins each one to its slider range.
func finetuneDefaults(f cfgdomain.FinetuneDefaults) finetunedomain.ParamsInput {
	return finetunedomain.ParamsInput{
		R:            &f.R,
		Alpha:        &f.Alpha,
		Dropout:      &f.Dropout,
		BatchSize:    &f.BatchSize,
		LearningRate: &f.LearningRate,
		WarmupSteps:  &f.WarmupSteps,
		MaxSteps:     &f.MaxSteps,
		SaveSteps:    &f.SaveSteps,
	}
}

// Close releases the session store.
func (a *App) Close() error {
	return a.Sessions.Close()
}
