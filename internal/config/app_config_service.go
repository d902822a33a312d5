package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"tirewriter/backend/internal/features/config/domain"
	"tirewriter/backend/internal/logger"
)

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
	Path() string
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	mu         sync.Mutex
	configPath string
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string) AppConfigService {
	return &appConfigService{configPath: configPath}
}

func (s *appConfigService) Path() string {
	return s.configPath
}

// LoadAppConfig loads the application configuration from the configured JSON file.
// A missing file yields the built-in defaults; zero delays in the file are
// filled from the defaults as well.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("App config not found, using defaults", logger.Fields{"path": absPath})
		return domain.DefaultAppConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	appConfig := domain.DefaultAppConfig()
	if err := json.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}
	fillDelayDefaults(&appConfig.Delays)

	logger.Debug("App config loaded", logger.Fields{"path": absPath})
	return appConfig, nil
}

// SaveAppConfig saves the application configuration to the configured JSON file.
func (s *appConfigService) SaveAppConfig(appConfig *domain.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := json.MarshalIndent(appConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", absPath, err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write app config to file %s: %w", absPath, err)
	}

	return nil
}

func fillDelayDefaults(d *domain.Delays) {
	def := domain.DefaultAppConfig().Delays
	fill := func(v *int, fallback int) {
		if *v <= 0 {
			*v = fallback
		}
	}
	fill(&d.EnvironmentCheckMS, def.EnvironmentCheckMS)
	fill(&d.ModelLoadMS, def.ModelLoadMS)
	fill(&d.ClassifyMS, def.ClassifyMS)
	fill(&d.TrainingInitMS, def.TrainingInitMS)
	fill(&d.TrainingStepMS, def.TrainingStepMS)
	fill(&d.OptimizeMS, def.OptimizeMS)
	fill(&d.ReportMS, def.ReportMS)
	fill(&d.APIDemoMS, def.APIDemoMS)
}
