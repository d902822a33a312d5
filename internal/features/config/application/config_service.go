package application

import (
	"tirewriter/backend/internal/config"
	"tirewriter/backend/internal/features/config/domain"
)

// ConfigService describes how the running process is configured.
type ConfigService interface {
	Runtime() *domain.RuntimeInfo
}

// configService is the implementation of ConfigService.
type configService struct {
	cfg          *config.Config
	version      string
	storeBackend string
	appConfig    config.AppConfigService
}

// NewConfigService creates a new instance of configService.
func NewConfigService(cfg *config.Config, version, storeBackend string, appConfig config.AppConfigService) ConfigService {
	return &configService{cfg: cfg, version: version, storeBackend: storeBackend, appConfig: appConfig}
}

// Runtime reports environment, version, pacing and session backend.
func (s *configService) Runtime() *domain.RuntimeInfo {
	return &domain.RuntimeInfo{
		Environment:  s.cfg.Environment,
		Version:      s.version,
		PacingFactor: s.cfg.PacingFactor,
		SessionStore: s.storeBackend,
		AppConfig:    s.appConfig.Path(),
	}
}
