package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/config"
	"tirewriter/backend/internal/features/config/application"
	"tirewriter/backend/internal/features/config/domain"
	"tirewriter/backend/internal/logger"
)

// AppConfigHandler holds the app config service.
type AppConfigHandler struct {
	appConfigService config.AppConfigService
	configService    application.ConfigService
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfigService config.AppConfigService, configService application.ConfigService) *AppConfigHandler {
	return &AppConfigHandler{
		appConfigService: appConfigService,
		configService:    configService,
	}
}

// GetAppConfigHandler handles fetching the application configuration.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	appConfig, err := h.appConfigService.LoadAppConfig()
	if err != nil {
		logger.ErrorCtx(c, "Failed to load app config", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load app config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, appConfig)
}

// SaveAppConfigHandler handles saving the application configuration.
// The body is merged over the stored config, so fields it omits keep their
// values. Saved delays and fine-tune defaults apply on the next process start.
func (h *AppConfigHandler) SaveAppConfigHandler(c *gin.Context) {
	appConfig, err := h.appConfigService.LoadAppConfig()
	if err != nil {
		logger.WarnCtx(c, "Stored app config unreadable, merging over defaults", logger.Fields{"error": err.Error()})
		appConfig = domain.DefaultAppConfig()
	}
	if err := c.ShouldBindJSON(appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.appConfigService.SaveAppConfig(appConfig); err != nil {
		logger.ErrorCtx(c, "Failed to save app config", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save app config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App config saved successfully"})
}

// GetRuntimeHandler reports how the process is configured.
func (h *AppConfigHandler) GetRuntimeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.Runtime())
}
