package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/app"
	config_http "tirewriter/backend/internal/features/config/presentation/http"
	dataset_http "tirewriter/backend/internal/features/dataset/presentation/http"
	environment_http "tirewriter/backend/internal/features/environment/presentation/http"
	evaluation_http "tirewriter/backend/internal/features/evaluation/presentation/http"
	finetune_http "tirewriter/backend/internal/features/finetune/presentation/http"
	instruction_http "tirewriter/backend/internal/features/instruction/presentation/http"
	output_http "tirewriter/backend/internal/features/output/presentation/http"
	"tirewriter/backend/internal/middleware"
)

func SetupRouter(a *app.App) *gin.Engine {
	router := gin.New()

	// Recovery must be outermost: the Sentry middleware reports a panic and
	// re-panics into it
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(middleware.RequestTracking())

	// Per-visitor UI state
	cookieStore := middleware.NewCookieStore(a.Config.SessionSecret, int(a.Config.SessionTTL.Seconds()))
	router.Use(middleware.Session(cookieStore))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/health", NewHealthHandler(a.Sessions, a.Version).HealthCheck)

	router.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":    a.AppConfig.Title,
			"subtitle": a.AppConfig.Subtitle,
			"modules":  app.Modules,
		})
	})

	// Config API routes
	configGroup := router.Group("/api/config")
	{
		handler := config_http.NewAppConfigHandler(a.AppConfigService, a.ConfigService)
		configGroup.GET("/app", handler.GetAppConfigHandler)
		configGroup.POST("/app", handler.SaveAppConfigHandler)
		configGroup.GET("/runtime", handler.GetRuntimeHandler)
	}

	// Module 1: environment check and model loading
	environmentGroup := router.Group("/api/environment")
	{
		handler := environment_http.NewEnvironmentHandler(a.Environment, a.Sessions)
		environmentGroup.GET("", handler.OverviewHandler)
		environmentGroup.POST("/check", handler.CheckHandler)
		environmentGroup.POST("/model/load", handler.LoadModelHandler)
	}

	// Module 2: case browser
	datasetGroup := router.Group("/api/dataset")
	{
		handler := dataset_http.NewDatasetHandler(a.Dataset, a.Sessions)
		datasetGroup.GET("", handler.OverviewHandler)
		datasetGroup.GET("/cases", handler.ListCasesHandler)
		datasetGroup.GET("/current", handler.CurrentCaseHandler)
		datasetGroup.POST("/select/:ref", handler.SelectCaseHandler)
	}

	// Module 3: instruction type
	instructionGroup := router.Group("/api/instruction")
	{
		handler := instruction_http.NewInstructionHandler(a.Instruction)
		instructionGroup.GET("", handler.OverviewHandler)
		instructionGroup.POST("/classify", handler.ClassifyHandler)
	}

	// Module 4: LoRA configuration and simulated training
	finetuneGroup := router.Group("/api/finetune")
	{
		handler := finetune_http.NewFinetuneHandler(a.Finetune, a.Sessions)
		finetuneGroup.GET("", handler.OverviewHandler)
		finetuneGroup.POST("/train", handler.TrainHandler)
		finetuneGroup.GET("/progress", handler.ProgressHandler)
	}

	// Module 5: evaluation display
	evaluationGroup := router.Group("/api/evaluation")
	{
		handler := evaluation_http.NewEvaluationHandler(a.Evaluation)
		evaluationGroup.GET("", handler.OverviewHandler)
		evaluationGroup.GET("/:kind", handler.ReportHandler)
	}

	// Module 6: optimisation, reports and the API demo
	outputHandler := output_http.NewOutputHandler(a.Output, a.Sessions)
	outputGroup := router.Group("/api/output")
	{
		outputGroup.GET("", outputHandler.OverviewHandler)
		outputGroup.POST("/optimize", outputHandler.OptimizeHandler)
		outputGroup.GET("/optimization", outputHandler.LastOptimizationHandler)
		outputGroup.POST("/report", outputHandler.ReportHandler)
		outputGroup.GET("/report/download/:format", outputHandler.DownloadHandler)
	}
	router.POST("/api/v1/text-optimization", outputHandler.TextOptimizationHandler)
	router.POST("/v1/chat/completions", outputHandler.ChatCompletionsHandler)

	return router
}
