package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"promptgen/backend/internal/config"
	managerapp "promptgen/backend/internal/features/manager/application"
	scenarioapp "promptgen/backend/internal/features/scenario/application"
	"promptgen/backend/internal/features/scenario/infrastructure"
	workspaceapp "promptgen/backend/internal/features/workspace/application"
	"promptgen/backend/internal/observability"
	"promptgen/backend/internal/server"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configPath := os.Getenv("PROMPTGEN_CONFIG")
	if configPath == "" {
		configPath = "config/app_config.yaml"
	}
	appConfig, err := config.NewAppConfigService(configPath).LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load app config: %v", err)
	}

	logger := observability.Configure(appConfig.LogLevel)
	if observability.ParseLevel(appConfig.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	aiClient, err := infrastructure.NewAIClient(infrastructure.ClientOptions{
		Provider:      appConfig.Provider,
		CredentialEnv: appConfig.CredentialEnv,
		BaseURL:       appConfig.BaseURL,
		UseMock:       appConfig.UseMockLLM,
	})
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}
	if os.Getenv(appConfig.CredentialEnv) == "" && !appConfig.UseMockLLM {
		logger.Warn("no API credential configured; generation will report setup required", "credential_env", appConfig.CredentialEnv)
	}

	// Initialize services
	scenarioService := scenarioapp.NewScenarioService(aiClient, scenarioapp.GenerationSettings{
		Model: appConfig.Model,
		Sampling: infrastructure.SamplingParams{
			Temperature: appConfig.ModelParams.Temperature,
			TopK:        appConfig.ModelParams.TopK,
			TopP:        appConfig.ModelParams.TopP,
		},
	})
	managerService := managerapp.NewManagerService(aiClient, appConfig.ChatModel)
	workspaceService := workspaceapp.NewWorkspaceService(scenarioService, managerService, appConfig.WorkspaceTTL.Std())

	r := server.NewRouter(appConfig, workspaceService)

	logger.Info("listening", "port", appConfig.Port, "provider", aiClient.Provider(), "model", appConfig.Model)
	if err := r.Run(":" + appConfig.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
