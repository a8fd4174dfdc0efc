package main

import (
	"os"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/api"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	checkEnvVars([]string{constants.EnvOpenAIAPIKey})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./werewolf_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	applyPromptTemplates(cfg)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/werewolf.db"
	}
	repo := createRepositoryOrExit(dbPath)

	decider := oracle.NewOpenAI(30 * time.Second)
	handler := api.NewGameHandler(repo, decider, cfg)

	startStalledScanner(repo, cfg.ActionTimeout, uuid.NewString())

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.POST(constants.RouteGames, handler.CreateGame)
		apiRoutes.GET(constants.RouteGameByID, handler.GetGame)
		apiRoutes.GET(constants.RouteGameEvents, handler.ListEvents)
		apiRoutes.POST(constants.RouteGameNight, handler.NightAction)
		apiRoutes.POST(constants.RouteGameDiscussion, handler.Discussion)
		apiRoutes.POST(constants.RouteGameVote, handler.Vote)
		apiRoutes.POST(constants.RouteGameRestart, handler.RestartGame)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
