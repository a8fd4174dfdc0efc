package api

import (
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/storage"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo    storage.Repository
	decider oracle.Decider
	cfg     *config.LoadedConfig
}

// NewGameHandler creates a new GameHandler with the given repository, the
// decision oracle for bot behavior and the loaded server configuration.
func NewGameHandler(repo storage.Repository, decider oracle.Decider, cfg *config.LoadedConfig) *GameHandler {
	return &GameHandler{repo: repo, decider: decider, cfg: cfg}
}
