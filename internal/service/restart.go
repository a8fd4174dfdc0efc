package service

import (
	"context"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
)

// RestartGame wipes the session's state and rebuilds a fresh roster around
// the same user name and role. The generation counter is bumped so decider
// results still in flight for the old session are discarded on arrival.
func RestartGame(ctx context.Context, repo GameRepo, cfg *config.LoadedConfig, gameID uint) (*game.Game, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}

	playerName := "Player"
	humanRole := game.RoleVillager
	if user := g.UserParticipant(); user != nil {
		playerName = user.Name
		humanRole = user.Role
	}

	if err := repo.ClearSessionState(g.ID); err != nil {
		return nil, err
	}

	g.Generation++
	g.Phase = game.PhaseSetup
	g.DayCount = 1
	g.Winner = game.WinnerNone
	g.Message = ""
	g.NightKillTargetID = nil
	g.NightSaveTargetID = nil
	g.Events = nil
	g.Knowledge = nil
	g.PendingVotes = nil
	g.Participants = buildRoster(cfg, playerName, humanRole)
	g.UserParticipantID = g.Participants[0].PublicID

	engine.StartNight(g)
	openNightAction(ctx, repo, g, cfg.ActionTimeout)

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	logging.Info("game restarted", logging.Fields{
		constants.LogFieldGameID:     g.ID,
		constants.LogFieldGeneration: g.Generation,
	})
	return g, nil
}
