package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/narrative"

	"github.com/google/uuid"
)

// GameRepo is the minimal repository interface the service layer requires.
// Using a small interface simplifies testing.
type GameRepo interface {
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	UpdateGame(g *game.Game) error
	ClearSessionState(gameID uint) error
	ClearPendingVotes(gameID uint) error
	GetNarrationByKey(key string) (string, error)
	SaveNarration(key, text string) error
}

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrWrongPhase    = errors.New("action not allowed in the current phase")
	ErrUnknownRole   = errors.New("unknown role")
	ErrInvalidAction = errors.New("invalid night action")
)

// StartGame builds the fixed-size roster around the user's chosen role and
// brings the new session to the night-action phase, awaiting the user's
// first input. The created game is persisted via the repository.
func StartGame(ctx context.Context, repo GameRepo, cfg *config.LoadedConfig, playerName string, humanRole game.Role) (*game.Game, error) {
	switch humanRole {
	case game.RoleVillager, game.RoleWerewolf, game.RoleSeer, game.RoleDoctor:
	default:
		return nil, ErrUnknownRole
	}

	g := &game.Game{
		Phase:        game.PhaseSetup,
		DayCount:     1,
		Generation:   1,
		Participants: buildRoster(cfg, playerName, humanRole),
	}
	g.UserParticipantID = g.Participants[0].PublicID

	engine.StartNight(g)
	openNightAction(ctx, repo, g, cfg.ActionTimeout)

	if err := repo.CreateGame(g); err != nil {
		return nil, err
	}
	logging.Info("game started", logging.Fields{
		constants.LogFieldGameID: g.ID,
		constants.LogFieldPhase:  g.Phase,
		constants.LogFieldDay:    g.DayCount,
	})
	return g, nil
}

// buildRoster assembles the roster: the user in slot zero, bots drawn from
// the configured name pool, roles assigned per the fixed composition and one
// configured rune each, ready to use.
func buildRoster(cfg *config.LoadedConfig, playerName string, humanRole game.Role) []game.Participant {
	names := append([]string(nil), cfg.BotNames...)
	rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	participants := make([]game.Participant, game.RosterSize)
	for i := range participants {
		p := &participants[i]
		p.PublicID = uuid.NewString()
		p.IsAlive = true
		if i == 0 {
			p.Name = playerName
		} else {
			p.Name = names[i-1]
			p.IsOracleControlled = true
		}
		rd := cfg.Runes[rand.Intn(len(cfg.Runes))]
		p.Runes = []game.Rune{{Name: rd.Name, Kind: rd.Kind, CooldownPeriod: rd.CooldownPeriod, RemainingCooldown: 0}}
	}
	game.AssignRoles(participants, humanRole)
	return participants
}

// openNightAction narrates the night intro the session is already in and
// opens the night-action window with a fresh deadline.
func openNightAction(ctx context.Context, repo GameRepo, g *game.Game, actionTimeout time.Duration) {
	text := narrative.Narrate(ctx, repo, narrative.Request{
		Phase:      g.Phase,
		Day:        g.DayCount,
		Summary:    g.Message,
		Atmosphere: "tense",
	})
	g.AppendEvent(game.LogNarrative, "", text)
	engine.BeginNightAction(g)
	g.ActionDeadline = time.Now().Add(actionTimeout)
}
