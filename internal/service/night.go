package service

import (
	"context"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/narrative"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
)

// SubmitNightAction records the user's one night action, fetches the bots'
// night decisions from the decider and resolves the night into the day
// intro. A decider failure never blocks the turn: the randomized fallback
// substitutes for it. If the session was restarted or forced forward by the
// stalled-session scanner while the decider call was in flight, the result
// is discarded and the current session is returned untouched.
func SubmitNightAction(ctx context.Context, repo GameRepo, decider oracle.Decider, gameID uint, action engine.UserNightAction, actionTimeout time.Duration) (*game.Game, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Phase != game.PhaseNightAction {
		return nil, ErrWrongPhase
	}
	if err := validateNightAction(g, action); err != nil {
		return nil, err
	}

	// Push the deadline past the decider call so the stalled-session
	// scanner cannot claim the session while this request is in flight.
	g.ActionDeadline = time.Now().Add(actionTimeout)
	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}

	generation := g.Generation
	outcome := decider.NightDecisions(ctx, g)

	// The decider call can take seconds. Re-read the session and drop the
	// result if a restart bumped the generation or the scanner already
	// forced the night in the meantime.
	fresh, err := repo.GetGameByID(gameID)
	if err != nil || fresh == nil {
		return nil, ErrGameNotFound
	}
	if fresh.Generation != generation || fresh.Phase != game.PhaseNightAction {
		logging.Info("discarding stale night decisions", logging.Fields{
			constants.LogFieldGameID:     gameID,
			constants.LogFieldGeneration: fresh.Generation,
			constants.LogFieldPhase:      fresh.Phase,
		})
		return fresh, nil
	}

	proposals := outcome.Proposals
	if outcome.Status != oracle.StatusOK {
		logging.Info("night decider degraded; using fallback", logging.Fields{
			constants.LogFieldGameID: gameID,
			constants.LogFieldSource: string(outcome.Status),
		})
		proposals = oracle.FallbackNight(g)
	}

	engine.ResolveNight(g, proposals, action)
	engine.BeginDay(g)
	if g.Phase != game.PhaseGameOver {
		text := narrative.Narrate(ctx, repo, narrative.Request{
			Phase:      g.Phase,
			Day:        g.DayCount,
			Summary:    g.Message,
			Atmosphere: "uneasy",
		})
		g.AppendEvent(game.LogNarrative, "", text)
		g.ActionDeadline = time.Time{}
	}

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// validateNightAction rejects submissions the resolver would silently
// ignore, so the caller gets a clear error instead of a wasted turn.
func validateNightAction(g *game.Game, action engine.UserNightAction) error {
	user := g.UserParticipant()
	if user == nil || !user.IsAlive {
		if action.Kind == engine.UserActionNone {
			return nil
		}
		return ErrInvalidAction
	}
	switch action.Kind {
	case engine.UserActionNone:
		return nil
	case engine.UserActionRole:
		if user.Role == game.RoleVillager {
			return ErrInvalidAction
		}
		t := g.ParticipantByID(action.TargetID)
		if t == nil || !t.IsAlive {
			return ErrInvalidAction
		}
	case engine.UserActionRune:
		var found *game.Rune
		for i := range user.Runes {
			if user.Runes[i].ID == action.RuneID {
				found = &user.Runes[i]
				break
			}
		}
		if found == nil || !found.Ready() {
			return ErrInvalidAction
		}
		t := g.ParticipantByID(action.TargetID)
		if t == nil || !t.IsAlive {
			return ErrInvalidAction
		}
	default:
		return ErrInvalidAction
	}
	return nil
}
