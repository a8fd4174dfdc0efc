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

// HandleStalledGame forces a session past its action deadline using the
// randomized fallback instead of waiting any longer for input:
//   - stalled in night_action: the user's action is treated as a pass and
//     the night resolves with fallback proposals
//   - stalled in day_voting: the user abstains and the stored bot votes
//     decide the day
//
// Either way the session lands on a phase that awaits input again (or on
// game over), with a fresh deadline.
//
// The caller claims the session before loading it. A user request that
// arrived after the claim pushes the deadline forward, so a future deadline
// here means the session is live again and the claim is void.
func HandleStalledGame(ctx context.Context, repo GameRepo, g *game.Game, actionTimeout time.Duration) error {
	if g.ActionDeadline.IsZero() || g.ActionDeadline.After(time.Now()) {
		return nil
	}
	g.ClaimedBy = ""
	g.ClaimedUntil = time.Time{}

	switch g.Phase {
	case game.PhaseNightAction:
		logging.Info("night action timed out; resolving with fallback", logging.Fields{
			constants.LogFieldGameID: g.ID,
			constants.LogFieldDay:    g.DayCount,
		})
		engine.ResolveNight(g, oracle.FallbackNight(g), engine.UserNightAction{})
		engine.BeginDay(g)
		if g.Phase == game.PhaseGameOver {
			return repo.UpdateGame(g)
		}
		text := narrative.Narrate(ctx, repo, narrative.Request{
			Phase:      g.Phase,
			Day:        g.DayCount,
			Summary:    g.Message,
			Atmosphere: "uneasy",
		})
		g.AppendEvent(game.LogNarrative, "", text)

		engine.BeginDiscussion(g)
		g.PendingVotes = pendingVotes(g.ID, oracle.FallbackDay(g))
		engine.BeginVoting(g)
		g.ActionDeadline = time.Now().Add(actionTimeout)
		return repo.UpdateGame(g)

	case game.PhaseDayVoting:
		logging.Info("day vote timed out; user abstains", logging.Fields{
			constants.LogFieldGameID: g.ID,
			constants.LogFieldDay:    g.DayCount,
		})
		votes := make([]engine.Vote, 0, len(g.PendingVotes))
		for _, pv := range g.PendingVotes {
			votes = append(votes, engine.Vote{VoterID: pv.VoterID, TargetID: pv.TargetID})
		}
		engine.FinishVoting(g, votes)
		if err := repo.ClearPendingVotes(g.ID); err != nil {
			return err
		}
		g.PendingVotes = nil
		if g.Phase != game.PhaseGameOver {
			openNightAction(ctx, repo, g, actionTimeout)
		}
		return repo.UpdateGame(g)

	default:
		// Deadlines only apply to the two input-awaiting phases.
		return nil
	}
}
