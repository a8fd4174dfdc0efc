package service

import (
	"context"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
)

// RunDiscussion drives the day discussion: it fetches the bots' day
// decisions once, emits their chat messages onto the event log paced by
// chatDelay, stores their votes for the voting phase and opens the vote.
// The user's own vote arrives later through SubmitVote.
func RunDiscussion(ctx context.Context, repo GameRepo, decider oracle.Decider, gameID uint, chatDelay, actionTimeout time.Duration) (*game.Game, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Phase != game.PhaseDayIntro {
		return nil, ErrWrongPhase
	}
	engine.BeginDiscussion(g)

	generation := g.Generation
	outcome := decider.DayDecisions(ctx, g)

	fresh, err := repo.GetGameByID(gameID)
	if err != nil || fresh == nil {
		return nil, ErrGameNotFound
	}
	if fresh.Generation != generation {
		logging.Info("discarding stale day decisions", logging.Fields{
			constants.LogFieldGameID:     gameID,
			constants.LogFieldGeneration: fresh.Generation,
		})
		return fresh, nil
	}

	decisions := outcome.Decisions
	if outcome.Status != oracle.StatusOK {
		logging.Info("day decider degraded; using fallback", logging.Fields{
			constants.LogFieldGameID: gameID,
			constants.LogFieldSource: string(outcome.Status),
		})
		decisions = oracle.FallbackDay(g)
	}

	for i, d := range decisions {
		if d.ChatMessage == "" {
			continue
		}
		// chatDelay is bounded at config load, so the total sleep here
		// stays within a few seconds per message.
		if i > 0 && chatDelay > 0 {
			time.Sleep(chatDelay)
		}
		if p := g.ParticipantByID(d.ActorID); p != nil {
			g.AppendEvent(game.LogChat, p.Name, d.ChatMessage)
		}
	}
	g.PendingVotes = pendingVotes(g.ID, decisions)

	engine.BeginVoting(g)
	g.ActionDeadline = time.Now().Add(actionTimeout)

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// SubmitVote folds the user's vote into the bots' stored votes, resolves
// the day and either finishes the game or loops back into the next night.
// An empty targetID means the user abstains.
func SubmitVote(ctx context.Context, repo GameRepo, gameID uint, targetID string, actionTimeout time.Duration) (*game.Game, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Phase != game.PhaseDayVoting {
		return nil, ErrWrongPhase
	}

	// Push the deadline forward so the stalled-session scanner cannot
	// claim the session while this request is being handled.
	g.ActionDeadline = time.Now().Add(actionTimeout)
	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}

	votes := make([]engine.Vote, 0, len(g.PendingVotes)+1)
	for _, pv := range g.PendingVotes {
		votes = append(votes, engine.Vote{VoterID: pv.VoterID, TargetID: pv.TargetID})
	}
	if targetID != "" {
		votes = append(votes, engine.Vote{VoterID: g.UserParticipantID, TargetID: targetID})
	}

	engine.FinishVoting(g, votes)

	if err := repo.ClearPendingVotes(g.ID); err != nil {
		return nil, err
	}
	g.PendingVotes = nil

	if g.Phase != game.PhaseGameOver {
		openNightAction(ctx, repo, g, actionTimeout)
	}

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

func pendingVotes(gameID uint, decisions []oracle.DayDecision) []game.PendingVote {
	out := make([]game.PendingVote, 0, len(decisions))
	for _, d := range decisions {
		if d.VoteTargetID == nil {
			continue
		}
		out = append(out, game.PendingVote{GameID: gameID, VoterID: d.ActorID, TargetID: *d.VoteTargetID})
	}
	return out
}
