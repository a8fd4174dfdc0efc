package oracle

import (
	"context"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// Status tags the outcome of one oracle call at the boundary, before any
// payload reaches the resolvers.
type Status string

const (
	StatusOK          Status = "ok"
	StatusMalformed   Status = "malformed"
	StatusUnreachable Status = "unreachable"
)

// NightOutcome carries the validated night proposals. Proposals are only
// meaningful when Status is ok; callers substitute the fallback otherwise.
type NightOutcome struct {
	Status    Status
	Proposals engine.NightProposals
}

// DayDecision is one bot's contribution to the day: a chat message and an
// optional vote. VoteTargetID nil means the bot abstains.
type DayDecision struct {
	ActorID      string  `json:"actor_id"`
	ChatMessage  string  `json:"chat_message"`
	VoteTargetID *string `json:"vote_target_id"`
}

// DayOutcome carries one validated decision per alive bot.
type DayOutcome struct {
	Status    Status
	Decisions []DayDecision
}

// Decider produces bot behavior for a session. Implementations are opaque
// beyond this contract; the engine never learns how decisions are made.
type Decider interface {
	NightDecisions(ctx context.Context, g *game.Game) NightOutcome
	DayDecisions(ctx context.Context, g *game.Game) DayOutcome
}
