package oracle

import (
	"context"
	"math/rand"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// Fallback is the degradation path for oracle failures: uniformly-random
// alive targets for kill, save and check, an empty rune-use list, and
// random votes with no chat. It keeps the state machine moving when the
// real oracle is unreachable and doubles as an offline decision source.
type Fallback struct{}

func (Fallback) NightDecisions(ctx context.Context, g *game.Game) NightOutcome {
	return NightOutcome{Status: StatusOK, Proposals: FallbackNight(g)}
}

func (Fallback) DayDecisions(ctx context.Context, g *game.Game) DayOutcome {
	return DayOutcome{Status: StatusOK, Decisions: FallbackDay(g)}
}

// FallbackNight proposes a uniformly-random alive target for each role that
// still has an alive bot actor, and never uses runes.
func FallbackNight(g *game.Game) engine.NightProposals {
	var props engine.NightProposals
	if hasAliveBotRole(g, game.RoleWerewolf) {
		props.WerewolfKillTargetID = randomAliveID(g, game.RoleWerewolf)
	}
	if hasAliveBotRole(g, game.RoleDoctor) {
		props.DoctorSaveTargetID = randomAliveID(g, game.RoleDoctor)
	}
	if hasAliveBotRole(g, game.RoleSeer) {
		props.SeerCheckTargetID = randomAliveID(g, game.RoleSeer)
	}
	return props
}

// FallbackDay gives each alive bot a uniformly-random vote and no chat.
func FallbackDay(g *game.Game) []DayDecision {
	out := make([]DayDecision, 0, len(g.Participants))
	for i := range g.Participants {
		p := &g.Participants[i]
		if !p.IsAlive || !p.IsOracleControlled {
			continue
		}
		out = append(out, DayDecision{
			ActorID:      p.PublicID,
			VoteTargetID: randomOtherAliveID(g, p.PublicID),
		})
	}
	return out
}

// randomAliveID picks a random living target for the acting role. The
// acting role's own seats are excluded, so wolves never target wolves.
func randomAliveID(g *game.Game, actingRole game.Role) *string {
	candidates := make([]string, 0, len(g.Participants))
	for i := range g.Participants {
		p := &g.Participants[i]
		if !p.IsAlive {
			continue
		}
		if actingRole == game.RoleWerewolf && p.Role == game.RoleWerewolf {
			continue
		}
		candidates = append(candidates, p.PublicID)
	}
	if len(candidates) == 0 {
		return nil
	}
	id := candidates[rand.Intn(len(candidates))]
	return &id
}

func randomOtherAliveID(g *game.Game, selfID string) *string {
	candidates := make([]string, 0, len(g.Participants))
	for i := range g.Participants {
		p := &g.Participants[i]
		if p.IsAlive && p.PublicID != selfID {
			candidates = append(candidates, p.PublicID)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	id := candidates[rand.Intn(len(candidates))]
	return &id
}
