package oracle

import (
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// rawNightPayload is the loosely-typed shape the decision oracle returns for
// a night. Every field is optional; unknown or dead ids are dropped during
// validation so the resolvers only ever see well-formed proposals.
type rawNightPayload struct {
	WerewolfKillTargetID *string      `json:"werewolf_kill_target_id"`
	DoctorSaveTargetID   *string      `json:"doctor_save_target_id"`
	SeerCheckTargetID    *string      `json:"seer_check_target_id"`
	RuneUses             []rawRuneUse `json:"rune_uses"`
}

type rawRuneUse struct {
	ActorID  string `json:"actor_id"`
	RuneID   uint   `json:"rune_id"`
	TargetID string `json:"target_id"`
}

type rawDayDecision struct {
	ActorID      string  `json:"actor_id"`
	ChatMessage  string  `json:"chat_message"`
	VoteTargetID *string `json:"vote_target_id"`
}

// validateNight folds a raw oracle payload into well-typed proposals.
// Role-based proposals are kept only when an alive, oracle-controlled
// participant with that role exists; each individual invalid proposal is
// dropped without failing the rest.
func validateNight(g *game.Game, raw rawNightPayload) engine.NightProposals {
	var props engine.NightProposals
	if hasAliveBotRole(g, game.RoleWerewolf) {
		props.WerewolfKillTargetID = aliveRef(g, raw.WerewolfKillTargetID)
	}
	if hasAliveBotRole(g, game.RoleDoctor) {
		props.DoctorSaveTargetID = aliveRef(g, raw.DoctorSaveTargetID)
	}
	if hasAliveBotRole(g, game.RoleSeer) {
		props.SeerCheckTargetID = aliveRef(g, raw.SeerCheckTargetID)
	}
	for _, use := range raw.RuneUses {
		actor := g.ParticipantByID(use.ActorID)
		if actor == nil || !actor.IsAlive || !actor.IsOracleControlled {
			continue
		}
		if aliveRef(g, &use.TargetID) == nil {
			continue
		}
		props.RuneUses = append(props.RuneUses, engine.RuneUse{
			ActorID:  use.ActorID,
			RuneID:   use.RuneID,
			TargetID: use.TargetID,
		})
	}
	return props
}

// validateDay keeps at most one decision per alive bot; votes against dead
// or unknown targets degrade to abstentions rather than dropping the chat.
func validateDay(g *game.Game, raws []rawDayDecision) []DayDecision {
	seen := map[string]bool{}
	out := make([]DayDecision, 0, len(raws))
	for _, r := range raws {
		actor := g.ParticipantByID(r.ActorID)
		if actor == nil || !actor.IsAlive || !actor.IsOracleControlled || seen[r.ActorID] {
			continue
		}
		seen[r.ActorID] = true
		out = append(out, DayDecision{
			ActorID:      r.ActorID,
			ChatMessage:  r.ChatMessage,
			VoteTargetID: aliveRef(g, r.VoteTargetID),
		})
	}
	return out
}

func aliveRef(g *game.Game, id *string) *string {
	if id == nil {
		return nil
	}
	p := g.ParticipantByID(*id)
	if p == nil || !p.IsAlive {
		return nil
	}
	out := p.PublicID
	return &out
}

func hasAliveBotRole(g *game.Game, role game.Role) bool {
	for i := range g.Participants {
		p := &g.Participants[i]
		if p.IsAlive && p.IsOracleControlled && p.Role == role {
			return true
		}
	}
	return false
}
