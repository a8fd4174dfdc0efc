package engine

import (
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// RuneUse names an actor, one of their runes and a target.
type RuneUse struct {
	ActorID  string
	RuneID   uint
	TargetID string
}

// NightProposals are the oracle's validated night-action proposals. Target
// pointers are nil when the oracle abstained (or its payload degraded to the
// fallback with an empty roster slice).
type NightProposals struct {
	WerewolfKillTargetID *string
	DoctorSaveTargetID   *string
	SeerCheckTargetID    *string
	RuneUses             []RuneUse
}

// UserActionKind is what the human chose to do with their single night turn.
type UserActionKind string

const (
	UserActionNone UserActionKind = ""
	UserActionRole UserActionKind = "role"
	UserActionRune UserActionKind = "rune"
)

// UserNightAction is the human's one pending action for the turn: either
// their role ability or one ready rune, with at most one target.
type UserNightAction struct {
	Kind     UserActionKind
	RuneID   uint
	TargetID string
}

// ResolveNight merges the oracle's proposals with the user's pending action
// into the session's pending night targets. It consumes used runes and grows
// the knowledge map, but applies no death: aliveness only changes in
// ApplyNightOutcome so night and day resolution never race on it.
func ResolveNight(g *game.Game, props NightProposals, user UserNightAction) {
	userP := g.UserParticipant()

	// Kill proposals in fixed precedence: oracle first, then the user.
	// Only the first valid target becomes the kill; one victim per night.
	var killTarget *game.Participant
	for _, id := range killCandidates(g, props, user, userP) {
		if t := aliveTarget(g, id); t != nil {
			killTarget = t
			break
		}
	}

	protected := map[string]bool{}
	for _, id := range protectProposals(g, props, user, userP) {
		if t := aliveTarget(g, id); t != nil {
			protected[t.PublicID] = true
		}
	}

	resolveReveals(g, props, user, userP)
	consumeUsedRunes(g, props, user, userP)

	g.NightKillTargetID = nil
	g.NightSaveTargetID = nil
	if killTarget != nil {
		id := killTarget.PublicID
		g.NightKillTargetID = &id
		// A save only matters when it matches the exact kill target;
		// protecting anyone else has no recorded effect.
		if protected[id] {
			g.NightSaveTargetID = &id
		}
	}
}

func killCandidates(g *game.Game, props NightProposals, user UserNightAction, userP *game.Participant) []string {
	out := make([]string, 0, 2)
	if props.WerewolfKillTargetID != nil {
		out = append(out, *props.WerewolfKillTargetID)
	}
	if userP != nil && userP.IsAlive && user.Kind == UserActionRole && userP.Role == game.RoleWerewolf && user.TargetID != "" {
		out = append(out, user.TargetID)
	}
	return out
}

func protectProposals(g *game.Game, props NightProposals, user UserNightAction, userP *game.Participant) []string {
	out := make([]string, 0, 4)
	if props.DoctorSaveTargetID != nil {
		out = append(out, *props.DoctorSaveTargetID)
	}
	for _, use := range props.RuneUses {
		if r := runeOf(g, use.ActorID, use.RuneID, game.RuneShield); r != nil && r.Ready() {
			out = append(out, use.TargetID)
		}
	}
	if userP == nil || !userP.IsAlive || user.TargetID == "" {
		return out
	}
	switch user.Kind {
	case UserActionRole:
		if userP.Role == game.RoleDoctor {
			out = append(out, user.TargetID)
		}
	case UserActionRune:
		if r := runeOf(g, userP.PublicID, user.RuneID, game.RuneShield); r != nil && r.Ready() {
			out = append(out, user.TargetID)
		}
	}
	return out
}

// resolveReveals writes each revealed role into the knowledge map and emits
// one log event per reveal. Only user-originated reveals reach the map: the
// oracle's own seer check stays internal to the bots and is never narrated.
func resolveReveals(g *game.Game, props NightProposals, user UserNightAction, userP *game.Participant) {
	if userP == nil || !userP.IsAlive || user.TargetID == "" {
		return
	}
	reveal := false
	switch user.Kind {
	case UserActionRole:
		reveal = userP.Role == game.RoleSeer
	case UserActionRune:
		if r := runeOf(g, userP.PublicID, user.RuneID, game.RuneSight); r != nil && r.Ready() {
			reveal = true
		}
	}
	if !reveal {
		return
	}
	t := aliveTarget(g, user.TargetID)
	if t == nil {
		return
	}
	if g.RecordKnowledge(t.PublicID, t.Role) {
		g.AppendEvent(game.LogAction, "", t.Name+" is revealed to be a "+string(t.Role)+".")
	}
}

func consumeUsedRunes(g *game.Game, props NightProposals, user UserNightAction, userP *game.Participant) {
	for _, use := range props.RuneUses {
		ConsumeRune(g, use.ActorID, use.RuneID)
	}
	if userP != nil && user.Kind == UserActionRune {
		ConsumeRune(g, userP.PublicID, user.RuneID)
	}
}

// ApplyNightOutcome finalizes the pending night targets at the day-intro
// transition. This is the single place a night kill flips IsAlive.
func ApplyNightOutcome(g *game.Game) {
	kill := g.NightKillTargetID
	save := g.NightSaveTargetID
	g.NightKillTargetID = nil
	g.NightSaveTargetID = nil

	if kill == nil {
		g.AppendEvent(game.LogSystem, "", "The night passes without bloodshed.")
		return
	}
	victim := g.ParticipantByID(*kill)
	if victim == nil {
		return
	}
	if save != nil && *save == *kill {
		g.AppendEvent(game.LogNarrative, "", victim.Name+" was attacked in the night, but someone was watching over them.")
		return
	}
	victim.IsAlive = false
	g.AppendEvent(game.LogNarrative, "", victim.Name+" was found dead at dawn.")
}

// aliveTarget resolves an oracle- or user-supplied id against the roster,
// dropping references to missing or dead participants.
func aliveTarget(g *game.Game, id string) *game.Participant {
	p := g.ParticipantByID(id)
	if p == nil || !p.IsAlive {
		return nil
	}
	return p
}

// runeOf returns the actor's rune with the given id and kind, or nil.
func runeOf(g *game.Game, actorID string, runeID uint, kind game.RuneKind) *game.Rune {
	p := g.ParticipantByID(actorID)
	if p == nil {
		return nil
	}
	for i := range p.Runes {
		if p.Runes[i].ID == runeID && p.Runes[i].Kind == kind {
			return &p.Runes[i]
		}
	}
	return nil
}
