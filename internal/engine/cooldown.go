package engine

import (
	"fmt"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// TickDownRunes decrements every rune cooldown on the roster by one, floored
// at zero. It runs once at the start of each night intro. Applying it to a
// roster with all-zero cooldowns is a no-op.
func TickDownRunes(g *game.Game) {
	for i := range g.Participants {
		for j := range g.Participants[i].Runes {
			r := &g.Participants[i].Runes[j]
			checkCooldownRange(r)
			if r.RemainingCooldown > 0 {
				r.RemainingCooldown--
			}
		}
	}
}

// ConsumeRune puts a rune on full cooldown once its use is finalized for the
// turn. The next use becomes possible CooldownPeriod ticks later, counted
// from the next night-intro tick. It is a silent no-op when the rune is not
// found or not ready, so a rune cannot be consumed twice in one resolution
// pass. Returns whether the rune was consumed.
func ConsumeRune(g *game.Game, participantID string, runeID uint) bool {
	p := g.ParticipantByID(participantID)
	if p == nil {
		return false
	}
	for i := range p.Runes {
		r := &p.Runes[i]
		if r.ID != runeID {
			continue
		}
		checkCooldownRange(r)
		if !r.Ready() {
			return false
		}
		r.RemainingCooldown = r.CooldownPeriod
		return true
	}
	return false
}

// checkCooldownRange panics on a cooldown outside [0, period]. That state is
// unreachable through the ledger operations, so hitting it means a resolver
// bug rather than bad input.
func checkCooldownRange(r *game.Rune) {
	if r.RemainingCooldown < 0 || r.RemainingCooldown > r.CooldownPeriod {
		panic(fmt.Sprintf("rune %d cooldown %d out of range [0,%d]", r.ID, r.RemainingCooldown, r.CooldownPeriod))
	}
}
