package engine

import "github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"

// EvaluateWinner is a pure predicate over the roster, called after every
// death. Villagers win when no werewolf is left alive. Werewolves win on
// reaching parity with the rest of the living roster, not just majority;
// the minority-threat side stops the game early. Since aliveness only ever
// decreases, a reported werewolf win stays a win on every later check.
func EvaluateWinner(g *game.Game) game.Winner {
	wolves, others := 0, 0
	for i := range g.Participants {
		if !g.Participants[i].IsAlive {
			continue
		}
		if g.Participants[i].Role == game.RoleWerewolf {
			wolves++
		} else {
			others++
		}
	}
	if wolves == 0 {
		return game.WinnerVillagers
	}
	if wolves >= others {
		return game.WinnerWerewolves
	}
	return game.WinnerNone
}
