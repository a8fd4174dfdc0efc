package engine

import "github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"

// The phase machine is strictly linear with one loop-back edge:
//
//	setup -> night_intro -> night_action -> day_intro -> day_discussion
//	      -> day_voting -> night_intro (day+1) | game_over
//
// game_over is terminal; only an explicit restart returns to setup. The
// transition helpers below mutate the session synchronously; oracle calls
// and timers stay with the caller so the machine is testable without them.

// StartNight enters the night intro. Rune cooldowns always tick here,
// before any flavor text is requested. The day counter is untouched: it
// increments only at the voting loop-back.
func StartNight(g *game.Game) {
	g.Phase = game.PhaseNightIntro
	TickDownRunes(g)
	g.Message = "Night falls over the village."
}

// BeginNightAction opens the window for the user's one pending night action.
func BeginNightAction(g *game.Game) {
	g.Phase = game.PhaseNightAction
	g.Message = "Choose your action for the night."
}

// BeginDay enters the day intro: the pending night outcome is consumed,
// deaths are applied, and the win condition is checked. A win short-circuits
// straight to game over, skipping discussion and voting.
func BeginDay(g *game.Game) {
	g.Phase = game.PhaseDayIntro
	ApplyNightOutcome(g)
	if w := EvaluateWinner(g); w != game.WinnerNone {
		finish(g, w)
		return
	}
	g.Message = "The sun rises."
}

// BeginDiscussion opens the day discussion window.
func BeginDiscussion(g *game.Game) {
	g.Phase = game.PhaseDayDiscussion
	g.Message = "The village debates."
}

// BeginVoting opens the day vote.
func BeginVoting(g *game.Game) {
	g.Phase = game.PhaseDayVoting
	g.Message = "Cast your vote."
}

// FinishVoting resolves the day vote and either ends the game or loops back
// into the next night. The day counter increments exactly once per full
// cycle, here at the loop-back point, and never when the game ends.
func FinishVoting(g *game.Game, votes []Vote) {
	ResolveVoting(g, votes)
	if w := EvaluateWinner(g); w != game.WinnerNone {
		finish(g, w)
		return
	}
	g.DayCount++
	StartNight(g)
}

func finish(g *game.Game, w game.Winner) {
	g.Phase = game.PhaseGameOver
	g.Winner = w
	switch w {
	case game.WinnerVillagers:
		g.Message = "The villagers have won."
		g.AppendEvent(game.LogSystem, "", "The last werewolf is gone. The village is safe.")
	case game.WinnerWerewolves:
		g.Message = "The werewolves have won."
		g.AppendEvent(game.LogSystem, "", "The werewolves now outnumber the village. The hunt is over.")
	}
}
