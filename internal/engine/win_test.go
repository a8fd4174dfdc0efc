package engine

import (
	"testing"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

func TestEvaluateWinner_VillagersWhenNoWolves(t *testing.T) {
	g := newTestGame(game.RoleVillager)
	g.Participants[1].IsAlive = false
	g.Participants[2].IsAlive = false
	if w := EvaluateWinner(g); w != game.WinnerVillagers {
		t.Fatalf("expected villagers win, got %q", w)
	}
}

func TestEvaluateWinner_WolvesWinOnParity(t *testing.T) {
	g := newTestGame(game.RoleVillager)
	// Two wolves alive; kill non-wolves until two remain.
	killed := 0
	for i := range g.Participants {
		if g.Participants[i].Role != game.RoleWerewolf && killed < 4 {
			g.Participants[i].IsAlive = false
			killed++
		}
	}
	if w := EvaluateWinner(g); w != game.WinnerWerewolves {
		t.Fatalf("expected werewolf win at parity, got %q", w)
	}
}

func TestEvaluateWinner_ContinuesWhileWolvesOutnumbered(t *testing.T) {
	g := newTestGame(game.RoleVillager)
	if w := EvaluateWinner(g); w != game.WinnerNone {
		t.Fatalf("expected game to continue, got %q", w)
	}
}

// Once parity is reached it cannot be lost: aliveness only decreases, so
// every further death keeps the predicate true.
func TestEvaluateWinner_MonotonicOnceReached(t *testing.T) {
	g := newTestGame(game.RoleVillager)
	killed := 0
	for i := range g.Participants {
		if g.Participants[i].Role != game.RoleWerewolf && killed < 4 {
			g.Participants[i].IsAlive = false
			killed++
		}
	}
	if w := EvaluateWinner(g); w != game.WinnerWerewolves {
		t.Fatalf("setup: expected parity win, got %q", w)
	}
	for i := range g.Participants {
		if g.Participants[i].Role != game.RoleWerewolf {
			g.Participants[i].IsAlive = false
		}
		if w := EvaluateWinner(g); w != game.WinnerWerewolves {
			t.Fatalf("werewolf win must be stable under further deaths, got %q", w)
		}
	}
}

func TestEvaluateWinner_IsPure(t *testing.T) {
	g := newTestGame(game.RoleVillager)
	events := len(g.Events)
	for i := 0; i < 3; i++ {
		if w := EvaluateWinner(g); w != game.WinnerNone {
			t.Fatalf("repeated evaluation changed its answer: %q", w)
		}
	}
	if len(g.Events) != events {
		t.Fatalf("evaluation must be side-effect-free")
	}
}
