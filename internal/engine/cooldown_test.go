package engine

import (
	"testing"

	"gorm.io/gorm"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

func TestTickDownRunes_FloorsAtZero(t *testing.T) {
	g := &game.Game{Participants: []game.Participant{
		{PublicID: "p1", Name: "P1", IsAlive: true, Runes: []game.Rune{
			{Model: gorm.Model{ID: 1}, Kind: game.RuneShield, CooldownPeriod: 3, RemainingCooldown: 1},
			{Model: gorm.Model{ID: 2}, Kind: game.RuneSight, CooldownPeriod: 2, RemainingCooldown: 0},
		}},
	}}

	TickDownRunes(g)
	if got := g.Participants[0].Runes[0].RemainingCooldown; got != 0 {
		t.Fatalf("expected cooldown 0 after tick, got %d", got)
	}
	if got := g.Participants[0].Runes[1].RemainingCooldown; got != 0 {
		t.Fatalf("expected ready rune to stay at 0, got %d", got)
	}

	// All-zero roster: ticking again must be a no-op.
	TickDownRunes(g)
	for _, r := range g.Participants[0].Runes {
		if r.RemainingCooldown != 0 {
			t.Fatalf("tick on all-zero cooldowns must be a no-op, got %d", r.RemainingCooldown)
		}
	}
}

func TestConsumeRune_FullCycle(t *testing.T) {
	const period = 3
	g := &game.Game{Participants: []game.Participant{
		{PublicID: "p1", Name: "P1", IsAlive: true, Runes: []game.Rune{
			{Model: gorm.Model{ID: 7}, Kind: game.RuneSight, CooldownPeriod: period},
		}},
	}}

	if !ConsumeRune(g, "p1", 7) {
		t.Fatalf("expected ready rune to be consumed")
	}
	if got := g.Participants[0].Runes[0].RemainingCooldown; got != period {
		t.Fatalf("expected cooldown %d after consume, got %d", period, got)
	}

	// Consuming again before any tick is a no-op.
	if ConsumeRune(g, "p1", 7) {
		t.Fatalf("expected second consume to be rejected")
	}
	if got := g.Participants[0].Runes[0].RemainingCooldown; got != period {
		t.Fatalf("cooldown must stay at %d after rejected consume, got %d", period, got)
	}

	for i := 0; i < period; i++ {
		TickDownRunes(g)
	}
	if got := g.Participants[0].Runes[0].RemainingCooldown; got != 0 {
		t.Fatalf("expected rune ready after %d ticks, got %d", period, got)
	}
}

func TestConsumeRune_UnknownIsNoop(t *testing.T) {
	g := &game.Game{Participants: []game.Participant{{PublicID: "p1", IsAlive: true}}}
	if ConsumeRune(g, "p1", 99) {
		t.Fatalf("expected missing rune to be a no-op")
	}
	if ConsumeRune(g, "ghost", 1) {
		t.Fatalf("expected missing participant to be a no-op")
	}
}
