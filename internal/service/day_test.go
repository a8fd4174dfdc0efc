package service

import (
	"context"
	"testing"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
)

func TestRunDiscussion_EmitsChatAndStoresVotes(t *testing.T) {
	g := newSessionAt(game.PhaseDayIntro, game.RoleVillager)
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}
	dec := &stubDecider{day: oracle.DayOutcome{
		Status: oracle.StatusOK,
		Decisions: []oracle.DayDecision{
			{ActorID: "p1", ChatMessage: "Cole is acting strange.", VoteTargetID: strPtr("p3")},
			{ActorID: "p2", ChatMessage: "", VoteTargetID: strPtr("p3")},
			{ActorID: "p3", ChatMessage: "It was not me.", VoteTargetID: nil},
		},
	}}

	out, err := RunDiscussion(context.Background(), mr, dec, 7, 0, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Phase != game.PhaseDayVoting {
		t.Fatalf("expected phase %s, got %s", game.PhaseDayVoting, out.Phase)
	}

	chats := 0
	for _, e := range out.Events {
		if e.Kind == game.LogChat {
			chats++
		}
	}
	if chats != 2 {
		t.Fatalf("expected 2 chat events, got %d", chats)
	}
	if len(out.PendingVotes) != 2 {
		t.Fatalf("expected 2 pending votes (abstain dropped), got %d", len(out.PendingVotes))
	}
	if out.ActionDeadline.IsZero() {
		t.Fatalf("voting deadline must be set")
	}
}

func TestRunDiscussion_FallbackVotesWhenDeciderFails(t *testing.T) {
	g := newSessionAt(game.PhaseDayIntro, game.RoleVillager)
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}
	dec := &stubDecider{day: oracle.DayOutcome{Status: oracle.StatusMalformed}}

	out, err := RunDiscussion(context.Background(), mr, dec, 7, 0, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Phase != game.PhaseDayVoting {
		t.Fatalf("expected phase %s, got %s", game.PhaseDayVoting, out.Phase)
	}
	// Every alive bot votes in the fallback.
	if len(out.PendingVotes) != game.RosterSize-1 {
		t.Fatalf("expected %d fallback votes, got %d", game.RosterSize-1, len(out.PendingVotes))
	}
}

func TestSubmitVote_EliminatesAndLoopsBack(t *testing.T) {
	g := newSessionAt(game.PhaseDayVoting, game.RoleVillager)
	g.PendingVotes = []game.PendingVote{
		{GameID: 7, VoterID: "p1", TargetID: "p5"},
		{GameID: 7, VoterID: "p2", TargetID: "p5"},
	}
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}

	out, err := SubmitVote(context.Background(), mr, 7, "p5", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ParticipantByID("p5").IsAlive {
		t.Fatalf("p5 should be banished")
	}
	if out.Phase != game.PhaseNightAction {
		t.Fatalf("expected loop-back into %s, got %s", game.PhaseNightAction, out.Phase)
	}
	if out.DayCount != 2 {
		t.Fatalf("expected day 2 after loop-back, got %d", out.DayCount)
	}
	if !mr.clearedVotes {
		t.Fatalf("pending votes were not cleared")
	}
}

func TestSubmitVote_UserAbstains(t *testing.T) {
	g := newSessionAt(game.PhaseDayVoting, game.RoleVillager)
	g.PendingVotes = []game.PendingVote{
		{GameID: 7, VoterID: "p1", TargetID: "p5"},
		{GameID: 7, VoterID: "p2", TargetID: "p6"},
	}
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}

	out, err := SubmitVote(context.Background(), mr, 7, "", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One vote each: a tie, no banishment.
	if !out.ParticipantByID("p5").IsAlive || !out.ParticipantByID("p6").IsAlive {
		t.Fatalf("tie must not banish anyone")
	}
	if out.Phase != game.PhaseNightAction {
		t.Fatalf("expected loop-back into %s, got %s", game.PhaseNightAction, out.Phase)
	}
}

func TestSubmitVote_WerewolfParityEndsGame(t *testing.T) {
	g := newSessionAt(game.PhaseDayVoting, game.RoleVillager)
	// Leave 2 wolves (p1, p2) against 3 villagers; banishing one villager
	// brings the sides to parity.
	for _, id := range []string{"p5", "p6", "p7"} {
		g.ParticipantByID(id).IsAlive = false
	}
	g.PendingVotes = []game.PendingVote{
		{GameID: 7, VoterID: "p1", TargetID: "p3"},
		{GameID: 7, VoterID: "p2", TargetID: "p3"},
	}
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}

	out, err := SubmitVote(context.Background(), mr, 7, "", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Phase != game.PhaseGameOver {
		t.Fatalf("expected game over, got %s", out.Phase)
	}
	if out.Winner != game.WinnerWerewolves {
		t.Fatalf("expected werewolf win, got %q", out.Winner)
	}
	if out.DayCount != 1 {
		t.Fatalf("day counter must not advance when the game ends, got %d", out.DayCount)
	}
}
