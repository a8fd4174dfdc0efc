package engine

import (
	"strconv"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

// Vote is one caster's elimination choice for the current voting round.
type Vote struct {
	VoterID  string
	TargetID string
}

// ResolveVoting tallies the full batch of votes and applies the elimination
// outcome. Each living caster contributes at most one vote (the first one
// recorded for them); votes from dead or unknown casters and votes against
// dead or unknown targets are dropped. A unique maximum eliminates that
// target; a tie for the maximum eliminates no one. VotesAgainst accumulators
// are populated for display during the tally and reset to zero once the
// decision is finalized. Returns the eliminated participant, or nil.
func ResolveVoting(g *game.Game, votes []Vote) *game.Participant {
	for i := range g.Participants {
		g.Participants[i].VotesAgainst = 0
	}

	voted := map[string]bool{}
	tally := map[string]int{}
	for _, v := range votes {
		voter := aliveTarget(g, v.VoterID)
		target := aliveTarget(g, v.TargetID)
		if voter == nil || target == nil || voted[voter.PublicID] {
			continue
		}
		voted[voter.PublicID] = true
		tally[target.PublicID]++
		target.VotesAgainst++
	}

	var eliminated *game.Participant
	max := 0
	tied := false
	for id, n := range tally {
		switch {
		case n > max:
			max = n
			tied = false
			eliminated = g.ParticipantByID(id)
		case n == max:
			tied = true
		}
	}

	if eliminated == nil || tied {
		g.AppendEvent(game.LogSystem, "", "The vote is deadlocked. No one is banished today.")
	} else {
		eliminated.IsAlive = false
		g.AppendEvent(game.LogNarrative, "", eliminated.Name+" is banished by the village with "+strconv.Itoa(max)+" votes.")
	}

	for i := range g.Participants {
		g.Participants[i].VotesAgainst = 0
	}
	if tied {
		return nil
	}
	return eliminated
}
