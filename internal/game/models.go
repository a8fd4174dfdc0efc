package game

import (
	"time"

	"gorm.io/gorm"
)

// Role is the fixed identity assigned to a participant at setup. It never
// changes for the lifetime of a session.
type Role string

const (
	RoleVillager Role = "villager"
	RoleWerewolf Role = "werewolf"
	RoleSeer     Role = "seer"
	RoleDoctor   Role = "doctor"
)

// RuneKind identifies what a rune does when used. Runes are secondary,
// cooldown-gated actions independent of a participant's role.
type RuneKind string

const (
	// RuneSight reveals the true role of a target.
	RuneSight RuneKind = "sight"
	// RuneShield prevents one death.
	RuneShield RuneKind = "shield"
)

// Phase is one stage of the day/night cycle state machine.
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseNightIntro    Phase = "night_intro"
	PhaseNightAction   Phase = "night_action"
	PhaseDayIntro      Phase = "day_intro"
	PhaseDayDiscussion Phase = "day_discussion"
	PhaseDayVoting     Phase = "day_voting"
	PhaseGameOver      Phase = "game_over"
)

// Winner is empty until the session reaches a terminal state.
type Winner string

const (
	WinnerNone       Winner = ""
	WinnerVillagers  Winner = "villagers"
	WinnerWerewolves Winner = "werewolves"
)

// LogKind classifies events on the append-only session log.
type LogKind string

const (
	LogNarrative LogKind = "narrative"
	LogChat      LogKind = "chat"
	LogSystem    LogKind = "system"
	LogAction    LogKind = "action"
)

// Rune is an ability item owned by a participant. RemainingCooldown stays in
// [0, CooldownPeriod]; 0 means ready. It only decreases during the
// night-intro tick and only resets to the full period when consumed.
type Rune struct {
	gorm.Model
	ParticipantID     uint     `json:"-"`
	Name              string   `json:"name"`
	Kind              RuneKind `json:"kind"`
	CooldownPeriod    int      `json:"cooldown_period"`
	RemainingCooldown int      `json:"remaining_cooldown"`
}

// Ready reports whether the rune can be used this night.
func (r *Rune) Ready() bool { return r.RemainingCooldown == 0 }

type Participant struct {
	gorm.Model
	GameID uint `json:"-"`
	// PublicID is the opaque identifier used everywhere outside storage
	// (oracle payloads, API requests, knowledge entries).
	PublicID           string `json:"id"`
	Name               string `json:"name"`
	Role               Role   `json:"role"`
	IsAlive            bool   `json:"is_alive"`
	IsOracleControlled bool   `json:"is_oracle_controlled"`
	Runes              []Rune `json:"runes"`
	// VotesAgainst is populated during vote tallying for display and reset
	// to 0 once the elimination decision is finalized.
	VotesAgainst int `json:"votes_against"`
}

// Store per-game participants in a dedicated table for clarity
func (Participant) TableName() string { return "game_participants" }

// LogEvent is the engine's sole structured output besides the session
// snapshot. Events are append-only and never mutated or reordered.
type LogEvent struct {
	gorm.Model
	GameID     uint    `json:"-"`
	Phase      Phase   `json:"phase"`
	Kind       LogKind `json:"kind"`
	SourceName string  `json:"source_name,omitempty"`
	Text       string  `json:"text"`
}

func (LogEvent) TableName() string { return "game_events" }

// KnownRole is one entry of the knowledge map: a role revealed to the
// user-controlled participant. Entries are only ever added, never removed
// or changed.
type KnownRole struct {
	gorm.Model
	GameID        uint   `json:"-"`
	ParticipantID string `json:"participant_id"`
	Role          Role   `json:"role"`
}

func (KnownRole) TableName() string { return "game_knowledge" }

// PendingVote is an oracle-proposed day vote stored between the discussion
// and voting phases. Chat pacing never touches these; the day resolver
// consumes the full batch at once.
type PendingVote struct {
	gorm.Model
	GameID   uint   `json:"-"`
	VoterID  string `json:"voter_id"`
	TargetID string `json:"target_id"`
}

func (PendingVote) TableName() string { return "game_pending_votes" }

// Narration caches generated flavor text keyed by a canonical narration
// key so the server avoids duplicate OpenAI calls for the same scene.
type Narration struct {
	gorm.Model
	Key  string `gorm:"uniqueIndex"`
	Text string
}

func (Narration) TableName() string { return "narration_cache" }

type Game struct {
	gorm.Model
	Phase    Phase  `json:"phase"`
	DayCount int    `json:"day_count"`
	Winner   Winner `json:"winner"`
	Message  string `json:"message"`
	// UserParticipantID is the PublicID of the single human-controlled
	// participant.
	UserParticipantID string        `json:"user_participant_id"`
	Participants      []Participant `json:"participants"`
	Events            []LogEvent    `json:"events"`
	Knowledge         []KnownRole   `json:"knowledge"`
	PendingVotes      []PendingVote `json:"-"`

	// Pending night targets exist only between night resolution and the
	// day-intro transition that applies them.
	NightKillTargetID *string `json:"night_kill_target_id"`
	NightSaveTargetID *string `json:"night_save_target_id"`

	// Generation is bumped on every restart. Oracle results captured under
	// an older generation are discarded instead of applied.
	Generation uint `json:"-"`
	// ActionDeadline is when the stalled-session scanner may force this
	// session forward with fallback decisions.
	ActionDeadline time.Time `json:"-"`
	// ClaimedBy and ClaimedUntil record the scanner worker that currently
	// owns this stalled session. A claim expires on its own so a crashed
	// worker cannot wedge the session.
	ClaimedBy    string    `json:"-"`
	ClaimedUntil time.Time `json:"-"`
}

// ParticipantByID returns the participant with the given public id, or nil.
func (g *Game) ParticipantByID(publicID string) *Participant {
	for i := range g.Participants {
		if g.Participants[i].PublicID == publicID {
			return &g.Participants[i]
		}
	}
	return nil
}

// UserParticipant returns the human-controlled participant, or nil before
// setup completed.
func (g *Game) UserParticipant() *Participant {
	return g.ParticipantByID(g.UserParticipantID)
}

// AliveParticipants returns pointers into the roster for every living
// participant, in roster order.
func (g *Game) AliveParticipants() []*Participant {
	out := make([]*Participant, 0, len(g.Participants))
	for i := range g.Participants {
		if g.Participants[i].IsAlive {
			out = append(out, &g.Participants[i])
		}
	}
	return out
}

// KnowsRole reports whether the given participant's role has already been
// revealed to the user.
func (g *Game) KnowsRole(participantID string) bool {
	for i := range g.Knowledge {
		if g.Knowledge[i].ParticipantID == participantID {
			return true
		}
	}
	return false
}

// RecordKnowledge adds a reveal to the knowledge map. The map only grows:
// recording an already-known participant is a no-op and returns false.
func (g *Game) RecordKnowledge(participantID string, role Role) bool {
	if g.KnowsRole(participantID) {
		return false
	}
	g.Knowledge = append(g.Knowledge, KnownRole{ParticipantID: participantID, Role: role})
	return true
}

// AppendEvent appends a log event stamped with the session's current phase.
func (g *Game) AppendEvent(kind LogKind, sourceName, text string) {
	g.Events = append(g.Events, LogEvent{Phase: g.Phase, Kind: kind, SourceName: sourceName, Text: text})
}
