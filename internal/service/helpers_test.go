package service

import (
	"context"
	"strconv"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
)

type mockRepo struct {
	games          map[uint]*game.Game
	updatedGame    *game.Game
	createdGame    *game.Game
	clearedSession bool
	clearedVotes   bool
}

func (m *mockRepo) CreateGame(g *game.Game) error {
	m.createdGame = g
	return nil
}

func (m *mockRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) UpdateGame(g *game.Game) error {
	m.updatedGame = g
	return nil
}

func (m *mockRepo) ClearSessionState(gameID uint) error {
	m.clearedSession = true
	return nil
}

func (m *mockRepo) ClearPendingVotes(gameID uint) error {
	m.clearedVotes = true
	return nil
}

func (m *mockRepo) GetNarrationByKey(key string) (string, error) {
	return "The wind carries a distant howl.", nil
}

func (m *mockRepo) SaveNarration(key, text string) error { return nil }

// stubDecider returns canned outcomes and can mutate the session mid-call to
// simulate a restart racing an in-flight decider request.
type stubDecider struct {
	night   oracle.NightOutcome
	day     oracle.DayOutcome
	onNight func()
	onDay   func()
}

func (s *stubDecider) NightDecisions(ctx context.Context, g *game.Game) oracle.NightOutcome {
	if s.onNight != nil {
		s.onNight()
	}
	return s.night
}

func (s *stubDecider) DayDecisions(ctx context.Context, g *game.Game) oracle.DayOutcome {
	if s.onDay != nil {
		s.onDay()
	}
	return s.day
}

func testConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		BotNames:      []string{"Ava", "Bram", "Cole", "Dara", "Edda", "Finn", "Gwen"},
		Runes:         []config.RuneDef{{Name: "Moonstone", Kind: game.RuneSight, CooldownPeriod: 2}},
		ServerAddress: ":0",
		ActionTimeout: time.Minute,
		ChatDelay:     0, // no pacing in tests
	}
}

// newSessionAt builds an 8-seat session in the given phase. Slot 0 is the
// user; roles follow a fixed layout so tests can target specific seats.
func newSessionAt(phase game.Phase, userRole game.Role) *game.Game {
	roles := []game.Role{userRole, game.RoleWerewolf, game.RoleWerewolf, game.RoleSeer, game.RoleDoctor, game.RoleVillager, game.RoleVillager, game.RoleVillager}
	names := []string{"You", "Ava", "Bram", "Cole", "Dara", "Edda", "Finn", "Gwen"}
	g := &game.Game{Phase: phase, DayCount: 1, Generation: 1}
	g.ID = 7
	for i := 0; i < game.RosterSize; i++ {
		p := game.Participant{
			PublicID:           "p" + strconv.Itoa(i),
			Name:               names[i],
			Role:               roles[i],
			IsAlive:            true,
			IsOracleControlled: i != 0,
		}
		r := game.Rune{Name: "Moonstone", Kind: game.RuneSight, CooldownPeriod: 2}
		r.ID = uint(100 + i)
		p.Runes = []game.Rune{r}
		g.Participants = append(g.Participants, p)
	}
	g.UserParticipantID = "p0"
	return g
}

func strPtr(s string) *string { return &s }
