package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-resty/resty/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/api"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"

	"github.com/gin-gonic/gin"
)

// memoryRepo is an in-memory stand-in for the SQLite repository so the full
// HTTP surface can be exercised without a database.
type memoryRepo struct {
	games  map[uint]*game.Game
	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{games: map[uint]*game.Game{}, nextID: 1}
}

func (m *memoryRepo) CreateGame(g *game.Game) error {
	g.ID = m.nextID
	m.nextID++
	m.games[g.ID] = g
	return nil
}

func (m *memoryRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("game %d not found", id)
}

func (m *memoryRepo) UpdateGame(g *game.Game) error {
	m.games[g.ID] = g
	return nil
}

func (m *memoryRepo) ClearSessionState(gameID uint) error { return nil }

func (m *memoryRepo) ClearPendingVotes(gameID uint) error { return nil }

func (m *memoryRepo) GetEventsByGameID(gameID uint) ([]game.LogEvent, error) {
	if g, ok := m.games[gameID]; ok {
		return g.Events, nil
	}
	return nil, fmt.Errorf("game %d not found", gameID)
}

func (m *memoryRepo) GetNarrationByKey(key string) (string, error) {
	return "The village holds its breath.", nil
}

func (m *memoryRepo) SaveNarration(key, text string) error { return nil }

func (m *memoryRepo) ClaimStalledGameIDs(now time.Time, limit int, claimDuration time.Duration, workerID string) ([]uint, error) {
	return nil, nil
}

var _ = Describe("Game API", func() {
	var client *resty.Client
	var baseURL string

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		cfg := &config.LoadedConfig{
			BotNames:      []string{"Ava", "Bram", "Cole", "Dara", "Edda", "Finn", "Gwen"},
			Runes:         []config.RuneDef{{Name: "Moonstone", Kind: game.RuneSight, CooldownPeriod: 2}},
			ActionTimeout: time.Minute,
		}
		handler := api.NewGameHandler(newMemoryRepo(), oracle.Fallback{}, cfg)

		router := gin.New()
		apiRoutes := router.Group(constants.RouteAPIPrefix)
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.POST(constants.RouteGames, handler.CreateGame)
		apiRoutes.GET(constants.RouteGameByID, handler.GetGame)
		apiRoutes.GET(constants.RouteGameEvents, handler.ListEvents)
		apiRoutes.POST(constants.RouteGameNight, handler.NightAction)
		apiRoutes.POST(constants.RouteGameDiscussion, handler.Discussion)
		apiRoutes.POST(constants.RouteGameVote, handler.Vote)
		apiRoutes.POST(constants.RouteGameRestart, handler.RestartGame)

		server := httptest.NewServer(router)
		DeferCleanup(server.Close)
		baseURL = server.URL

		client = resty.New()
	})

	It("reports build metadata", func() {
		resp, err := client.R().Get(baseURL + "/api/version")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
	})

	It("rejects an unknown role", func() {
		resp, err := client.R().
			SetBody(map[string]string{"player_name": "Robin", "role": "jester"}).
			Post(baseURL + "/api/games")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))
	})

	It("plays a full day cycle", func() {
		var created map[string]interface{}
		resp, err := client.R().
			SetBody(map[string]string{"player_name": "Robin", "role": "villager"}).
			SetResult(&created).
			Post(baseURL + "/api/games")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusCreated))
		Expect(created["phase"]).To(Equal("night_action"))

		gameID := uint(created["ID"].(float64))
		participants := created["participants"].([]interface{})
		Expect(participants).To(HaveLen(8))

		// Hidden roles must not reach the client: only the user's own seat
		// carries a role at the start.
		userID := created["user_participant_id"].(string)
		for _, raw := range participants {
			p := raw.(map[string]interface{})
			_, hasRole := p["role"]
			if p["id"] == userID {
				Expect(hasRole).To(BeTrue(), "the user's own role must be visible")
			} else {
				Expect(hasRole).To(BeFalse(), "bot roles must be redacted")
			}
		}

		// Pass the night without acting; the bots act through the decider.
		var afterNight map[string]interface{}
		resp, err = client.R().
			SetBody(map[string]string{"kind": ""}).
			SetResult(&afterNight).
			Post(fmt.Sprintf("%s/api/games/%d/night-action", baseURL, gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(afterNight["phase"]).To(Equal("day_intro"))

		var afterDiscussion map[string]interface{}
		resp, err = client.R().
			SetResult(&afterDiscussion).
			Post(fmt.Sprintf("%s/api/games/%d/discussion", baseURL, gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(afterDiscussion["phase"]).To(Equal("day_voting"))

		// Abstain; the bots' stored votes decide the day.
		var afterVote map[string]interface{}
		resp, err = client.R().
			SetBody(map[string]string{"target_id": ""}).
			SetResult(&afterVote).
			Post(fmt.Sprintf("%s/api/games/%d/vote", baseURL, gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(afterVote["phase"]).To(BeElementOf("night_action", "game_over"))
		if afterVote["phase"] == "night_action" {
			Expect(afterVote["day_count"]).To(BeEquivalentTo(2))
		}

		// The event log is served in emission order, starting with the
		// opening narration.
		var events []map[string]interface{}
		resp, err = client.R().
			SetResult(&events).
			Get(fmt.Sprintf("%s/api/games/%d/events", baseURL, gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(events).ToNot(BeEmpty())
		Expect(events[0]["kind"]).To(Equal("narrative"))
	})

	It("restarts a session with a bumped generation", func() {
		var created map[string]interface{}
		_, err := client.R().
			SetBody(map[string]string{"player_name": "Robin", "role": "seer"}).
			SetResult(&created).
			Post(baseURL + "/api/games")
		Expect(err).ToNot(HaveOccurred())
		gameID := uint(created["ID"].(float64))
		oldUserID := created["user_participant_id"].(string)

		var restarted map[string]interface{}
		resp, err := client.R().
			SetResult(&restarted).
			Post(fmt.Sprintf("%s/api/games/%d/restart", baseURL, gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(restarted["phase"]).To(Equal("night_action"))
		Expect(restarted["day_count"]).To(BeEquivalentTo(1))
		Expect(restarted["user_participant_id"]).ToNot(Equal(oldUserID))
	})
})
