package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
)

// OpenAI is a Decider backed by the OpenAI Chat Completions API. Failures
// are folded into the tagged outcome at this boundary; callers never see a
// transport error, only a status they can degrade on.
type OpenAI struct {
	client *http.Client
}

// NewOpenAI creates an OpenAI-backed decision oracle with a bounded call
// timeout.
func NewOpenAI(timeout time.Duration) *OpenAI {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{client: &http.Client{Timeout: timeout}}
}

func (o *OpenAI) NightDecisions(ctx context.Context, g *game.Game) NightOutcome {
	prompt := nightPrompt(rosterSummary(g), strconv.Itoa(g.DayCount))
	content, err := o.callChat(ctx, prompt)
	if err != nil {
		logging.Error("oracle night call failed", err, logging.Fields{constants.LogFieldGameID: g.ID, constants.LogFieldDay: g.DayCount})
		return NightOutcome{Status: StatusUnreachable}
	}
	var raw rawNightPayload
	if err := json.Unmarshal(stripFences(content), &raw); err != nil {
		logging.Error("oracle night payload malformed", err, logging.Fields{constants.LogFieldGameID: g.ID, constants.LogFieldDay: g.DayCount})
		return NightOutcome{Status: StatusMalformed}
	}
	return NightOutcome{Status: StatusOK, Proposals: validateNight(g, raw)}
}

func (o *OpenAI) DayDecisions(ctx context.Context, g *game.Game) DayOutcome {
	prompt := dayPrompt(rosterSummary(g), strconv.Itoa(g.DayCount), recentEvents(g, 12))
	content, err := o.callChat(ctx, prompt)
	if err != nil {
		logging.Error("oracle day call failed", err, logging.Fields{constants.LogFieldGameID: g.ID, constants.LogFieldDay: g.DayCount})
		return DayOutcome{Status: StatusUnreachable}
	}
	var raws []rawDayDecision
	if err := json.Unmarshal(stripFences(content), &raws); err != nil {
		logging.Error("oracle day payload malformed", err, logging.Fields{constants.LogFieldGameID: g.ID, constants.LogFieldDay: g.DayCount})
		return DayOutcome{Status: StatusMalformed}
	}
	return DayOutcome{Status: StatusOK, Decisions: validateDay(g, raws)}
}

// callChat invokes the OpenAI Chat Completions API and returns the first
// choice's content.
func (o *OpenAI) callChat(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are the hidden game master of a werewolf party game. You always answer with strict JSON."},
			{"role": "user", "content": prompt},
		},
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, strings.NewReader(string(b)))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// rosterSummary renders the roster the way the oracle sees it: public ids,
// names, alive status and rune states. Bot roles are included so the model
// can play them; the user's role is included as well since the oracle
// already knows the full assignment.
func rosterSummary(g *game.Game) string {
	type runeView struct {
		ID    uint   `json:"rune_id"`
		Kind  string `json:"kind"`
		Ready bool   `json:"ready"`
	}
	type view struct {
		ID      string     `json:"id"`
		Name    string     `json:"name"`
		Role    string     `json:"role"`
		IsAlive bool       `json:"is_alive"`
		IsBot   bool       `json:"is_bot"`
		Runes   []runeView `json:"runes"`
	}
	views := make([]view, 0, len(g.Participants))
	for i := range g.Participants {
		p := &g.Participants[i]
		v := view{ID: p.PublicID, Name: p.Name, Role: string(p.Role), IsAlive: p.IsAlive, IsBot: p.IsOracleControlled}
		for j := range p.Runes {
			r := &p.Runes[j]
			v.Runes = append(v.Runes, runeView{ID: r.ID, Kind: string(r.Kind), Ready: r.Ready()})
		}
		views = append(views, v)
	}
	b, _ := json.Marshal(views)
	return string(b)
}

// recentEvents joins the tail of the session log for the day prompt.
func recentEvents(g *game.Game, n int) string {
	start := len(g.Events) - n
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, n)
	for _, e := range g.Events[start:] {
		if e.SourceName != "" {
			lines = append(lines, e.SourceName+": "+e.Text)
			continue
		}
		lines = append(lines, e.Text)
	}
	return strings.Join(lines, " | ")
}

// stripFences removes a markdown code fence if the model wrapped its JSON.
func stripFences(s string) []byte {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return []byte(strings.TrimSpace(s))
}
