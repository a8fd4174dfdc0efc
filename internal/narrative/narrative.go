package narrative

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
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/dedupe"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/keys"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
)

// narrationPromptTemplate can be set at application startup to customize
// the prompt used when requesting flavor text. Supported tokens:
// {{phase}}, {{day}}, {{summary}}, {{atmosphere}}.
var narrationPromptTemplate string

// SetNarrationPromptTemplate sets a custom narration prompt template. Call
// from main after loading configuration.
func SetNarrationPromptTemplate(t string) {
	narrationPromptTemplate = strings.TrimSpace(t)
}

// Cache is the storage surface the narrator needs: lookups and saves keyed
// by the canonical narration key.
type Cache interface {
	GetNarrationByKey(key string) (string, error)
	SaveNarration(key, text string) error
}

// Request describes the scene to narrate. Summary is a short event recap;
// Atmosphere is a free-form mood tag ("tense", "hopeful").
type Request struct {
	Phase      game.Phase
	Day        int
	Summary    string
	Atmosphere string
}

// Narrate returns flavor text for the request: from the cache when present,
// otherwise generated via OpenAI behind a singleflight group and stored for
// reuse. It never fails; an unreachable or empty response falls back to a
// fixed default line for the phase.
func Narrate(ctx context.Context, cache Cache, req Request) string {
	key := keys.NarrationKey(string(req.Phase), req.Day, req.Atmosphere)

	if cache != nil {
		if text, err := cache.GetNarrationByKey(key); err == nil && text != "" {
			return text
		}
	}

	ch := dedupe.NarrationGroup.DoChan(key, func() (interface{}, error) {
		if cache != nil {
			if text, err := cache.GetNarrationByKey(key); err == nil && text != "" {
				return text, nil
			}
		}
		text, err := callOpenAI(ctx, req)
		if err != nil {
			return "", err
		}
		if text == "" {
			return "", fmt.Errorf("empty narration")
		}
		if cache != nil {
			if err := cache.SaveNarration(key, text); err != nil {
				logging.Error("narration cache save failed", err, logging.Fields{constants.LogFieldKey: key})
			}
		}
		return text, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			logging.Error("narration generation failed", r.Err, logging.Fields{constants.LogFieldKey: key})
			return defaultLine(req.Phase)
		}
		if s, ok := r.Val.(string); ok && s != "" {
			return s
		}
		return defaultLine(req.Phase)
	case <-time.After(30 * time.Second):
		logging.Error("narration generation timed out", fmt.Errorf("timeout"), logging.Fields{constants.LogFieldKey: key})
		return defaultLine(req.Phase)
	}
}

func callOpenAI(ctx context.Context, req Request) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	prompt := narrationPromptTemplate
	if prompt == "" {
		prompt = "Narrate one short atmospheric paragraph (2-3 sentences) for the {{phase}} of day {{day}} in a werewolf village game. What just happened: {{summary}}. Mood: {{atmosphere}}. Address the player directly. Return only the paragraph."
	}
	prompt = strings.ReplaceAll(prompt, "{{phase}}", string(req.Phase))
	prompt = strings.ReplaceAll(prompt, "{{day}}", strconv.Itoa(req.Day))
	prompt = strings.ReplaceAll(prompt, "{{summary}}", req.Summary)
	prompt = strings.ReplaceAll(prompt, "{{atmosphere}}", req.Atmosphere)

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are the narrator of a gothic village werewolf game."},
			{"role": "user", "content": prompt},
		},
	}

	b, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, strings.NewReader(string(b)))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
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

// defaultLine is the fixed fallback per phase, used whenever generation
// fails or returns nothing.
func defaultLine(phase game.Phase) string {
	switch phase {
	case game.PhaseNightIntro, game.PhaseNightAction:
		return "Darkness settles over the village. Somewhere, something stirs."
	case game.PhaseDayIntro:
		return "Dawn breaks cold and gray over the square."
	case game.PhaseDayDiscussion, game.PhaseDayVoting:
		return "The villagers gather, trading wary glances."
	case game.PhaseGameOver:
		return "The tale of this village has reached its end."
	default:
		return "The village waits."
	}
}
