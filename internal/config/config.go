package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

type runeEntry struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	CooldownPeriod int    `json:"cooldown_period"`
}

type rawConfig struct {
	BotNames []string    `json:"bot_names"`
	Runes    []runeEntry `json:"runes"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional prompt templates for the decision and narrative oracles.
	// See the oracle and narrative packages for the tokens each supports.
	NightPrompt     string `json:"night_prompt"`
	DayPrompt       string `json:"day_prompt"`
	NarrationPrompt string `json:"narration_prompt"`
	// ActionTimeoutSeconds bounds how long a session may wait on oracle
	// input before the stalled-session scanner forces it forward.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// ChatDelayMillis paces the emission of bot chat messages during the
	// day discussion.
	ChatDelayMillis int `json:"chat_delay_millis"`
}

// RuneDef is one configured rune template. Sessions draw each participant's
// rune at random from these.
type RuneDef struct {
	Name           string
	Kind           game.RuneKind
	CooldownPeriod int
}

// LoadedConfig contains everything the server needs at startup.
type LoadedConfig struct {
	BotNames                []string
	Runes                   []RuneDef
	ServerAddress           string
	NightPromptTemplate     string
	DayPromptTemplate       string
	NarrationPromptTemplate string
	ActionTimeout           time.Duration
	ChatDelay               time.Duration
}

// LoadConfig reads the configuration file at path. It requires non-empty
// `bot_names` and `runes` arrays and validates them for duplicates and
// cooldown ranges.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.BotNames) < game.RosterSize-1 {
		return nil, fmt.Errorf("config file %s: bot_names must have at least %d entries", path, game.RosterSize-1)
	}
	nameSet := make(map[string]struct{}, len(rc.BotNames))
	for _, n := range rc.BotNames {
		ln := strings.ToLower(strings.TrimSpace(n))
		if ln == "" {
			return nil, fmt.Errorf("config file %s: empty bot name", path)
		}
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate bot name '%s'", path, n)
		}
		nameSet[ln] = struct{}{}
	}

	if len(rc.Runes) == 0 {
		return nil, fmt.Errorf("config file %s: runes is empty (provide a 'runes' array)", path)
	}
	runes := make([]RuneDef, 0, len(rc.Runes))
	for _, r := range rc.Runes {
		var kind game.RuneKind
		switch r.Kind {
		case string(game.RuneSight):
			kind = game.RuneSight
		case string(game.RuneShield):
			kind = game.RuneShield
		default:
			return nil, fmt.Errorf("config file %s: rune '%s' has unknown kind '%s'", path, r.Name, r.Kind)
		}
		if r.CooldownPeriod <= 0 {
			return nil, fmt.Errorf("config file %s: rune '%s' needs a positive cooldown_period", path, r.Name)
		}
		runes = append(runes, RuneDef{Name: r.Name, Kind: kind, CooldownPeriod: r.CooldownPeriod})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	actionTimeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		actionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	// The discussion handler sleeps between chat messages, so the delay
	// needs a hard ceiling.
	const maxChatDelayMillis = 10000
	if rc.ChatDelayMillis > maxChatDelayMillis {
		return nil, fmt.Errorf("config file %s: chat_delay_millis must be at most %d", path, maxChatDelayMillis)
	}
	chatDelay := 1500 * time.Millisecond
	if rc.ChatDelayMillis > 0 {
		chatDelay = time.Duration(rc.ChatDelayMillis) * time.Millisecond
	}

	return &LoadedConfig{
		BotNames:                rc.BotNames,
		Runes:                   runes,
		ServerAddress:           addr,
		NightPromptTemplate:     strings.TrimSpace(rc.NightPrompt),
		DayPromptTemplate:       strings.TrimSpace(rc.DayPrompt),
		NarrationPromptTemplate: strings.TrimSpace(rc.NarrationPrompt),
		ActionTimeout:           actionTimeout,
		ChatDelay:               chatDelay,
	}, nil
}
