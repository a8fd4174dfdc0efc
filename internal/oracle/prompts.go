package oracle

import "strings"

// Prompt templates can be set at application startup to customize what is
// sent to OpenAI. The token "{{roster}}" is substituted with a JSON summary
// of the living roster and "{{day}}" with the current day number.
var (
	nightPromptTemplate string
	dayPromptTemplate   string
)

// SetNightPromptTemplate overrides the built-in night prompt. Call from main
// after loading configuration.
func SetNightPromptTemplate(t string) {
	nightPromptTemplate = strings.TrimSpace(t)
}

// SetDayPromptTemplate overrides the built-in day prompt.
func SetDayPromptTemplate(t string) {
	dayPromptTemplate = strings.TrimSpace(t)
}

const defaultNightPrompt = `You control the computer players of a werewolf game. It is night {{day}}. The roster is: {{roster}}. Decide the night actions for the computer-controlled players only. Reply with a single JSON object: {"werewolf_kill_target_id": id or null, "doctor_save_target_id": id or null, "seer_check_target_id": id or null, "rune_uses": [{"actor_id": id, "rune_id": number, "target_id": id}]}. Use participant ids exactly as given. Return only JSON.`

const defaultDayPrompt = `You control the computer players of a werewolf game. It is day {{day}}. The roster is: {{roster}}. Recent events: {{events}}. For each living computer-controlled player, produce one short in-character chat message and one vote. Reply with a single JSON array: [{"actor_id": id, "chat_message": "...", "vote_target_id": id or null}]. Werewolves should deflect suspicion; everyone else hunts the werewolves. Return only JSON.`

func nightPrompt(roster, day string) string {
	p := nightPromptTemplate
	if p == "" {
		p = defaultNightPrompt
	}
	p = strings.ReplaceAll(p, "{{roster}}", roster)
	return strings.ReplaceAll(p, "{{day}}", day)
}

func dayPrompt(roster, day, events string) string {
	p := dayPromptTemplate
	if p == "" {
		p = defaultDayPrompt
	}
	p = strings.ReplaceAll(p, "{{roster}}", roster)
	p = strings.ReplaceAll(p, "{{events}}", events)
	return strings.ReplaceAll(p, "{{day}}", day)
}
