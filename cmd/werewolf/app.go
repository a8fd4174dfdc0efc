package main

import (
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/config"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/narrative"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/oracle"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid werewolf configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func applyPromptTemplates(cfg *config.LoadedConfig) {
	if cfg == nil {
		return
	}
	if cfg.NightPromptTemplate != "" {
		oracle.SetNightPromptTemplate(cfg.NightPromptTemplate)
	}
	if cfg.DayPromptTemplate != "" {
		oracle.SetDayPromptTemplate(cfg.DayPromptTemplate)
	}
	if cfg.NarrationPromptTemplate != "" {
		narrative.SetNarrationPromptTemplate(cfg.NarrationPromptTemplate)
	}
}
