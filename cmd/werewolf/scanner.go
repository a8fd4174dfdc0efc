package main

import (
	"context"
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/logging"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/service"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/storage"
)

// startStalledScanner claims sessions stuck past their action deadline and
// forces them forward via service.HandleStalledGame. Claiming first means a
// session is never processed twice, and a user request that lands after the
// claim voids it by pushing the deadline forward. Claimed sessions are
// processed one at a time; SQLite does not like concurrent writers.
func startStalledScanner(repo storage.Repository, actionTimeout time.Duration, workerID string) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			ids, err := repo.ClaimStalledGameIDs(time.Now(), 20, 2*time.Minute, workerID)
			if err != nil {
				logging.Error("stalled scanner failed to claim games", err, nil)
				continue
			}
			for _, id := range ids {
				gg, err := repo.GetGameByID(id)
				if err != nil {
					continue
				}
				if err := service.HandleStalledGame(context.Background(), repo, gg, actionTimeout); err != nil {
					logging.Error("failed to force stalled game forward", err, nil)
				}
			}
		}
	}()
}
