package storage

import (
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
)

type Repository interface {
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	UpdateGame(g *game.Game) error
	// ClearSessionState deletes a session's participants, events, knowledge
	// and pending votes so a restart can rebuild the roster from scratch.
	ClearSessionState(gameID uint) error
	// ClearPendingVotes deletes the oracle's stored day votes once the vote
	// has been resolved.
	ClearPendingVotes(gameID uint) error

	// GetEventsByGameID returns the append-only log in emission order.
	GetEventsByGameID(gameID uint) ([]game.LogEvent, error)

	// Narration cache (lookup by canonical narration key)
	GetNarrationByKey(key string) (string, error)
	SaveNarration(key, text string) error

	// ClaimStalledGameIDs atomically claims up to limit sessions that are
	// awaiting input past their action deadline and returns the newly
	// claimed ids. A session already claimed by another worker is skipped
	// until its claim expires, so no stalled session is processed twice.
	ClaimStalledGameIDs(now time.Time, limit int, claimDuration time.Duration, workerID string) ([]uint, error)
}
