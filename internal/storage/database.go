package storage

import (
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at dataSourceName and keeps the
// schema updated via AutoMigrate. The database only holds session state and
// the narration cache; deleting the file resets everything.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Game{},
		&game.Participant{},
		&game.Rune{},
		&game.LogEvent{},
		&game.KnownRole{},
		&game.PendingVote{},
		&game.Narration{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
