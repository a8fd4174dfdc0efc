package storage

import (
	"time"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	err := r.db.
		Preload("Participants.Runes").
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Knowledge").
		Preload("PendingVotes").
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) ClearSessionState(gameID uint) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var participants []game.Participant
	if err := tx.Where("game_id = ?", gameID).Find(&participants).Error; err != nil {
		tx.Rollback()
		return err
	}
	for _, p := range participants {
		if err := tx.Where("participant_id = ?", p.ID).Delete(&game.Rune{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, m := range []interface{}{&game.Participant{}, &game.LogEvent{}, &game.KnownRole{}, &game.PendingVote{}} {
		if err := tx.Where("game_id = ?", gameID).Delete(m).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) ClearPendingVotes(gameID uint) error {
	return r.db.Where("game_id = ?", gameID).Delete(&game.PendingVote{}).Error
}

func (r *sqliteRepository) GetEventsByGameID(gameID uint) ([]game.LogEvent, error) {
	var events []game.LogEvent
	if err := r.db.Where("game_id = ?", gameID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *sqliteRepository) GetNarrationByKey(key string) (string, error) {
	var n game.Narration
	if err := r.db.Where("key = ?", key).First(&n).Error; err != nil {
		return "", err
	}
	return n.Text, nil
}

func (r *sqliteRepository) SaveNarration(key, text string) error {
	// Try to update existing record first
	res := r.db.Model(&game.Narration{}).Where("key = ?", key).Update("text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.db.Create(&game.Narration{Key: key, Text: text}).Error
}

func (r *sqliteRepository) ClaimStalledGameIDs(now time.Time, limit int, claimDuration time.Duration, workerID string) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	var ids []uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var candidates []game.Game
		if err := tx.Select("id").
			Where("phase IN ?", []game.Phase{game.PhaseNightAction, game.PhaseDayVoting}).
			Where("action_deadline <= ?", now).
			Where("(claimed_until IS NULL OR claimed_until <= ?)", now).
			Limit(limit).
			Find(&candidates).Error; err != nil {
			return err
		}
		for _, c := range candidates {
			// The guarded update keeps the claim atomic: RowsAffected is
			// zero when another worker got there first.
			res := tx.Model(&game.Game{}).
				Where("id = ? AND (claimed_until IS NULL OR claimed_until <= ?)", c.ID, now).
				Updates(map[string]interface{}{
					"claimed_by":    workerID,
					"claimed_until": now.Add(claimDuration),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				ids = append(ids, c.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
