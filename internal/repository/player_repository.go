package repository

import (
	"errors"
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *Database
}

func NewPlayerRepository(db *Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetMembership returns the user's membership row for a session, or nil
// when the user never joined it.
func (r *PlayerRepository) GetMembership(userID uuid.UUID, sessionCode string) (*models.Player, error) {
	var player models.Player

	err := r.db.Where("user_id = ? AND session_code = ?", userID, sessionCode).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &player, nil
}

// SessionStats aggregates membership counts for one session code.
func (r *PlayerRepository) SessionStats(sessionCode string) (models.SessionStats, error) {
	return sessionStats(r.db.DB, sessionCode)
}

func sessionStats(db *gorm.DB, sessionCode string) (models.SessionStats, error) {
	var rows []struct {
		Status int
		N      int
	}

	err := db.Model(&models.Player{}).
		Select("status, count(*) as n").
		Where("session_code = ?", sessionCode).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.SessionStats{}, err
	}

	var stats models.SessionStats
	for _, row := range rows {
		stats.Total += row.N
		if row.Status > stats.MaxStatus {
			stats.MaxStatus = row.Status
		}
		switch row.Status {
		case models.StatusWaiting:
			stats.Waiting += row.N
		case models.StatusPlaying:
			stats.Playing += row.N
		case models.StatusFinished:
			stats.Finished += row.N
		}
	}

	return stats, nil
}

// Admit inserts a membership row after the allow policy approves the
// session's stats. Check and insert run in one transaction so two
// concurrent joins cannot both slip past the occupancy cap.
func (r *PlayerRepository) Admit(player *models.Player, allow func(models.SessionStats) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stats, err := sessionStats(tx, player.SessionCode)
		if err != nil {
			return err
		}

		if err := allow(stats); err != nil {
			return err
		}

		return tx.Create(player).Error
	})
}

// StartGame moves every waiting member to playing. Members already playing
// or finished are untouched, so the call is idempotent.
func (r *PlayerRepository) StartGame(sessionCode string) (int64, error) {
	result := r.db.Model(&models.Player{}).
		Where("session_code = ? AND status = ?", sessionCode, models.StatusWaiting).
		Update("status", models.StatusPlaying)
	return result.RowsAffected, result.Error
}

// EndGame moves every playing member to finished and stamps ended_at.
// Already-finished members keep their original timestamp.
func (r *PlayerRepository) EndGame(sessionCode string, endedAt time.Time) (int64, error) {
	result := r.db.Model(&models.Player{}).
		Where("session_code = ? AND status = ?", sessionCode, models.StatusPlaying).
		Updates(map[string]interface{}{
			"status":   models.StatusFinished,
			"ended_at": endedAt,
		})
	return result.RowsAffected, result.Error
}

// AddBonus adds delta to the player's base score in a single statement so
// racing bonus events cannot lose updates.
func (r *PlayerRepository) AddBonus(userID uuid.UUID, sessionCode string, delta int) (int64, error) {
	result := r.db.Model(&models.Player{}).
		Where("user_id = ? AND session_code = ?", userID, sessionCode).
		UpdateColumn("base_score", gorm.Expr("base_score + ?", delta))
	return result.RowsAffected, result.Error
}

// Remove deletes the membership row regardless of status and reports
// whether a row was actually removed. The player's attempt rows are kept:
// the attempt log only shrinks through question or user deletion.
func (r *PlayerRepository) Remove(userID uuid.UUID, sessionCode string) (bool, error) {
	result := r.db.Where("user_id = ? AND session_code = ?", userID, sessionCode).
		Delete(&models.Player{})
	return result.RowsAffected > 0, result.Error
}

func (r *PlayerRepository) ListBySession(sessionCode string) ([]models.Player, error) {
	var players []models.Player

	err := r.db.Where("session_code = ?", sessionCode).
		Order("joined_at asc").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	return players, nil
}

// ActiveSessionCodes lists codes that still have at least one member who
// has not finished. Used to keep freshly generated codes unique.
func (r *PlayerRepository) ActiveSessionCodes() ([]string, error) {
	var codes []string

	err := r.db.Model(&models.Player{}).
		Distinct("session_code").
		Where("status <> ?", models.StatusFinished).
		Pluck("session_code", &codes).Error
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// FinishedSessions lists fully concluded sessions, most recent first.
func (r *PlayerRepository) FinishedSessions() ([]models.FinishedSession, error) {
	var sessions []models.FinishedSession

	err := r.db.Model(&models.Player{}).
		Select("session_code, max(ended_at) as ended_at").
		Group("session_code").
		Having("min(status) = ?", models.StatusFinished).
		Order("max(ended_at) desc").
		Scan(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// StaleWaitingSessions lists codes where every member is still waiting and
// nobody joined since the cutoff.
func (r *PlayerRepository) StaleWaitingSessions(cutoff time.Time) ([]string, error) {
	var codes []string

	err := r.db.Model(&models.Player{}).
		Select("session_code").
		Group("session_code").
		Having("max(status) = ? AND max(joined_at) < ?", models.StatusWaiting, cutoff).
		Pluck("session_code", &codes).Error
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// PurgeSession removes every membership row for a session code.
func (r *PlayerRepository) PurgeSession(sessionCode string) (int64, error) {
	result := r.db.Where("session_code = ?", sessionCode).Delete(&models.Player{})
	return result.RowsAffected, result.Error
}
