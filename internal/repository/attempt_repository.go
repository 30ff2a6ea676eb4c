package repository

import (
	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

type AttemptRepository struct {
	db *Database
}

func NewAttemptRepository(db *Database) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create appends one attempt row. Attempts are never updated afterwards.
func (r *AttemptRepository) Create(attempt *models.QuestionAttempt) error {
	return r.db.Create(attempt).Error
}

// CorrectCounts returns the number of correct answers per user for a session.
func (r *AttemptRepository) CorrectCounts(sessionCode string) (map[uuid.UUID]int, error) {
	var rows []struct {
		UserID uuid.UUID
		N      int
	}

	err := r.db.Model(&models.QuestionAttempt{}).
		Select("user_id, count(*) as n").
		Where("session_code = ? AND is_correct = ?", sessionCode, true).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.N
	}

	return counts, nil
}

// CountBySession returns the session-wide attempt total, correct or not.
func (r *AttemptRepository) CountBySession(sessionCode string) (int64, error) {
	var total int64

	err := r.db.Model(&models.QuestionAttempt{}).
		Where("session_code = ?", sessionCode).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *AttemptRepository) ListBySession(sessionCode string) ([]models.QuestionAttempt, error) {
	var attempts []models.QuestionAttempt

	err := r.db.Where("session_code = ?", sessionCode).
		Order("created_at asc").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	return attempts, nil
}
