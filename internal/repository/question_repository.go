package repository

import (
	"errors"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *Database
}

func NewQuestionRepository(db *Database) *QuestionRepository {
	return &QuestionRepository{
		db: db,
	}
}

func (r *QuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

// GetByID returns nil, nil when the question does not exist; a non-nil
// error always means the store itself failed.
func (r *QuestionRepository) GetByID(id uuid.UUID) (*models.Question, error) {
	var question models.Question

	err := r.db.First(&question, "question_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &question, nil
}

func (r *QuestionRepository) GetAll() ([]models.Question, error) {
	var questions []models.Question

	if err := r.db.Order("question_id asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}

// GetRandom returns nil, nil when the question bank is empty.
func (r *QuestionRepository) GetRandom() (*models.Question, error) {
	var question models.Question

	err := r.db.Order("RANDOM()").First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &question, nil
}

// Delete removes the question and its logged attempts.
func (r *QuestionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionAttempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, "question_id = ?", id).Error
	})
}
