package repository

import (
	"errors"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID returns nil, nil when no account has the id; a non-nil error
// always means the store itself failed.
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User

	err := r.db.First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns nil, nil when no account uses the address.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.First(&user, "user_email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByIDs(ids []uuid.UUID) ([]models.User, error) {
	var users []models.User

	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User

	if err := r.db.Order("user_name asc").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// Delete removes a user together with their memberships and attempt rows,
// in one transaction so a half-deleted account never survives a crash.
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.QuestionAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "user_id = ?", id).Error
	})
}
