package service

import (
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

// Store interfaces implemented by the repository package. Services depend
// on these rather than on concrete repositories so the game rules can be
// exercised against in-memory stores in tests.
//
// Single-row lookups return nil, nil for an absent row; a non-nil error
// always means the store itself failed.

type PlayerStore interface {
	GetMembership(userID uuid.UUID, sessionCode string) (*models.Player, error)
	SessionStats(sessionCode string) (models.SessionStats, error)
	Admit(player *models.Player, allow func(models.SessionStats) error) error
	StartGame(sessionCode string) (int64, error)
	EndGame(sessionCode string, endedAt time.Time) (int64, error)
	AddBonus(userID uuid.UUID, sessionCode string, delta int) (int64, error)
	Remove(userID uuid.UUID, sessionCode string) (bool, error)
	ListBySession(sessionCode string) ([]models.Player, error)
	ActiveSessionCodes() ([]string, error)
	FinishedSessions() ([]models.FinishedSession, error)
	StaleWaitingSessions(cutoff time.Time) ([]string, error)
	PurgeSession(sessionCode string) (int64, error)
}

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []uuid.UUID) ([]models.User, error)
	GetAll() ([]models.User, error)
	Delete(id uuid.UUID) error
}

type QuestionStore interface {
	Create(question *models.Question) error
	GetByID(id uuid.UUID) (*models.Question, error)
	GetAll() ([]models.Question, error)
	GetRandom() (*models.Question, error)
	Delete(id uuid.UUID) error
}

type AttemptStore interface {
	Create(attempt *models.QuestionAttempt) error
	CorrectCounts(sessionCode string) (map[uuid.UUID]int, error)
	CountBySession(sessionCode string) (int64, error)
	ListBySession(sessionCode string) ([]models.QuestionAttempt, error)
}

// Broadcaster mirrors state changes to connected clients. Delivery is
// best-effort; nothing in the game rules may depend on it.
type Broadcaster interface {
	Publish(sessionCode string, eventType string, payload interface{})
	SubscriberCount(sessionCode string) int
}
