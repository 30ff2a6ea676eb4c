package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player membership status values. A player only ever moves forward:
// waiting -> playing -> finished.
const (
	StatusWaiting  = 0
	StatusPlaying  = 1
	StatusFinished = 2
)

// User is a registered account. Passwords are stored bcrypt-hashed.
type User struct {
	ID           uuid.UUID `gorm:"column:user_id;type:uuid;primary_key" json:"user_id"`
	Name         string    `gorm:"column:user_name;not null" json:"user_name"`
	Email        string    `gorm:"column:user_email;unique;not null" json:"user_email"`
	PasswordHash string    `gorm:"column:user_password;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Question is static reference data managed by the admin screens. The game
// core only ever reads it.
type Question struct {
	ID            uuid.UUID `gorm:"column:question_id;type:uuid;primary_key" json:"question_id"`
	Text          string    `gorm:"column:question_text;not null" json:"question_text"`
	OptionA       string    `gorm:"column:option_a" json:"option_a"`
	OptionB       string    `gorm:"column:option_b" json:"option_b"`
	OptionC       string    `gorm:"column:option_c" json:"option_c"`
	OptionD       string    `gorm:"column:option_d" json:"option_d"`
	CorrectOption string    `gorm:"column:correct_option;not null" json:"correct_option"` // "A".."D"
	Explanation   string    `gorm:"column:explanation" json:"explanation"`
}

func (Question) TableName() string { return "questions" }

// Player is one user's membership in one session. A session has no row of
// its own: it exists exactly while at least one Player row carries its code.
type Player struct {
	ID          uuid.UUID  `gorm:"column:player_id;type:uuid;primary_key" json:"player_id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	SessionCode string     `gorm:"column:session_code;not null" json:"session_code"` // 6 decimal digits
	Status      int        `gorm:"column:status;not null;default:0" json:"status"`
	BaseScore   int        `gorm:"column:base_score;not null;default:0" json:"base_score"`
	JoinedAt    time.Time  `gorm:"column:joined_at" json:"joined_at"`
	EndedAt     *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
}

func (Player) TableName() string { return "players" }

// QuestionAttempt is an append-only log row, one per answer submission.
type QuestionAttempt struct {
	ID           uuid.UUID `gorm:"column:attempt_id;type:uuid;primary_key" json:"attempt_id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	PlayerID     uuid.UUID `gorm:"column:player_id;type:uuid;not null" json:"player_id"`
	QuestionID   uuid.UUID `gorm:"column:question_id;type:uuid;not null" json:"question_id"`
	SessionCode  string    `gorm:"column:session_code;not null" json:"session_code"`
	ChosenAnswer string    `gorm:"column:chosen_answer" json:"chosen_answer"`
	IsCorrect    bool      `gorm:"column:is_correct" json:"is_correct"`
	ResponseTime float64   `gorm:"column:response_time" json:"response_time_seconds"`
	CreatedAt    time.Time `json:"created_at"`
}

func (QuestionAttempt) TableName() string { return "question_attempts" }

// SessionStats aggregates the membership rows sharing one session code.
type SessionStats struct {
	Total     int `json:"total_players"`
	Waiting   int `json:"waiting"`
	Playing   int `json:"playing"`
	Finished  int `json:"finished"`
	MaxStatus int `json:"-"`
}

// Occupancy counts members holding a seat: everyone not yet finished.
func (s SessionStats) Occupancy() int {
	return s.Waiting + s.Playing
}

// AllFinished reports whether the session has fully concluded.
func (s SessionStats) AllFinished() bool {
	return s.Total > 0 && s.Finished == s.Total
}

// FinishedSession identifies a concluded session for the leaderboard.
type FinishedSession struct {
	SessionCode string     `json:"session_code"`
	EndedAt     *time.Time `json:"ended_at"`
}

// BeforeCreate hooks to generate UUIDs
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (a *QuestionAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
