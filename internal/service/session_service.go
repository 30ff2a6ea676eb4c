package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

// Event types published to session subscribers.
const (
	EventPlayersChanged = "players_changed"
	EventGameStarted    = "game_started"
	EventScoreChanged   = "score_changed"
	EventGameEnded      = "game_ended"
	EventPlayerLeft     = "player_left"
)

// Bonus codes redeemable during a game. Unknown codes are a no-op, not an
// error.
var bonusPoints = map[string]int{
	"QR001": 2,
	"QR002": 1,
}

type Role string

const (
	RoleCreator Role = "creator"
	RoleJoiner  Role = "joiner"
)

// Redirect tells the caller which view matches the player's state.
type Redirect string

const (
	RedirectWaitingRoom Redirect = "waiting_room"
	RedirectScoreBoard  Redirect = "score_board"
)

type JoinResult struct {
	Role     Role           `json:"role"`
	Redirect Redirect       `json:"redirect"`
	Player   *models.Player `json:"player"`
}

type BonusResult struct {
	Applied bool `json:"applied"`
	Points  int  `json:"points"`
}

var sessionCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// SessionService owns the session lifecycle: admission, state transitions
// and the attempt log. Every state change is written to the store first and
// only then mirrored out through the hub.
type SessionService struct {
	players    PlayerStore
	users      UserStore
	questions  QuestionStore
	attempts   AttemptStore
	hub        Broadcaster
	maxPlayers int
}

func NewSessionService(
	players PlayerStore,
	users UserStore,
	questions QuestionStore,
	attempts AttemptStore,
	hub Broadcaster,
	maxPlayers int,
) *SessionService {
	return &SessionService{
		players:    players,
		users:      users,
		questions:  questions,
		attempts:   attempts,
		hub:        hub,
		maxPlayers: maxPlayers,
	}
}

// JoinSession admits a user into a session, or routes them back into a
// membership they already hold. Re-entry never creates a second row.
func (s *SessionService) JoinSession(userID uuid.UUID, sessionCode string) (*JoinResult, error) {
	if !sessionCodePattern.MatchString(sessionCode) {
		return nil, ErrInvalidSessionCode
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.players.GetMembership(userID, sessionCode)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	if existing != nil {
		switch existing.Status {
		case models.StatusWaiting:
			return &JoinResult{Role: RoleJoiner, Redirect: RedirectWaitingRoom, Player: existing}, nil
		case models.StatusPlaying:
			return &JoinResult{Role: RoleJoiner, Redirect: RedirectScoreBoard, Player: existing}, nil
		default:
			return nil, ErrSessionEnded
		}
	}

	player := &models.Player{
		ID:          uuid.New(),
		UserID:      userID,
		SessionCode: sessionCode,
		Status:      models.StatusWaiting,
		JoinedAt:    time.Now(),
	}

	role := RoleJoiner
	var total int
	err = s.players.Admit(player, func(stats models.SessionStats) error {
		if err := s.checkAdmission(stats); err != nil {
			return err
		}
		if stats.Total == 0 {
			role = RoleCreator
		}
		total = stats.Total + 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("player joined session",
		"user_name", user.Name,
		"session_code", sessionCode,
		"role", role)

	s.hub.Publish(sessionCode, EventPlayersChanged, map[string]interface{}{
		"user_id":       userID,
		"user_name":     user.Name,
		"total_players": total,
	})

	return &JoinResult{Role: role, Redirect: RedirectWaitingRoom, Player: player}, nil
}

// checkAdmission is the join gate for users without a membership. Only
// sessions where every existing member is still waiting admit newcomers;
// an empty code admits its creator.
func (s *SessionService) checkAdmission(stats models.SessionStats) error {
	if stats.Total == 0 {
		return nil
	}

	switch stats.MaxStatus {
	case models.StatusFinished:
		return ErrSessionEnded
	case models.StatusPlaying:
		return ErrSessionInProgress
	}

	if stats.Occupancy() >= s.maxPlayers {
		return ErrSessionFull
	}

	return nil
}

// CreateSession generates a fresh 6-digit code, unique among sessions that
// still have unfinished members, and joins the user as its creator.
func (s *SessionService) CreateSession(userID uuid.UUID) (*JoinResult, error) {
	active, err := s.players.ActiveSessionCodes()
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	taken := make(map[string]bool, len(active))
	for _, code := range active {
		taken[code] = true
	}

	code := generateSessionCode()
	for taken[code] {
		code = generateSessionCode()
	}

	return s.JoinSession(userID, code)
}

func generateSessionCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// StartGame moves every waiting member to playing. Idempotent.
func (s *SessionService) StartGame(sessionCode string) error {
	affected, err := s.players.StartGame(sessionCode)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	slog.Info("game started", "session_code", sessionCode, "players_started", affected)

	s.hub.Publish(sessionCode, EventGameStarted, map[string]interface{}{
		"session_code": sessionCode,
		"message":      "Game has started!",
	})

	return nil
}

// SubmitAttempt logs one answer for a playing member and returns the
// generated attempt id. Correctness is judged against the question's
// stored correct option.
func (s *SessionService) SubmitAttempt(
	userID uuid.UUID,
	sessionCode string,
	questionID uuid.UUID,
	chosenAnswer string,
	responseTime float64,
) (uuid.UUID, error) {
	membership, err := s.players.GetMembership(userID, sessionCode)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check membership: %w", err)
	}
	if membership == nil || membership.Status != models.StatusPlaying {
		return uuid.Nil, ErrPlayerNotInSession
	}

	question, err := s.questions.GetByID(questionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("fetch question: %w", err)
	}
	if question == nil {
		return uuid.Nil, ErrQuestionNotFound
	}

	chosen := strings.ToUpper(strings.TrimSpace(chosenAnswer))
	isCorrect := strings.EqualFold(chosen, strings.TrimSpace(question.CorrectOption))

	attempt := &models.QuestionAttempt{
		ID:           uuid.New(),
		UserID:       userID,
		PlayerID:     membership.ID,
		QuestionID:   questionID,
		SessionCode:  sessionCode,
		ChosenAnswer: chosen,
		IsCorrect:    isCorrect,
		ResponseTime: responseTime,
	}

	if err := s.attempts.Create(attempt); err != nil {
		return uuid.Nil, fmt.Errorf("save attempt: %w", err)
	}

	s.hub.Publish(sessionCode, EventScoreChanged, map[string]interface{}{
		"user_id":    userID,
		"is_correct": isCorrect,
	})

	return attempt.ID, nil
}

// ApplyBonus redeems a bonus code for the player. Unknown codes return an
// unapplied result; a missing membership is an error.
func (s *SessionService) ApplyBonus(userID uuid.UUID, sessionCode string, bonusCode string) (*BonusResult, error) {
	points, recognized := bonusPoints[strings.ToUpper(strings.TrimSpace(bonusCode))]
	if !recognized {
		membership, err := s.players.GetMembership(userID, sessionCode)
		if err != nil {
			return nil, fmt.Errorf("check membership: %w", err)
		}
		if membership == nil {
			return nil, ErrPlayerNotInSession
		}
		return &BonusResult{Applied: false}, nil
	}

	affected, err := s.players.AddBonus(userID, sessionCode, points)
	if err != nil {
		return nil, fmt.Errorf("apply bonus: %w", err)
	}
	if affected == 0 {
		return nil, ErrPlayerNotInSession
	}

	slog.Info("bonus applied", "user_id", userID, "session_code", sessionCode, "points", points)

	s.hub.Publish(sessionCode, EventScoreChanged, map[string]interface{}{
		"user_id":      userID,
		"points_added": points,
	})

	return &BonusResult{Applied: true, Points: points}, nil
}

// EndGame moves every playing member to finished. Calling it again changes
// nothing and keeps the original ended_at stamps.
func (s *SessionService) EndGame(sessionCode string) error {
	affected, err := s.players.EndGame(sessionCode, time.Now())
	if err != nil {
		return fmt.Errorf("end game: %w", err)
	}

	slog.Info("game ended", "session_code", sessionCode, "players_finished", affected)

	s.hub.Publish(sessionCode, EventGameEnded, map[string]interface{}{
		"session_code": sessionCode,
		"message":      "Game has ended!",
	})

	return nil
}

// LeaveSession deletes the membership regardless of status and reports
// whether a row was removed.
func (s *SessionService) LeaveSession(userID uuid.UUID, sessionCode string) (bool, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return false, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return false, ErrUserNotFound
	}

	removed, err := s.players.Remove(userID, sessionCode)
	if err != nil {
		return false, fmt.Errorf("leave session: %w", err)
	}

	if removed {
		s.hub.Publish(sessionCode, EventPlayerLeft, map[string]interface{}{
			"user_id":   userID,
			"user_name": user.Name,
		})
		s.hub.Publish(sessionCode, EventPlayersChanged, map[string]interface{}{
			"user_id": userID,
			"left":    true,
		})
	}

	return removed, nil
}

// SessionStatus returns membership counts used for view routing: once
// finished == total the session surfaces its final results.
func (s *SessionService) SessionStatus(sessionCode string) (models.SessionStats, error) {
	return s.players.SessionStats(sessionCode)
}
