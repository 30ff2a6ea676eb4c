package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

// Standing is one row of a session's ranked scoreboard.
type Standing struct {
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	CurrentScore int       `json:"current_score"`
	CorrectCount int       `json:"correct_answers"`
	Status       int       `json:"status"`
	Accuracy     float64   `json:"accuracy_percentage"`
}

type LeaderboardEntry struct {
	SessionCode   string     `json:"session_code"`
	EndedAt       *time.Time `json:"ended_at"`
	TotalAttempts int64      `json:"total_attempts"`
	Standings     []Standing `json:"standings"`
}

// ReviewAttempt is one player's answer to a reviewed question.
type ReviewAttempt struct {
	UserName     string  `json:"user_name"`
	ChosenAnswer string  `json:"chosen_answer"`
	IsCorrect    bool    `json:"is_correct"`
	ResponseTime float64 `json:"response_time_seconds"`
}

type ReviewQuestion struct {
	Question models.Question `json:"question"`
	Attempts []ReviewAttempt `json:"attempts"`
}

// ScoreService derives scores from the two sources that feed them: the
// adjustable base score on the membership row and the count of correct
// answers in the attempt log. The two are always added, never merged.
type ScoreService struct {
	players   PlayerStore
	users     UserStore
	questions QuestionStore
	attempts  AttemptStore
}

func NewScoreService(players PlayerStore, users UserStore, questions QuestionStore, attempts AttemptStore) *ScoreService {
	return &ScoreService{
		players:   players,
		users:     users,
		questions: questions,
		attempts:  attempts,
	}
}

// Standings ranks a session's players by current score descending, ties
// broken by user name ascending. The order is deterministic so leaderboard
// and final-results views always agree.
func (s *ScoreService) Standings(sessionCode string) ([]Standing, error) {
	players, err := s.players.ListBySession(sessionCode)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		return []Standing{}, nil
	}

	correct, err := s.attempts.CorrectCounts(sessionCode)
	if err != nil {
		return nil, fmt.Errorf("count correct answers: %w", err)
	}

	total, err := s.attempts.CountBySession(sessionCode)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}

	names, err := s.userNames(players)
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		correctCount := correct[p.UserID]
		standings = append(standings, Standing{
			UserID:       p.UserID,
			UserName:     names[p.UserID],
			CurrentScore: p.BaseScore + correctCount,
			CorrectCount: correctCount,
			Status:       p.Status,
			Accuracy:     accuracy(correctCount, total),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].CurrentScore != standings[j].CurrentScore {
			return standings[i].CurrentScore > standings[j].CurrentScore
		}
		return standings[i].UserName < standings[j].UserName
	})

	return standings, nil
}

// SessionAccuracy reports session-wide correct answers as a percentage of
// all attempts in the session, rounded to one decimal. Zero attempts means
// zero percent, not an error.
func (s *ScoreService) SessionAccuracy(sessionCode string) (float64, error) {
	total, err := s.attempts.CountBySession(sessionCode)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	correct, err := s.attempts.CorrectCounts(sessionCode)
	if err != nil {
		return 0, fmt.Errorf("count correct answers: %w", err)
	}

	sum := 0
	for _, n := range correct {
		sum += n
	}

	return accuracy(sum, total), nil
}

// Leaderboard lists concluded sessions, most recent first, each with its
// final standings.
func (s *ScoreService) Leaderboard() ([]LeaderboardEntry, error) {
	sessions, err := s.players.FinishedSessions()
	if err != nil {
		return nil, fmt.Errorf("list finished sessions: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(sessions))
	for _, session := range sessions {
		standings, err := s.Standings(session.SessionCode)
		if err != nil {
			return nil, err
		}

		total, err := s.attempts.CountBySession(session.SessionCode)
		if err != nil {
			return nil, fmt.Errorf("count attempts: %w", err)
		}

		entries = append(entries, LeaderboardEntry{
			SessionCode:   session.SessionCode,
			EndedAt:       session.EndedAt,
			TotalAttempts: total,
			Standings:     standings,
		})
	}

	return entries, nil
}

// SessionReview groups a session's logged attempts under the questions
// they answered, for the end-of-game review screen.
func (s *ScoreService) SessionReview(sessionCode string) ([]ReviewQuestion, error) {
	attempts, err := s.attempts.ListBySession(sessionCode)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	if len(attempts) == 0 {
		return []ReviewQuestion{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(attempts))
	seenUser := make(map[uuid.UUID]bool)
	for _, a := range attempts {
		if !seenUser[a.UserID] {
			seenUser[a.UserID] = true
			userIDs = append(userIDs, a.UserID)
		}
	}

	users, err := s.users.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	var review []ReviewQuestion
	index := make(map[uuid.UUID]int)
	for _, a := range attempts {
		i, seen := index[a.QuestionID]
		if !seen {
			question, err := s.questions.GetByID(a.QuestionID)
			if err != nil {
				return nil, fmt.Errorf("fetch question: %w", err)
			}
			if question == nil {
				// Question deleted since the game; skip its attempts.
				continue
			}
			review = append(review, ReviewQuestion{Question: *question})
			i = len(review) - 1
			index[a.QuestionID] = i
		}

		review[i].Attempts = append(review[i].Attempts, ReviewAttempt{
			UserName:     names[a.UserID],
			ChosenAnswer: a.ChosenAnswer,
			IsCorrect:    a.IsCorrect,
			ResponseTime: a.ResponseTime,
		})
	}

	if review == nil {
		review = []ReviewQuestion{}
	}

	return review, nil
}

func (s *ScoreService) userNames(players []models.Player) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.UserID)
	}

	users, err := s.users.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	return names, nil
}

// accuracy normalizes by the session-wide attempt total so every player's
// percentage shares the same denominator.
func accuracy(correct int, totalAttempts int64) float64 {
	if totalAttempts == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(totalAttempts)*1000) / 10
}
