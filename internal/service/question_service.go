package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

var validOptions = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// QuestionService manages the question bank and hands out questions
// during play.
type QuestionService struct {
	questions QuestionStore
}

func NewQuestionService(questions QuestionStore) *QuestionService {
	return &QuestionService{
		questions: questions,
	}
}

func (s *QuestionService) CreateQuestion(q *models.Question) (*models.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))

	if q.Text == "" || q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
		return nil, errors.New("question text and all four options are required")
	}
	if !validOptions[q.CorrectOption] {
		return nil, errors.New("correct option must be one of A, B, C, D")
	}

	q.ID = uuid.New()
	if err := s.questions.Create(q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return q, nil
}

func (s *QuestionService) ListQuestions() ([]models.Question, error) {
	return s.questions.GetAll()
}

func (s *QuestionService) GetQuestion(id uuid.UUID) (*models.Question, error) {
	question, err := s.questions.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("fetch question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

// RandomQuestion picks the next question to present. Selection is
// uniform over the whole bank; an empty bank is ErrQuestionNotFound.
func (s *QuestionService) RandomQuestion() (*models.Question, error) {
	question, err := s.questions.GetRandom()
	if err != nil {
		return nil, fmt.Errorf("pick question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

// DeleteQuestion removes the question; the store cascades its attempts.
func (s *QuestionService) DeleteQuestion(id uuid.UUID) error {
	return s.questions.Delete(id)
}
