package service

import (
	"errors"
	"testing"

	"github.com/Jaden827827/Quizz-game/internal/models"
)

func TestCreateQuestion(t *testing.T) {
	questions := newFakeQuestionStore()
	svc := NewQuestionService(questions)

	created, err := svc.CreateQuestion(&models.Question{
		Text:          "  What is 2+2?  ",
		OptionA:       "3",
		OptionB:       "4",
		OptionC:       "5",
		OptionD:       "6",
		CorrectOption: "b",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if created.Text != "What is 2+2?" {
		t.Errorf("text = %q, want trimmed", created.Text)
	}
	if created.CorrectOption != "B" {
		t.Errorf("correct option = %q, want normalized %q", created.CorrectOption, "B")
	}

	stored, err := svc.GetQuestion(created.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if stored.Text != created.Text {
		t.Errorf("stored text = %q", stored.Text)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	questions := newFakeQuestionStore()
	svc := NewQuestionService(questions)

	tests := []struct {
		name     string
		question models.Question
	}{
		{"missing text", models.Question{OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "A"}},
		{"missing option", models.Question{Text: "q", OptionA: "a", OptionB: "b", OptionC: "c", CorrectOption: "A"}},
		{"invalid correct option", models.Question{Text: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.question
			if _, err := svc.CreateQuestion(&q); err == nil {
				t.Error("CreateQuestion succeeded, want validation error")
			}
		})
	}
}

func TestRandomQuestionEmptyBank(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionStore())

	if _, err := svc.RandomQuestion(); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("error = %v, want %v", err, ErrQuestionNotFound)
	}
}
