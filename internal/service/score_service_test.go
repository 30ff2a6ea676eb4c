package service

import (
	"testing"
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

func newTestScoreService() (*ScoreService, *fakePlayerStore, *fakeUserStore, *fakeQuestionStore, *fakeAttemptStore) {
	players := newFakePlayerStore()
	users := newFakeUserStore()
	questions := newFakeQuestionStore()
	attempts := newFakeAttemptStore()
	svc := NewScoreService(players, users, questions, attempts)
	return svc, players, users, questions, attempts
}

func logAttempt(attempts *fakeAttemptStore, userID uuid.UUID, code string, correct bool) {
	attempts.attempts = append(attempts.attempts, models.QuestionAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		QuestionID:  uuid.New(),
		SessionCode: code,
		IsCorrect:   correct,
	})
}

func TestStandingsOrder(t *testing.T) {
	svc, players, users, _, _ := newTestScoreService()

	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	carol := users.add("carol", "carol@example.com")

	players.add(alice.ID, "123456", models.StatusFinished, 3)
	players.add(bob.ID, "123456", models.StatusFinished, 5)
	players.add(carol.ID, "123456", models.StatusFinished, 3)

	standings, err := svc.Standings("123456")
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}

	var got []string
	for _, s := range standings {
		got = append(got, s.UserName)
	}
	want := []string{"bob", "alice", "carol"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (score desc, name asc on ties)", got, want)
		}
	}
}

func TestStandingsAddBaseScoreAndCorrectAnswers(t *testing.T) {
	svc, players, users, _, attempts := newTestScoreService()

	alice := users.add("alice", "alice@example.com")
	players.add(alice.ID, "123456", models.StatusPlaying, 2)

	logAttempt(attempts, alice.ID, "123456", true)
	logAttempt(attempts, alice.ID, "123456", true)
	logAttempt(attempts, alice.ID, "123456", false)

	standings, err := svc.Standings("123456")
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("standings rows = %d, want 1", len(standings))
	}

	row := standings[0]
	if row.CurrentScore != 4 {
		t.Errorf("current score = %d, want 4 (base 2 + 2 correct)", row.CurrentScore)
	}
	if row.CorrectCount != 2 {
		t.Errorf("correct count = %d, want 2", row.CorrectCount)
	}
	if row.Accuracy != 66.7 {
		t.Errorf("accuracy = %v, want 66.7", row.Accuracy)
	}
}

func TestStandingsEmptySession(t *testing.T) {
	svc, _, _, _, _ := newTestScoreService()

	standings, err := svc.Standings("999999")
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 0 {
		t.Errorf("standings = %v, want empty", standings)
	}
}

func TestSessionAccuracy(t *testing.T) {
	svc, _, users, _, attempts := newTestScoreService()
	alice := users.add("alice", "alice@example.com")

	pct, err := svc.SessionAccuracy("123456")
	if err != nil {
		t.Fatalf("SessionAccuracy: %v", err)
	}
	if pct != 0 {
		t.Errorf("accuracy with no attempts = %v, want 0", pct)
	}

	logAttempt(attempts, alice.ID, "123456", true)
	logAttempt(attempts, alice.ID, "123456", false)
	logAttempt(attempts, alice.ID, "123456", false)

	pct, err = svc.SessionAccuracy("123456")
	if err != nil {
		t.Fatalf("SessionAccuracy: %v", err)
	}
	if pct != 33.3 {
		t.Errorf("accuracy = %v, want 33.3", pct)
	}
}

func TestLeaderboardListsOnlyConcludedSessions(t *testing.T) {
	svc, players, users, _, _ := newTestScoreService()

	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")

	ended := time.Now()
	done := players.add(alice.ID, "111111", models.StatusFinished, 1)
	done.EndedAt = &ended
	players.add(bob.ID, "222222", models.StatusPlaying, 0)

	entries, err := svc.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].SessionCode != "111111" {
		t.Errorf("session code = %q, want 111111", entries[0].SessionCode)
	}
	if len(entries[0].Standings) != 1 || entries[0].Standings[0].UserName != "alice" {
		t.Errorf("standings = %+v", entries[0].Standings)
	}
}

func TestSessionReviewGroupsAttemptsByQuestion(t *testing.T) {
	svc, _, users, questions, attempts := newTestScoreService()

	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	q1 := questions.add("first question", "A")
	q2 := questions.add("second question", "B")

	for _, a := range []struct {
		user    uuid.UUID
		q       uuid.UUID
		answer  string
		correct bool
	}{
		{alice.ID, q1.ID, "A", true},
		{bob.ID, q1.ID, "C", false},
		{alice.ID, q2.ID, "B", true},
	} {
		attempts.attempts = append(attempts.attempts, models.QuestionAttempt{
			ID:           uuid.New(),
			UserID:       a.user,
			QuestionID:   a.q,
			SessionCode:  "123456",
			ChosenAnswer: a.answer,
			IsCorrect:    a.correct,
		})
	}

	review, err := svc.SessionReview("123456")
	if err != nil {
		t.Fatalf("SessionReview: %v", err)
	}

	if len(review) != 2 {
		t.Fatalf("review questions = %d, want 2", len(review))
	}
	if review[0].Question.ID != q1.ID || len(review[0].Attempts) != 2 {
		t.Errorf("first group = %+v", review[0])
	}
	if review[0].Attempts[0].UserName != "alice" || !review[0].Attempts[0].IsCorrect {
		t.Errorf("first attempt = %+v", review[0].Attempts[0])
	}
}

func TestSessionReviewSkipsDeletedQuestions(t *testing.T) {
	svc, _, users, questions, attempts := newTestScoreService()

	alice := users.add("alice", "alice@example.com")
	kept := questions.add("kept", "A")

	attempts.attempts = append(attempts.attempts,
		models.QuestionAttempt{ID: uuid.New(), UserID: alice.ID, QuestionID: uuid.New(), SessionCode: "123456", ChosenAnswer: "A"},
		models.QuestionAttempt{ID: uuid.New(), UserID: alice.ID, QuestionID: kept.ID, SessionCode: "123456", ChosenAnswer: "A", IsCorrect: true},
	)

	review, err := svc.SessionReview("123456")
	if err != nil {
		t.Fatalf("SessionReview: %v", err)
	}

	if len(review) != 1 || review[0].Question.ID != kept.ID {
		t.Errorf("review = %+v, want only the surviving question", review)
	}
}
