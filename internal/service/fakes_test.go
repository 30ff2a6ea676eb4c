package service

import (
	"time"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/google/uuid"
)

// In-memory stores so the game rules can be exercised without a database.
// Lookups follow the store contract: nil, nil for an absent row.

type fakePlayerStore struct {
	players map[uuid.UUID]*models.Player
}

func newFakePlayerStore() *fakePlayerStore {
	return &fakePlayerStore{players: make(map[uuid.UUID]*models.Player)}
}

func (f *fakePlayerStore) add(userID uuid.UUID, code string, status int, baseScore int) *models.Player {
	p := &models.Player{
		ID:          uuid.New(),
		UserID:      userID,
		SessionCode: code,
		Status:      status,
		BaseScore:   baseScore,
		JoinedAt:    time.Now(),
	}
	f.players[p.ID] = p
	return p
}

func (f *fakePlayerStore) GetMembership(userID uuid.UUID, code string) (*models.Player, error) {
	for _, p := range f.players {
		if p.UserID == userID && p.SessionCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlayerStore) stats(code string) models.SessionStats {
	var s models.SessionStats
	for _, p := range f.players {
		if p.SessionCode != code {
			continue
		}
		s.Total++
		switch p.Status {
		case models.StatusWaiting:
			s.Waiting++
		case models.StatusPlaying:
			s.Playing++
		case models.StatusFinished:
			s.Finished++
		}
		if p.Status > s.MaxStatus {
			s.MaxStatus = p.Status
		}
	}
	return s
}

func (f *fakePlayerStore) SessionStats(code string) (models.SessionStats, error) {
	return f.stats(code), nil
}

func (f *fakePlayerStore) Admit(player *models.Player, allow func(models.SessionStats) error) error {
	if err := allow(f.stats(player.SessionCode)); err != nil {
		return err
	}
	cp := *player
	f.players[cp.ID] = &cp
	return nil
}

func (f *fakePlayerStore) StartGame(code string) (int64, error) {
	var affected int64
	for _, p := range f.players {
		if p.SessionCode == code && p.Status == models.StatusWaiting {
			p.Status = models.StatusPlaying
			affected++
		}
	}
	return affected, nil
}

func (f *fakePlayerStore) EndGame(code string, endedAt time.Time) (int64, error) {
	var affected int64
	for _, p := range f.players {
		if p.SessionCode == code && p.Status == models.StatusPlaying {
			p.Status = models.StatusFinished
			t := endedAt
			p.EndedAt = &t
			affected++
		}
	}
	return affected, nil
}

func (f *fakePlayerStore) AddBonus(userID uuid.UUID, code string, delta int) (int64, error) {
	for _, p := range f.players {
		if p.UserID == userID && p.SessionCode == code {
			p.BaseScore += delta
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakePlayerStore) Remove(userID uuid.UUID, code string) (bool, error) {
	for id, p := range f.players {
		if p.UserID == userID && p.SessionCode == code {
			delete(f.players, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlayerStore) ListBySession(code string) ([]models.Player, error) {
	var out []models.Player
	for _, p := range f.players {
		if p.SessionCode == code {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlayerStore) ActiveSessionCodes() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.players {
		if p.Status != models.StatusFinished && !seen[p.SessionCode] {
			seen[p.SessionCode] = true
			out = append(out, p.SessionCode)
		}
	}
	return out, nil
}

func (f *fakePlayerStore) FinishedSessions() ([]models.FinishedSession, error) {
	var out []models.FinishedSession
	for _, code := range f.codes() {
		s := f.stats(code)
		if !s.AllFinished() {
			continue
		}
		var latest *time.Time
		for _, p := range f.players {
			if p.SessionCode == code && p.EndedAt != nil {
				if latest == nil || p.EndedAt.After(*latest) {
					latest = p.EndedAt
				}
			}
		}
		out = append(out, models.FinishedSession{SessionCode: code, EndedAt: latest})
	}
	return out, nil
}

func (f *fakePlayerStore) StaleWaitingSessions(cutoff time.Time) ([]string, error) {
	var out []string
	for _, code := range f.codes() {
		stale := true
		for _, p := range f.players {
			if p.SessionCode != code {
				continue
			}
			if p.Status != models.StatusWaiting || p.JoinedAt.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			out = append(out, code)
		}
	}
	return out, nil
}

func (f *fakePlayerStore) PurgeSession(code string) (int64, error) {
	var removed int64
	for id, p := range f.players {
		if p.SessionCode == code {
			delete(f.players, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakePlayerStore) codes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.players {
		if !seen[p.SessionCode] {
			seen[p.SessionCode] = true
			out = append(out, p.SessionCode)
		}
	}
	return out
}

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) add(name, email string) *models.User {
	u := &models.User{ID: uuid.New(), Name: name, Email: email}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(user *models.User) error {
	cp := *user
	f.users[cp.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByIDs(ids []uuid.UUID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Delete(id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type fakeQuestionStore struct {
	questions map[uuid.UUID]*models.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[uuid.UUID]*models.Question)}
}

func (f *fakeQuestionStore) add(text, correct string) *models.Question {
	q := &models.Question{
		ID:            uuid.New(),
		Text:          text,
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: correct,
	}
	f.questions[q.ID] = q
	return q
}

func (f *fakeQuestionStore) Create(question *models.Question) error {
	cp := *question
	f.questions[cp.ID] = &cp
	return nil
}

func (f *fakeQuestionStore) GetByID(id uuid.UUID) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestionStore) GetAll() ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuestionStore) GetRandom() (*models.Question, error) {
	for _, q := range f.questions {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeQuestionStore) Delete(id uuid.UUID) error {
	delete(f.questions, id)
	return nil
}

type fakeAttemptStore struct {
	attempts []models.QuestionAttempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{}
}

func (f *fakeAttemptStore) Create(attempt *models.QuestionAttempt) error {
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptStore) CorrectCounts(code string) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, a := range f.attempts {
		if a.SessionCode == code && a.IsCorrect {
			counts[a.UserID]++
		}
	}
	return counts, nil
}

func (f *fakeAttemptStore) CountBySession(code string) (int64, error) {
	var n int64
	for _, a := range f.attempts {
		if a.SessionCode == code {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptStore) ListBySession(code string) ([]models.QuestionAttempt, error) {
	var out []models.QuestionAttempt
	for _, a := range f.attempts {
		if a.SessionCode == code {
			out = append(out, a)
		}
	}
	return out, nil
}

// failingUserStore and failingQuestionStore simulate an unreachable
// database on single-row lookups.

type failingUserStore struct {
	UserStore
	err error
}

func (f failingUserStore) GetByID(uuid.UUID) (*models.User, error) {
	return nil, f.err
}

type failingQuestionStore struct {
	QuestionStore
	err error
}

func (f failingQuestionStore) GetByID(uuid.UUID) (*models.Question, error) {
	return nil, f.err
}

type publishedEvent struct {
	SessionCode string
	Type        string
	Payload     interface{}
}

type fakeHub struct {
	events      []publishedEvent
	subscribers map[string]int
}

func newFakeHub() *fakeHub {
	return &fakeHub{subscribers: make(map[string]int)}
}

func (f *fakeHub) Publish(code string, eventType string, payload interface{}) {
	f.events = append(f.events, publishedEvent{SessionCode: code, Type: eventType, Payload: payload})
}

func (f *fakeHub) SubscriberCount(code string) int {
	return f.subscribers[code]
}

func (f *fakeHub) eventTypes() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
