package service

import (
	"log/slog"
	"time"
)

const (
	staleSessionTimeout = 10 * time.Minute
	cleanupInterval     = 1 * time.Minute
)

// CleanupService reaps abandoned waiting rooms: sessions where everyone is
// still waiting, nobody has joined recently and nobody is connected.
type CleanupService struct {
	players PlayerStore
	hub     Broadcaster
}

func NewCleanupService(players PlayerStore, hub Broadcaster) *CleanupService {
	return &CleanupService{
		players: players,
		hub:     hub,
	}
}

func (s *CleanupService) StartCleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	go func() {
		for range ticker.C {
			s.cleanupStaleSessions()
		}
	}()
	slog.Info("session cleanup routine started")
}

func (s *CleanupService) cleanupStaleSessions() {
	cutoff := time.Now().Add(-staleSessionTimeout)

	codes, err := s.players.StaleWaitingSessions(cutoff)
	if err != nil {
		slog.Error("failed to list stale sessions", "error", err)
		return
	}

	for _, code := range codes {
		if s.hub.SubscriberCount(code) > 0 {
			continue
		}

		removed, err := s.players.PurgeSession(code)
		if err != nil {
			slog.Error("failed to purge stale session", "session_code", code, "error", err)
			continue
		}
		slog.Info("purged stale session", "session_code", code, "players_removed", removed)
	}
}
