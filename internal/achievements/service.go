package achievements

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/store"
)

// EventSink persists unlocked achievements. store.EventRepo satisfies it.
type EventSink interface {
	AppendAchievementEvent(ctx context.Context, data store.AchievementEventData) error
}

// Service tracks which achievements are unlocked.
type Service struct {
	catalog []Achievement
	sink    EventSink
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	unlocked map[string]time.Time
}

// NewService creates a Service over the default catalog. sink may be nil.
func NewService(sink EventSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  Catalog(),
		sink:     sink,
		logger:   logger,
		now:      time.Now,
		unlocked: make(map[string]time.Time),
	}
}

// Evaluate unlocks every achievement whose rule stats satisfy and that was
// not unlocked before. Newly unlocked awards are returned in catalog order.
func (s *Service) Evaluate(ctx context.Context, stats Stats, sessionID string) []Award {
	s.mu.Lock()
	var awards []Award
	for _, a := range s.catalog {
		if _, ok := s.unlocked[a.ID]; ok || !a.Rule(stats) {
			continue
		}
		at := s.now()
		s.unlocked[a.ID] = at
		awards = append(awards, Award{Achievement: a, SessionID: sessionID, UnlockedAt: at})
	}
	s.mu.Unlock()

	for _, aw := range awards {
		s.persist(ctx, aw)
	}
	return awards
}

// Unlocked reports whether id has been unlocked.
func (s *Service) Unlocked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.unlocked[id]
	return ok
}

// Load marks ids as unlocked without persisting them. Unknown ids are
// ignored.
func (s *Service) Load(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, ok := Lookup(id); ok {
			if _, seen := s.unlocked[id]; !seen {
				s.unlocked[id] = time.Time{}
			}
		}
	}
}

// IDs returns unlocked achievement IDs in catalog order.
func (s *Service) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, a := range s.catalog {
		if _, ok := s.unlocked[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Board returns the catalog with unlock flags.
func (s *Service) Board() []BoardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]BoardEntry, len(s.catalog))
	for i, a := range s.catalog {
		_, ok := s.unlocked[a.ID]
		entries[i] = BoardEntry{Achievement: a, Unlocked: ok}
	}
	return entries
}

// Count returns the number of unlocked achievements and the catalog size.
func (s *Service) Count() (unlocked, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.unlocked), len(s.catalog)
}

func (s *Service) persist(ctx context.Context, aw Award) {
	if s.sink == nil {
		return
	}
	err := s.sink.AppendAchievementEvent(ctx, store.AchievementEventData{
		AchievementID: aw.Achievement.ID,
		Title:         aw.Achievement.Title,
		SessionID:     aw.SessionID,
	})
	if err != nil {
		s.logger.Warn("persist achievement", zap.String("id", aw.Achievement.ID), zap.Error(err))
	}
}
