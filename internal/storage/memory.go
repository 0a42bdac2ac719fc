package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// MemoryStore guarda tudo em mapas protegidos por mutex
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]models.AnalysisRecord
	trends   map[string]models.TrendItem
}

// NewMemoryStore cria um MemoryStore vazio
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]models.AnalysisRecord),
		trends:   make(map[string]models.TrendItem),
	}
}

func (s *MemoryStore) InsertAnalysis(_ context.Context, record *models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *record
	r.Claims = append([]models.Claim(nil), record.Claims...)
	s.analyses[r.ID] = r
	return nil
}

func (s *MemoryStore) GetAnalysis(_ context.Context, id string) (*models.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) FindTrendByFingerprint(_ context.Context, fingerprint string) (*models.TrendItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.trends {
		if item.Fingerprint == fingerprint {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) InsertTrend(_ context.Context, item *models.TrendItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.trends {
		if existing.Fingerprint == item.Fingerprint {
			return ErrDuplicate
		}
	}

	it := *item
	it.SampleClaims = append([]models.Claim(nil), item.SampleClaims...)
	s.trends[it.ID] = it
	return nil
}

func (s *MemoryStore) UpdateTrend(_ context.Context, id string, update models.TrendUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.trends[id]
	if !ok {
		return ErrNotFound
	}
	item.Occurrences = update.Occurrences
	item.ScoreFakeProbability = update.ScoreFakeProbability
	item.LastSeen = update.LastSeen
	s.trends[id] = item
	return nil
}

func (s *MemoryStore) ListTrends(_ context.Context, limit int) ([]models.TrendItem, error) {
	s.mu.RLock()
	items := make([]models.TrendItem, 0, len(s.trends))
	for _, item := range s.trends {
		items = append(items, item)
	}
	s.mu.RUnlock()

	sortTrends(items)
	limit = normalizeLimit(limit)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *MemoryStore) Ping(context.Context) error         { return nil }
func (s *MemoryStore) EnsureSchema(context.Context) error { return nil }
func (s *MemoryStore) Close() error                       { return nil }

func sortTrends(items []models.TrendItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ScoreFakeProbability != items[j].ScoreFakeProbability {
			return items[i].ScoreFakeProbability > items[j].ScoreFakeProbability
		}
		return items[i].LastSeen.After(items[j].LastSeen)
	})
}
