// Package memory is an in-process repository.Repository for tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	recs     map[uint64]models.Recommendation
	trades   []models.ConfirmedTrade
	byID     map[uint64]int
	settings map[string]models.SystemSetting
	seq      uint64
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		recs:     map[uint64]models.Recommendation{},
		byID:     map[uint64]int{},
		settings: map[string]models.SystemSetting{},
	}
}

// WithRecommendations seeds the store, replacing any existing recommendations.
func (s *Store) WithRecommendations(items ...models.Recommendation) *Store {
	_, _ = s.ReplaceRecommendations(context.Background(), items)
	return s
}

func (s *Store) ReplaceRecommendations(ctx context.Context, items []models.Recommendation) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := make(map[uint64]struct{}, len(items))
	now := time.Now().UTC()
	for _, it := range items {
		if existing, ok := s.recs[it.ID]; ok {
			it.CreatedAt = existing.CreatedAt
		} else {
			it.CreatedAt = now
		}
		it.UpdatedAt = now
		s.recs[it.ID] = it
		keep[it.ID] = struct{}{}
	}
	var removed int64
	for id := range s.recs {
		if _, ok := keep[id]; !ok {
			delete(s.recs, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *Store) ListRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Recommendation, 0, len(s.recs))
	for _, it := range s.recs {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountRecommendations(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.recs)), nil
}

func (s *Store) InsertConfirmedTrade(ctx context.Context, item *models.ConfirmedTrade) (bool, error) {
	if item == nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[item.ID]; ok {
		return false, nil
	}
	s.seq++
	item.Seq = s.seq
	item.UpdatedAt = time.Now().UTC()
	s.trades = append(s.trades, *item)
	s.byID[item.ID] = len(s.trades) - 1
	return true, nil
}

func (s *Store) GetConfirmedTradeByID(ctx context.Context, id uint64) (*models.ConfirmedTrade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	it := s.trades[idx]
	return &it, nil
}

func (s *Store) ListConfirmedTrades(ctx context.Context, params repository.ListConfirmedTradesParams) ([]models.ConfirmedTrade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ConfirmedTrade, 0, len(s.trades))
	for _, it := range s.trades {
		if matchTrade(it, params) {
			out = append(out, it)
		}
	}
	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []models.ConfirmedTrade{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func (s *Store) CountConfirmedTrades(ctx context.Context, params repository.ListConfirmedTradesParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, it := range s.trades {
		if matchTrade(it, params) {
			n++
		}
	}
	return n, nil
}

func (s *Store) CloseConfirmedTrade(ctx context.Context, id uint64, update repository.CloseUpdate, onlyOpen bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return 0, nil
	}
	it := &s.trades[idx]
	if onlyOpen && it.Status != models.TradeStatusOpen {
		return 0, nil
	}
	closedAt := update.ClosedAt.UTC()
	it.Status = models.TradeStatusClosed
	it.Outcome = update.Outcome
	it.Notes = update.Notes
	it.ClosedAt = &closedAt
	it.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func matchTrade(it models.ConfirmedTrade, params repository.ListConfirmedTradesParams) bool {
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" && it.Status != strings.TrimSpace(*params.Status) {
		return false
	}
	if params.Since != nil && !params.Since.IsZero() && it.ConfirmedAt.Before(*params.Since) {
		return false
	}
	if params.Until != nil && !params.Until.IsZero() && !it.ConfirmedAt.Before(*params.Until) {
		return false
	}
	return true
}

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if item == nil {
		return nil
	}
	key := strings.TrimSpace(item.Key)
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	next := *item
	next.Key = key
	if existing, ok := s.settings[key]; ok {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
	} else {
		next.ID = uint64(len(s.settings) + 1)
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	s.settings[key] = next
	return nil
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.settings[strings.TrimSpace(key)]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *Store) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := ""
	if params.Prefix != nil {
		prefix = strings.TrimSpace(*params.Prefix)
	}
	out := make([]models.SystemSetting, 0, len(s.settings))
	for key, it := range s.settings {
		if strings.HasPrefix(key, prefix) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
