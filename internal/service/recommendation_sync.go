package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// SyncResult reports one seed reload.
type SyncResult struct {
	Loaded   int   `json:"loaded"`
	Upserted int   `json:"upserted"`
	Removed  int64 `json:"removed"`
	Clamped  int   `json:"clamped"`
}

// RecommendationSyncService loads the curated seed file into the
// recommendations table.
type RecommendationSyncService struct {
	Repo     repository.RecommendationRepository
	Flags    *SystemSettingsService
	Logger   *zap.Logger
	SeedPath string
	// PruneMissing removes stored recommendations absent from the file.
	PruneMissing bool
}

type seedRow struct {
	ID              uint64  `json:"id" yaml:"id"`
	Symbol          string  `json:"symbol" yaml:"symbol"`
	Strategy        string  `json:"strategy" yaml:"strategy"`
	StrikeInfo      string  `json:"strike_info" yaml:"strike_info"`
	Entry           float64 `json:"entry" yaml:"entry"`
	Stop            float64 `json:"stop" yaml:"stop"`
	Target          float64 `json:"target" yaml:"target"`
	Expiry          string  `json:"expiry" yaml:"expiry"`
	ConfidenceLevel int     `json:"confidence_level" yaml:"confidence_level"`
	Premium         float64 `json:"premium" yaml:"premium"`
}

// RunScheduled is the cron entry point. It is a no-op while the
// recommendation sync switch is off.
func (s *RecommendationSyncService) RunScheduled(ctx context.Context) {
	if !s.Flags.IsEnabled(ctx, FeatureRecommendationSync, true) {
		if s.Logger != nil {
			s.Logger.Debug("recommendation sync skipped: switch off")
		}
		return
	}
	res, err := s.Sync(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("recommendation sync failed", zap.Error(err))
		}
		return
	}
	if s.Logger != nil {
		s.Logger.Info("recommendation sync done",
			zap.Int("loaded", res.Loaded),
			zap.Int("upserted", res.Upserted),
			zap.Int64("removed", res.Removed),
		)
	}
}

func (s *RecommendationSyncService) Sync(ctx context.Context) (SyncResult, error) {
	var res SyncResult
	path := strings.TrimSpace(s.SeedPath)
	if path == "" {
		return res, fmt.Errorf("%w: seed path is empty", ErrInvalidSeed)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read seed %s: %w", path, err)
	}
	rows, err := decodeSeed(path, raw)
	if err != nil {
		return res, err
	}
	res.Loaded = len(rows)

	items, clamped, err := s.validate(rows)
	if err != nil {
		return res, err
	}
	res.Clamped = clamped

	if !s.PruneMissing {
		items, err = s.keepExisting(ctx, items)
		if err != nil {
			return res, err
		}
	}

	removed, err := s.Repo.ReplaceRecommendations(ctx, items)
	if err != nil {
		return res, fmt.Errorf("replace recommendations: %w", err)
	}
	res.Upserted = len(rows)
	res.Removed = removed
	return res, nil
}

func decodeSeed(path string, raw []byte) ([]seedRow, error) {
	var rows []seedRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	default:
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}
	return rows, nil
}

func (s *RecommendationSyncService) validate(rows []seedRow) ([]models.Recommendation, int, error) {
	seen := make(map[uint64]struct{}, len(rows))
	items := make([]models.Recommendation, 0, len(rows))
	clamped := 0
	for i, r := range rows {
		if r.ID == 0 {
			return nil, 0, fmt.Errorf("%w: row %d has no id", ErrInvalidSeed, i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, 0, fmt.Errorf("%w: duplicate id %d", ErrInvalidSeed, r.ID)
		}
		seen[r.ID] = struct{}{}

		level := r.ConfidenceLevel
		if level < 1 {
			level = 1
		} else if level > 5 {
			level = 5
		}
		if level != r.ConfidenceLevel {
			clamped++
			if s.Logger != nil {
				s.Logger.Warn("confidence level clamped",
					zap.Uint64("id", r.ID),
					zap.Int("from", r.ConfidenceLevel),
					zap.Int("to", level),
				)
			}
		}

		items = append(items, models.Recommendation{
			ID:              r.ID,
			Symbol:          strings.ToUpper(strings.TrimSpace(r.Symbol)),
			Strategy:        strings.TrimSpace(r.Strategy),
			StrikeInfo:      strings.TrimSpace(r.StrikeInfo),
			Entry:           r.Entry,
			Stop:            r.Stop,
			Target:          r.Target,
			Expiry:          strings.TrimSpace(r.Expiry),
			ConfidenceLevel: level,
			Premium:         r.Premium,
		})
	}
	return items, clamped, nil
}

func (s *RecommendationSyncService) keepExisting(ctx context.Context, items []models.Recommendation) ([]models.Recommendation, error) {
	existing, err := s.Repo.ListRecommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	inFile := make(map[uint64]struct{}, len(items))
	for _, it := range items {
		inFile[it.ID] = struct{}{}
	}
	for _, old := range existing {
		if _, ok := inFile[old.ID]; !ok {
			items = append(items, old)
		}
	}
	return items, nil
}
