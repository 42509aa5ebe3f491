package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

const (
	FeatureLivePrices         = "feature.live_prices"
	FeatureRecommendationSync = "feature.recommendation_sync"
	FeatureStrictClose        = "feature.strict_close"
)

func DefaultFeatureSwitches() map[string]bool {
	return map[string]bool{
		FeatureLivePrices:         true,
		FeatureRecommendationSync: true,
		FeatureStrictClose:        false, // re-closing overwrites by default
	}
}

var featureDescriptions = map[string]string{
	FeatureLivePrices:         "re-anchor recommendations to live quotes",
	FeatureRecommendationSync: "scheduled reload of the recommendation seed file",
	FeatureStrictClose:        "reject closing a trade that is already closed",
}

// Switch is the API view of a feature switch.
type Switch struct {
	Name        string    `json:"name"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SystemSettingsService struct {
	Repo repository.SettingsRepository
}

// EnsureDefaultSwitches writes defaults for switches that have never been
// stored. Existing values are left alone.
func (s *SystemSettingsService) EnsureDefaultSwitches(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	now := time.Now().UTC()
	for key, enabled := range DefaultFeatureSwitches() {
		existing, err := s.Repo.GetSystemSettingByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		raw, _ := json.Marshal(enabled)
		item := &models.SystemSetting{
			Key:         key,
			Value:       datatypes.JSON(raw),
			Description: featureDescriptions[key],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.UpsertSystemSetting(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *SystemSettingsService) IsEnabled(ctx context.Context, key string, fallback bool) bool {
	if s == nil || s.Repo == nil {
		return fallback
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	item, err := s.Repo.GetSystemSettingByKey(ctx, key)
	if err != nil || item == nil || len(item.Value) == 0 {
		return fallback
	}
	var enabled bool
	if err := json.Unmarshal(item.Value, &enabled); err != nil {
		return fallback
	}
	return enabled
}

func (s *SystemSettingsService) SetEnabled(ctx context.Context, key string, enabled bool) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	raw, _ := json.Marshal(enabled)
	item := &models.SystemSetting{
		Key:         key,
		Value:       datatypes.JSON(raw),
		Description: featureDescriptions[key],
		UpdatedAt:   time.Now().UTC(),
	}
	return s.Repo.UpsertSystemSetting(ctx, item)
}

// Switches lists every known switch with its effective value. Stored
// values are read in one pass over the "feature." prefix.
func (s *SystemSettingsService) Switches(ctx context.Context) []Switch {
	stored := map[string]models.SystemSetting{}
	if s != nil && s.Repo != nil {
		prefix := "feature."
		items, err := s.Repo.ListSystemSettings(ctx, repository.ListSystemSettingsParams{Prefix: &prefix})
		if err == nil {
			for _, it := range items {
				stored[it.Key] = it
			}
		}
	}

	defaults := DefaultFeatureSwitches()
	out := make([]Switch, 0, len(defaults))
	for key, def := range defaults {
		sw := Switch{
			Name:        key,
			Enabled:     def,
			Description: featureDescriptions[key],
		}
		if item, ok := stored[key]; ok {
			var enabled bool
			if len(item.Value) > 0 && json.Unmarshal(item.Value, &enabled) == nil {
				sw.Enabled = enabled
			}
			sw.UpdatedAt = item.UpdatedAt
		}
		out = append(out, sw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KnownSwitch reports whether name (with or without the "feature." prefix)
// is a switch and returns its full key.
func KnownSwitch(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if !strings.HasPrefix(name, "feature.") {
		name = "feature." + name
	}
	_, ok := DefaultFeatureSwitches()[name]
	return name, ok
}
