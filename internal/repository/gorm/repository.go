package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ repository.Repository = (*Store)(nil)

// --- recommendations ---------------------------------------------------------

func (s *Store) ReplaceRecommendations(ctx context.Context, items []models.Recommendation) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"symbol",
					"strategy",
					"strike_info",
					"entry",
					"stop",
					"target",
					"expiry",
					"confidence_level",
					"premium",
					"updated_at",
				}),
			}).CreateInBatches(items, 200).Error
			if err != nil {
				return err
			}
		}
		ids := make([]uint64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		var res *gorm.DB
		if len(ids) == 0 {
			res = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Recommendation{})
		} else {
			res = tx.Where("id NOT IN ?", ids).Delete(&models.Recommendation{})
		}
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Recommendation
	err := s.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Recommendation
	if err := s.db.WithContext(ctx).Model(&models.Recommendation{}).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountRecommendations(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recommendation{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --- confirmed trades --------------------------------------------------------

func (s *Store) InsertConfirmedTrade(ctx context.Context, item *models.ConfirmedTrade) (bool, error) {
	if s == nil || s.db == nil || item == nil {
		return false, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) GetConfirmedTradeByID(ctx context.Context, id uint64) (*models.ConfirmedTrade, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.ConfirmedTrade
	err := s.db.WithContext(ctx).
		Model(&models.ConfirmedTrade{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListConfirmedTrades(ctx context.Context, params repository.ListConfirmedTradesParams) ([]models.ConfirmedTrade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.ConfirmedTrade{}), params)
	query = query.Order("seq asc")
	if params.Limit > 0 {
		query = query.Limit(normalizeLimit(params.Limit, 200))
	}
	if offset := normalizeOffset(params.Offset); offset > 0 {
		query = query.Offset(offset)
	}
	var items []models.ConfirmedTrade
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountConfirmedTrades(ctx context.Context, params repository.ListConfirmedTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.ConfirmedTrade{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CloseConfirmedTrade(ctx context.Context, id uint64, update repository.CloseUpdate, onlyOpen bool) (int64, error) {
	if s == nil || s.db == nil || id == 0 {
		return 0, nil
	}
	closedAt := update.ClosedAt.UTC()
	query := s.db.WithContext(ctx).
		Model(&models.ConfirmedTrade{}).
		Where("id = ?", id)
	if onlyOpen {
		query = query.Where("status = ?", models.TradeStatusOpen)
	}
	res := query.Updates(map[string]any{
		"status":     models.TradeStatusClosed,
		"outcome":    update.Outcome,
		"notes":      update.Notes,
		"closed_at":  &closedAt,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func applyTradeFilters(query *gorm.DB, params repository.ListConfirmedTradesParams) *gorm.DB {
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("confirmed_at >= ?", params.Since.UTC())
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("confirmed_at < ?", params.Until.UTC())
	}
	return query
}

// --- system settings ---------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Key = strings.TrimSpace(item.Key)
	if item.Key == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Model(&models.SystemSetting{}).Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.SystemSetting{})
	if params.Prefix != nil && strings.TrimSpace(*params.Prefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.Prefix)+"%")
	}
	limit := normalizeLimit(params.Limit, 500)
	offset := normalizeOffset(params.Offset)
	var items []models.SystemSetting
	if err := query.Order("key asc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
