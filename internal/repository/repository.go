package repository

import (
	"context"
	"time"

	"tradejournal/internal/models"
)

type RecommendationRepository interface {
	// ReplaceRecommendations upserts items and deletes every stored row whose
	// id is not among them. It returns the number of deleted rows.
	ReplaceRecommendations(ctx context.Context, items []models.Recommendation) (int64, error)
	GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error)
	ListRecommendations(ctx context.Context) ([]models.Recommendation, error)
	CountRecommendations(ctx context.Context) (int64, error)
}

type TradeRepository interface {
	// InsertConfirmedTrade inserts item unless a trade with the same id
	// exists. inserted is false when the id was already taken.
	InsertConfirmedTrade(ctx context.Context, item *models.ConfirmedTrade) (inserted bool, err error)
	GetConfirmedTradeByID(ctx context.Context, id uint64) (*models.ConfirmedTrade, error)
	ListConfirmedTrades(ctx context.Context, params ListConfirmedTradesParams) ([]models.ConfirmedTrade, error)
	CountConfirmedTrades(ctx context.Context, params ListConfirmedTradesParams) (int64, error)
	// CloseConfirmedTrade applies update to the trade with the given id and
	// returns the affected row count. With onlyOpen set, closed trades are
	// left untouched.
	CloseConfirmedTrade(ctx context.Context, id uint64, update CloseUpdate, onlyOpen bool) (int64, error)
}

type SettingsRepository interface {
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context, params ListSystemSettingsParams) ([]models.SystemSetting, error)
}

// Repository is the storage surface of the journal service.
type Repository interface {
	RecommendationRepository
	TradeRepository
	SettingsRepository
}

type CloseUpdate struct {
	Outcome  string
	Notes    string
	ClosedAt time.Time
}

// ListConfirmedTradesParams filters confirmed trades. Results are always in
// insertion order; Limit <= 0 means no limit.
type ListConfirmedTradesParams struct {
	Limit  int
	Offset int
	Status *string
	Since  *time.Time
	Until  *time.Time
}

type ListSystemSettingsParams struct {
	Limit  int
	Offset int
	Prefix *string
}
