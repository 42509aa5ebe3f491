package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/trace"
)

// TradeEvent is emitted after every successful lifecycle transition.
type TradeEvent struct {
	Action string
	Trade  models.ConfirmedTrade
}

// TradeService owns the confirm/close lifecycle of confirmed trades.
type TradeService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Flags  *SystemSettingsService
	// Clock defaults to time.Now.
	Clock func() time.Time
	// OnEvent, when set, is called synchronously after confirm and close.
	OnEvent func(ctx context.Context, ev TradeEvent)
}

// ListFilter narrows ListConfirmed. Limit <= 0 means no limit; Since and
// Until bound confirmed_at as [Since, Until).
type ListFilter struct {
	Status string
	Limit  int
	Offset int
	Since  *time.Time
	Until  *time.Time
}

func (f ListFilter) params() repository.ListConfirmedTradesParams {
	params := repository.ListConfirmedTradesParams{
		Limit:  f.Limit,
		Offset: f.Offset,
		Since:  f.Since,
		Until:  f.Until,
	}
	if v := strings.ToLower(strings.TrimSpace(f.Status)); v != "" {
		params.Status = &v
	}
	return params
}

func (s *TradeService) ListConfirmed(ctx context.Context, filter ListFilter) ([]models.ConfirmedTrade, error) {
	items, err := s.Repo.ListConfirmedTrades(ctx, filter.params())
	if err != nil {
		return nil, fmt.Errorf("list confirmed trades: %w", err)
	}
	if items == nil {
		items = []models.ConfirmedTrade{}
	}
	return items, nil
}

// CountConfirmed counts trades matching filter, ignoring Limit and Offset.
func (s *TradeService) CountConfirmed(ctx context.Context, filter ListFilter) (int64, error) {
	params := filter.params()
	params.Limit, params.Offset = 0, 0
	total, err := s.Repo.CountConfirmedTrades(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count confirmed trades: %w", err)
	}
	return total, nil
}

func (s *TradeService) Get(ctx context.Context, id uint64) (*models.ConfirmedTrade, error) {
	item, err := s.Repo.GetConfirmedTradeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get confirmed trade %d: %w", id, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Confirm snapshots recommendation id into a new open trade.
func (s *TradeService) Confirm(ctx context.Context, id uint64) (trade *models.ConfirmedTrade, err error) {
	ctx, span := trace.StartSpan(ctx, "trade.confirm")
	span.SetAttributes(attribute.Int64("trade.id", int64(id)))
	defer func() { trace.End(span, err) }()

	rec, err := s.Repo.GetRecommendationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recommendation %d: %w", id, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	item := models.NewConfirmedTrade(*rec, s.now())
	inserted, err := s.Repo.InsertConfirmedTrade(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("insert confirmed trade %d: %w", id, err)
	}
	if !inserted {
		return nil, ErrAlreadyConfirmed
	}

	if s.Logger != nil {
		s.Logger.Info("trade confirmed",
			zap.Uint64("id", item.ID),
			zap.String("symbol", item.Symbol),
			zap.String("strategy", item.Strategy),
		)
	}
	s.emit(ctx, "trade_confirmed", item)
	return &item, nil
}

// Close moves trade id to closed with the given outcome. An empty outcome
// means neutral. An unknown id is NotFound before the outcome is judged. Re-closing overwrites unless strict close is enabled.
func (s *TradeService) Close(ctx context.Context, id uint64, outcome, notes string) (trade *models.ConfirmedTrade, err error) {
	ctx, span := trace.StartSpan(ctx, "trade.close")
	span.SetAttributes(attribute.Int64("trade.id", int64(id)), attribute.String("trade.outcome", outcome))
	defer func() { trace.End(span, err) }()

	outcome = strings.ToLower(strings.TrimSpace(outcome))
	if outcome == "" {
		outcome = models.OutcomeNeutral
	}
	if !models.ValidOutcome(outcome) {
		// unknown ids report NotFound whatever the payload
		existing, err := s.Repo.GetConfirmedTradeByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get confirmed trade %d: %w", id, err)
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidOutcome
	}

	strict := s.Flags.IsEnabled(ctx, FeatureStrictClose, false)
	update := repository.CloseUpdate{
		Outcome:  outcome,
		Notes:    notes,
		ClosedAt: s.now(),
	}
	n, err := s.Repo.CloseConfirmedTrade(ctx, id, update, strict)
	if err != nil {
		return nil, fmt.Errorf("close trade %d: %w", id, err)
	}
	if n == 0 {
		existing, err := s.Repo.GetConfirmedTradeByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get confirmed trade %d: %w", id, err)
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyClosed
	}

	item, err := s.Repo.GetConfirmedTradeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get confirmed trade %d: %w", id, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if s.Logger != nil {
		s.Logger.Info("trade closed",
			zap.Uint64("id", item.ID),
			zap.String("symbol", item.Symbol),
			zap.String("outcome", item.Outcome),
		)
	}
	s.emit(ctx, "trade_closed", *item)
	return item, nil
}

func (s *TradeService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *TradeService) emit(ctx context.Context, action string, item models.ConfirmedTrade) {
	if s.OnEvent == nil {
		return
	}
	s.OnEvent(ctx, TradeEvent{Action: action, Trade: item})
}
