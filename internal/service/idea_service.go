package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradejournal/internal/client/quotes"
	"tradejournal/internal/models"
	"tradejournal/internal/pricing"
	"tradejournal/internal/repository"
)

// IdeaService serves the day's recommendations, re-anchored to live prices
// when quotes are available.
type IdeaService struct {
	Repo   repository.RecommendationRepository
	Quotes quotes.Source
	Flags  *SystemSettingsService
	Logger *zap.Logger
}

func (s *IdeaService) List(ctx context.Context) ([]models.RecommendationView, error) {
	recs, err := s.Repo.ListRecommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	prices := s.livePrices(ctx, recs)
	out := make([]models.RecommendationView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, applyLivePrice(rec, prices))
	}
	return out, nil
}

func (s *IdeaService) livePrices(ctx context.Context, recs []models.Recommendation) map[string]float64 {
	if s.Quotes == nil || len(recs) == 0 {
		return map[string]float64{}
	}
	if !s.Flags.IsEnabled(ctx, FeatureLivePrices, true) {
		return map[string]float64{}
	}
	symbols := make([]string, 0, len(recs))
	for _, rec := range recs {
		symbols = append(symbols, rec.Symbol)
	}
	res := s.Quotes.Quotes(ctx, symbols)
	if res.Err != nil && s.Logger != nil {
		s.Logger.Warn("live prices unavailable", zap.Error(res.Err))
	}
	return res.PricesOrEmpty()
}

func applyLivePrice(rec models.Recommendation, prices map[string]float64) models.RecommendationView {
	view := models.RecommendationView{Recommendation: rec}
	live, ok := prices[strings.ToUpper(strings.TrimSpace(rec.Symbol))]
	if !ok {
		return view
	}
	levels, ok := pricing.Reanchor(pricing.Levels{Entry: rec.Entry, Stop: rec.Stop, Target: rec.Target}, live)
	if !ok {
		return view
	}
	view.Entry = levels.Entry
	view.Stop = levels.Stop
	view.Target = levels.Target
	current := pricing.Round2(live)
	view.CurrentPrice = &current
	return view
}
