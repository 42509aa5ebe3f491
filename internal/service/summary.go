package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/trace"
)

// WeekWindow returns [most recent Sunday 00:00, +7 days) in now's location.
func WeekWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	end = time.Date(y, m, d-int(now.Weekday())+7, 0, 0, 0, 0, now.Location())
	return start, end
}

// ComputeWeeklySummary aggregates trades confirmed in the week containing now.
//
// skippedHitTarget is today's recommendation count minus this week's taken
// count, floored at zero. It does not look at prices.
func ComputeWeeklySummary(trades []models.ConfirmedTrade, totalRecommendations int, now time.Time) models.WeeklySummary {
	var out models.WeeklySummary
	if len(trades) == 0 {
		return out
	}

	start, end := WeekWindow(now)
	for _, t := range trades {
		at := t.ConfirmedAt
		if at.Before(start) || !at.Before(end) {
			continue
		}
		out.TotalTaken++
		if !t.IsClosed() {
			continue
		}
		switch t.Outcome {
		case models.OutcomeWin:
			out.Wins++
		case models.OutcomeLoss:
			out.Losses++
		default:
			out.Neutral++
		}
	}

	if out.TotalTaken > 0 {
		out.WinRate = int(math.Round(float64(out.Wins) / float64(out.TotalTaken) * 100))
	}
	if skipped := totalRecommendations - out.TotalTaken; skipped > 0 {
		out.SkippedHitTarget = skipped
	}
	return out
}

type SummaryService struct {
	Repo repository.Repository
	// Location is the journal timezone; nil means time.Local.
	Location *time.Location
	Clock    func() time.Time
}

func (s *SummaryService) Weekly(ctx context.Context) (summary models.WeeklySummary, err error) {
	ctx, span := trace.StartSpan(ctx, "summary.weekly")
	defer func() { trace.End(span, err) }()

	trades, err := s.Repo.ListConfirmedTrades(ctx, repository.ListConfirmedTradesParams{})
	if err != nil {
		return summary, fmt.Errorf("list confirmed trades: %w", err)
	}
	recs, err := s.Repo.CountRecommendations(ctx)
	if err != nil {
		return summary, fmt.Errorf("count recommendations: %w", err)
	}

	summary = ComputeWeeklySummary(trades, int(recs), s.now())
	span.SetAttributes(
		attribute.Int("summary.total_taken", summary.TotalTaken),
		attribute.Int("summary.win_rate", summary.WinRate),
	)
	return summary, nil
}

func (s *SummaryService) now() time.Time {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc)
}
