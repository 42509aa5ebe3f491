package gormrepository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"

	"tradejournal/internal/config"
	"tradejournal/internal/db"
	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(config.DBConfig{
		Driver:       db.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if err := db.AutoMigrate(conn); err != nil {
		t.Skipf("sqlite migrate failed: %v", err)
	}
	return New(conn.Gorm)
}

func rec(id uint64, symbol string) models.Recommendation {
	return models.Recommendation{ID: id, Symbol: symbol, Entry: 100, Stop: 90, Target: 120, ConfidenceLevel: 3}
}

func TestReplaceRecommendations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceRecommendations(ctx, []models.Recommendation{rec(1, "AAPL"), rec(2, "MSFT"), rec(3, "TSLA")}); err != nil {
		t.Fatalf("err=%v", err)
	}
	updated := rec(2, "MSFT")
	updated.Entry = 410
	removed, err := s.ReplaceRecommendations(ctx, []models.Recommendation{rec(1, "AAPL"), updated})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if removed != 1 {
		t.Fatalf("removed=%d want 1", removed)
	}
	items, _ := s.ListRecommendations(ctx)
	if len(items) != 2 || items[1].Entry != 410 {
		t.Fatalf("items=%+v", items)
	}
	if got, _ := s.GetRecommendationByID(ctx, 3); got != nil {
		t.Fatalf("recommendation 3 not removed")
	}

	removed, err = s.ReplaceRecommendations(ctx, nil)
	if err != nil || removed != 2 {
		t.Fatalf("removed=%d err=%v", removed, err)
	}
	if n, _ := s.CountRecommendations(ctx); n != 0 {
		t.Fatalf("count=%d want 0", n)
	}
}

func TestConfirmedTradeLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	confirmedAt := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)

	for _, id := range []uint64{5, 2, 9} {
		item := models.NewConfirmedTrade(rec(id, "AAPL"), confirmedAt)
		ok, err := s.InsertConfirmedTrade(ctx, &item)
		if err != nil || !ok {
			t.Fatalf("insert %d ok=%v err=%v", id, ok, err)
		}
	}
	dup := models.NewConfirmedTrade(rec(2, "AAPL"), confirmedAt)
	ok, err := s.InsertConfirmedTrade(ctx, &dup)
	if err != nil || ok {
		t.Fatalf("duplicate insert ok=%v err=%v", ok, err)
	}

	items, err := s.ListConfirmedTrades(ctx, repository.ListConfirmedTradesParams{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(items) != 3 || items[0].ID != 5 || items[1].ID != 2 || items[2].ID != 9 {
		t.Fatalf("order=%+v", items)
	}
	if !items[0].ConfirmedAt.Equal(confirmedAt) || items[0].ClosedAt != nil {
		t.Fatalf("first=%+v", items[0])
	}

	closedAt := confirmedAt.Add(time.Hour)
	n, err := s.CloseConfirmedTrade(ctx, 2, repository.CloseUpdate{Outcome: models.OutcomeWin, Notes: "tp hit", ClosedAt: closedAt}, false)
	if err != nil || n != 1 {
		t.Fatalf("close n=%d err=%v", n, err)
	}
	got, _ := s.GetConfirmedTradeByID(ctx, 2)
	if got.Status != models.TradeStatusClosed || got.Outcome != models.OutcomeWin || got.Notes != "tp hit" {
		t.Fatalf("closed=%+v", got)
	}
	if got.ClosedAt == nil || !got.ClosedAt.Equal(closedAt) {
		t.Fatalf("closedAt=%v want %v", got.ClosedAt, closedAt)
	}

	n, _ = s.CloseConfirmedTrade(ctx, 2, repository.CloseUpdate{Outcome: models.OutcomeLoss, ClosedAt: closedAt}, true)
	if n != 0 {
		t.Fatalf("guarded re-close n=%d want 0", n)
	}
	n, _ = s.CloseConfirmedTrade(ctx, 77, repository.CloseUpdate{Outcome: models.OutcomeLoss, ClosedAt: closedAt}, false)
	if n != 0 {
		t.Fatalf("missing close n=%d want 0", n)
	}

	status := models.TradeStatusOpen
	open, _ := s.ListConfirmedTrades(ctx, repository.ListConfirmedTradesParams{Status: &status})
	if len(open) != 2 {
		t.Fatalf("open=%d want 2", len(open))
	}
	total, _ := s.CountConfirmedTrades(ctx, repository.ListConfirmedTradesParams{})
	if total != 3 {
		t.Fatalf("total=%d want 3", total)
	}
}

func TestConcurrentCloseDifferentIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ids := []uint64{1, 2, 3, 4, 5, 6}
	for _, id := range ids {
		item := models.NewConfirmedTrade(rec(id, "AAPL"), time.Now())
		if _, err := s.InsertConfirmedTrade(ctx, &item); err != nil {
			t.Fatalf("insert err=%v", err)
		}
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			if _, err := s.CloseConfirmedTrade(ctx, id, repository.CloseUpdate{Outcome: models.OutcomeLoss, ClosedAt: time.Now()}, false); err != nil {
				t.Errorf("close %d err=%v", id, err)
			}
		}(id)
	}
	wg.Wait()

	status := models.TradeStatusClosed
	closed, _ := s.CountConfirmedTrades(ctx, repository.ListConfirmedTradesParams{Status: &status})
	if closed != int64(len(ids)) {
		t.Fatalf("closed=%d want %d", closed, len(ids))
	}
}

func TestSystemSettingsUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertSystemSetting(ctx, &models.SystemSetting{Key: "feature.strict_close", Value: datatypes.JSON(`false`)}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := s.UpsertSystemSetting(ctx, &models.SystemSetting{Key: "feature.strict_close", Value: datatypes.JSON(`true`)}); err != nil {
		t.Fatalf("err=%v", err)
	}
	got, err := s.GetSystemSettingByKey(ctx, "feature.strict_close")
	if err != nil || got == nil {
		t.Fatalf("got=%v err=%v", got, err)
	}
	if string(got.Value) != "true" {
		t.Fatalf("value=%s want true", got.Value)
	}
	prefix := "feature."
	list, _ := s.ListSystemSettings(ctx, repository.ListSystemSettingsParams{Prefix: &prefix})
	if len(list) != 1 {
		t.Fatalf("len=%d want 1", len(list))
	}
}

func TestListConfirmedTradesWindowAndPaging(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	for i, id := range []uint64{10, 20, 30, 40} {
		item := models.NewConfirmedTrade(rec(id, "AAPL"), base.Add(time.Duration(i)*24*time.Hour))
		if _, err := s.InsertConfirmedTrade(ctx, &item); err != nil {
			t.Fatalf("insert err=%v", err)
		}
	}

	since := base.Add(24 * time.Hour)
	until := base.Add(3 * 24 * time.Hour)
	window := repository.ListConfirmedTradesParams{Since: &since, Until: &until}
	items, err := s.ListConfirmedTrades(ctx, window)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(items) != 2 || items[0].ID != 20 || items[1].ID != 30 {
		t.Fatalf("window=%+v", items)
	}
	if n, _ := s.CountConfirmedTrades(ctx, window); n != 2 {
		t.Fatalf("window count=%d want 2", n)
	}

	items, _ = s.ListConfirmedTrades(ctx, repository.ListConfirmedTradesParams{Limit: 2, Offset: 1})
	if len(items) != 2 || items[0].ID != 20 || items[1].ID != 30 {
		t.Fatalf("page=%+v", items)
	}
}
