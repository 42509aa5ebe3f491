package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tradejournal/internal/repository/memory"
)

func writeSeed(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestRecommendationSync_JSONReplacesSet(t *testing.T) {
	store := memory.New().WithRecommendations(testRecommendation(9, "OLD"))
	path := writeSeed(t, "trades.json", `[
		{"id":1,"symbol":"aapl","strategy":"covered call","strike_info":"200C","entry":190.5,"stop":185,"target":200,"expiry":"2026-10-23","confidence_level":4,"premium":2.1},
		{"id":2,"symbol":"MSFT","entry":400,"stop":390,"target":420,"confidence_level":9}
	]`)
	svc := &RecommendationSyncService{Repo: store, SeedPath: path, PruneMissing: true}

	res, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Loaded != 2 || res.Upserted != 2 || res.Removed != 1 || res.Clamped != 1 {
		t.Fatalf("res=%+v", res)
	}
	recs, _ := store.ListRecommendations(context.Background())
	if len(recs) != 2 {
		t.Fatalf("len=%d want 2", len(recs))
	}
	if recs[0].Symbol != "AAPL" || recs[0].StrikeInfo != "200C" || recs[0].Premium != 2.1 {
		t.Fatalf("rec=%+v", recs[0])
	}
	if recs[1].ConfidenceLevel != 5 {
		t.Fatalf("confidence=%d want 5", recs[1].ConfidenceLevel)
	}
}

func TestRecommendationSync_YAML(t *testing.T) {
	store := memory.New()
	path := writeSeed(t, "trades.yaml", `
- id: 3
  symbol: TSLA
  strategy: long put
  strike_info: 240P
  entry: 250
  stop: 260
  target: 230
  expiry: "2026-10-30"
  confidence_level: 0
  premium: 4.5
`)
	svc := &RecommendationSyncService{Repo: store, SeedPath: path, PruneMissing: true}
	res, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Loaded != 1 || res.Clamped != 1 {
		t.Fatalf("res=%+v", res)
	}
	rec, _ := store.GetRecommendationByID(context.Background(), 3)
	if rec == nil || rec.StrikeInfo != "240P" || rec.ConfidenceLevel != 1 || rec.Expiry != "2026-10-30" {
		t.Fatalf("rec=%+v", rec)
	}
}

func TestRecommendationSync_KeepsMissingWithoutPrune(t *testing.T) {
	store := memory.New().WithRecommendations(testRecommendation(9, "OLD"))
	path := writeSeed(t, "trades.json", `[{"id":1,"symbol":"AAPL","confidence_level":3}]`)
	svc := &RecommendationSyncService{Repo: store, SeedPath: path}

	res, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Removed != 0 {
		t.Fatalf("removed=%d want 0", res.Removed)
	}
	n, _ := store.CountRecommendations(context.Background())
	if n != 2 {
		t.Fatalf("count=%d want 2", n)
	}
}

func TestRecommendationSync_InvalidSeeds(t *testing.T) {
	cases := map[string]string{
		"missing id":   `[{"symbol":"AAPL"}]`,
		"duplicate id": `[{"id":1,"symbol":"AAPL"},{"id":1,"symbol":"MSFT"}]`,
		"not an array": `{"id":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.New().WithRecommendations(testRecommendation(9, "OLD"))
			svc := &RecommendationSyncService{Repo: store, SeedPath: writeSeed(t, "trades.json", body), PruneMissing: true}
			_, err := svc.Sync(context.Background())
			if !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("err=%v want ErrInvalidSeed", err)
			}
			n, _ := store.CountRecommendations(context.Background())
			if n != 1 {
				t.Fatalf("store changed: count=%d", n)
			}
		})
	}
}

func TestRecommendationSync_MissingFile(t *testing.T) {
	svc := &RecommendationSyncService{Repo: memory.New(), SeedPath: filepath.Join(t.TempDir(), "nope.json")}
	if _, err := svc.Sync(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecommendationSync_ScheduledRespectsSwitch(t *testing.T) {
	store := memory.New()
	flags := &SystemSettingsService{Repo: store}
	path := writeSeed(t, "trades.json", `[{"id":1,"symbol":"AAPL","confidence_level":3}]`)
	svc := &RecommendationSyncService{Repo: store, Flags: flags, SeedPath: path, PruneMissing: true}

	_ = flags.SetEnabled(context.Background(), FeatureRecommendationSync, false)
	svc.RunScheduled(context.Background())
	if n, _ := store.CountRecommendations(context.Background()); n != 0 {
		t.Fatalf("count=%d want 0", n)
	}

	_ = flags.SetEnabled(context.Background(), FeatureRecommendationSync, true)
	svc.RunScheduled(context.Background())
	if n, _ := store.CountRecommendations(context.Background()); n != 1 {
		t.Fatalf("count=%d want 1", n)
	}
}
