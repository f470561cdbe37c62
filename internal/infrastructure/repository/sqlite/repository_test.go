package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/sqlite"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

const (
	testPoolID int64 = 7
	testSeason       = 2024
)

func openTestDB(t *testing.T) (*postgres.PicksRepository, *postgres.FeatureRepository) {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "pickem.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	poolers := []pickem.Pooler{
		{Name: "A", FavoriteTeam: "BUF"},
		{Name: "B"},
		{Name: "C", FavoriteTeam: "KC"},
	}
	if err := postgres.BootstrapSeed(ctx, db, qb.DialectSQLite, testPoolID, poolers); err != nil {
		t.Fatalf("seed poolers: %v", err)
	}
	// Seeding a populated pool is a no-op.
	if err := postgres.BootstrapSeed(ctx, db, qb.DialectSQLite, testPoolID, poolers); err != nil {
		t.Fatalf("reseed poolers: %v", err)
	}

	return postgres.NewPicksRepository(db, qb.DialectSQLite), postgres.NewFeatureRepository(db, qb.DialectSQLite)
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := sqlite.Open(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pickem.db")

	for i := 0; i < 2; i++ {
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		_ = db.Close()
	}
}

func TestPicksRepositoryPoolers(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTestDB(t)

	poolers, err := repo.ListPoolers(ctx, testPoolID)
	if err != nil {
		t.Fatalf("list poolers: %v", err)
	}
	if len(poolers) != 3 {
		t.Fatalf("expected 3 poolers, got %d", len(poolers))
	}
	if poolers[0].Name != "A" || poolers[0].FavoriteTeam != "BUF" || poolers[1].FavoriteTeam != "" {
		t.Fatalf("unexpected poolers: %+v", poolers)
	}

	other, err := repo.ListPoolers(ctx, testPoolID+1)
	if err != nil {
		t.Fatalf("list other pool: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty pool, got %+v", other)
	}

	if err := repo.UpdateFavoriteTeam(ctx, poolers[1].ID, "NYJ"); err != nil {
		t.Fatalf("update favorite team: %v", err)
	}
	got, ok, err := repo.GetPooler(ctx, poolers[1].ID)
	if err != nil || !ok {
		t.Fatalf("get pooler ok=%v err=%v", ok, err)
	}
	if got.FavoriteTeam != "NYJ" || got.PoolID != testPoolID {
		t.Fatalf("unexpected pooler: %+v", got)
	}

	if _, ok, err := repo.GetPooler(ctx, 9999); err != nil || ok {
		t.Fatalf("expected missing pooler, ok=%v err=%v", ok, err)
	}
}

func TestPicksRepositoryPrimeSaveAndCache(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTestDB(t)

	poolers, err := repo.ListPoolers(ctx, testPoolID)
	if err != nil {
		t.Fatalf("list poolers: %v", err)
	}
	a, b := poolers[0], poolers[1]

	if _, ok, err := repo.CurrentWeek(ctx, testPoolID, testSeason); err != nil || ok {
		t.Fatalf("expected no current week, ok=%v err=%v", ok, err)
	}

	primed, err := repo.PrimePicks(ctx, a.ID, testSeason, 1)
	if err != nil {
		t.Fatalf("prime picks: %v", err)
	}
	if primed.Status != pickem.PrimeStatusPrimed {
		t.Fatalf("expected primed status, got %s", primed.Status)
	}
	again, err := repo.PrimePicks(ctx, a.ID, testSeason, 1)
	if err != nil {
		t.Fatalf("prime picks again: %v", err)
	}
	if again.PickRecordID != primed.PickRecordID {
		t.Fatalf("expected same record, got %d and %d", primed.PickRecordID, again.PickRecordID)
	}

	over := pickem.FeatureOver
	saved, err := repo.SavePicks(ctx, primed.PickRecordID, pickem.Pick{"m1": "BUF", "m2": pickem.NoPick}, &over)
	if err != nil || !saved {
		t.Fatalf("save picks saved=%v err=%v", saved, err)
	}
	resaved, err := repo.SavePicks(ctx, primed.PickRecordID, pickem.Pick{"m1": "MIA"}, nil)
	if err != nil {
		t.Fatalf("resubmit picks: %v", err)
	}
	if resaved {
		t.Fatalf("expected submitted record to reject new picks")
	}
	filled, err := repo.PrimePicks(ctx, a.ID, testSeason, 1)
	if err != nil {
		t.Fatalf("prime filled: %v", err)
	}
	if filled.Status != pickem.PrimeStatusFilled {
		t.Fatalf("expected filled status, got %s", filled.Status)
	}

	records, err := repo.ListWeekPicks(ctx, testPoolID, testSeason, 1)
	if err != nil {
		t.Fatalf("list week picks: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected one record per pooler, got %d", len(records))
	}
	if records[0].PickRecordID == nil || *records[0].PickRecordID != primed.PickRecordID {
		t.Fatalf("unexpected record for A: %+v", records[0])
	}
	if records[0].Picks["m1"] != "BUF" || records[0].FeaturePick == nil || *records[0].FeaturePick != pickem.FeatureOver {
		t.Fatalf("unexpected picks for A: %+v", records[0])
	}
	if records[1].PickRecordID != nil || records[1].Submitted() {
		t.Fatalf("expected B without a record, got %+v", records[1])
	}

	if _, ok, err := repo.GetWeekPicks(ctx, b.ID, testSeason, 1); err != nil || ok {
		t.Fatalf("expected no record for B, ok=%v err=%v", ok, err)
	}

	if err := repo.CacheResult(ctx, primed.PickRecordID, 4, 2); err != nil {
		t.Fatalf("cache result: %v", err)
	}
	if err := repo.CacheResult(ctx, primed.PickRecordID, 9, 9); err != nil {
		t.Fatalf("cache result again: %v", err)
	}
	cached, ok, err := repo.GetWeekPicks(ctx, a.ID, testSeason, 1)
	if err != nil || !ok {
		t.Fatalf("get week picks ok=%v err=%v", ok, err)
	}
	if !cached.IsCached() || *cached.CachedScore != 4 || *cached.CachedFeatureScore != 2 {
		t.Fatalf("expected first cached values to stick, got %+v", cached)
	}

	saved, err = repo.SavePicks(ctx, primed.PickRecordID, pickem.Pick{"m1": "MIA"}, nil)
	if err != nil {
		t.Fatalf("save cached picks: %v", err)
	}
	if saved {
		t.Fatalf("expected cached record to reject new picks")
	}

	if _, err := repo.PrimePicks(ctx, b.ID, testSeason, pickem.WildcardWeek); err != nil {
		t.Fatalf("prime wildcard: %v", err)
	}
	week, ok, err := repo.CurrentWeek(ctx, testPoolID, testSeason)
	if err != nil || !ok {
		t.Fatalf("current week ok=%v err=%v", ok, err)
	}
	if week != pickem.WildcardWeek {
		t.Fatalf("expected wildcard week, got %d", week)
	}
	if _, ok, err := repo.CurrentWeek(ctx, testPoolID, testSeason+1); err != nil || ok {
		t.Fatalf("expected no current week next season, ok=%v err=%v", ok, err)
	}
}

func TestFeatureRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	_, features := openTestDB(t)

	if _, ok, err := features.GetFeature(ctx, testSeason, 3); err != nil || ok {
		t.Fatalf("expected no feature, ok=%v err=%v", ok, err)
	}

	if err := features.UpsertFeature(ctx, testSeason, 3, pickem.FeatureMatch{MatchID: "m1", TargetTotal: 44}); err != nil {
		t.Fatalf("insert feature: %v", err)
	}
	if err := features.UpsertFeature(ctx, testSeason, 3, pickem.FeatureMatch{MatchID: "m2", TargetTotal: 51}); err != nil {
		t.Fatalf("update feature: %v", err)
	}

	got, ok, err := features.GetFeature(ctx, testSeason, 3)
	if err != nil || !ok {
		t.Fatalf("get feature ok=%v err=%v", ok, err)
	}
	if got.MatchID != "m2" || got.TargetTotal != 51 {
		t.Fatalf("unexpected feature: %+v", got)
	}
}
