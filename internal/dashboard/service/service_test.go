package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/leads/scoring"
	"leadpilot_backend/platform/logger"
)

func seedLeads(t *testing.T, repo *repository.Memory) {
	t.Helper()
	ctx := context.Background()

	seed := []repository.CreateParams{
		{
			Name: "Hyatt Berlin", BusinessType: "hotel", Email: "a@b.com", Phone: "+4930123",
			Website: "https://x.de", Location: "Berlin Mitte", Status: domain.StatusConverted,
			Verified: true, RevenueEstimate: 1_200_000, Source: "manual",
		},
		{
			Name: "Tech GmbH", BusinessType: "software", Email: "x@y.de",
			Location: "Hamburg", Status: domain.StatusNew, Source: "google_maps",
		},
		{Name: "Sparse Lead", Status: domain.StatusNew, Source: "google_maps"},
	}
	for _, params := range seed {
		if _, err := repo.Create(ctx, params); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestMetricsWithoutCache(t *testing.T) {
	repo := repository.NewMemory()
	seedLeads(t, repo)
	svc := New(repo, nil, time.Minute, logger.New("test"))

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	if metrics.TotalLeads != 3 {
		t.Fatalf("total leads = %d, want 3", metrics.TotalLeads)
	}
	if metrics.HotLeads+metrics.WarmLeads+metrics.ColdLeads > metrics.TotalLeads {
		t.Fatalf("category counts exceed total: %+v", metrics)
	}
	if metrics.ConversionRate <= 33 || metrics.ConversionRate >= 34 {
		t.Fatalf("conversion rate = %v, want ~33.3 (1 of 3 converted)", metrics.ConversionRate)
	}
	// One estimated lead plus two defaults.
	if metrics.PipelineValue != 1_200_000+2*5000 {
		t.Fatalf("pipeline value = %v", metrics.PipelineValue)
	}
	if len(metrics.TopSources) == 0 || metrics.TopSources[0].Source != "google_maps" {
		t.Fatalf("top sources = %+v, want google_maps first", metrics.TopSources)
	}
	if metrics.ActivitiesCompleted < 50 || metrics.ActivitiesCompleted >= 150 {
		t.Fatalf("activities completed out of range: %d", metrics.ActivitiesCompleted)
	}
	if metrics.MonthlyGrowth < -5 || metrics.MonthlyGrowth >= 15 {
		t.Fatalf("monthly growth out of range: %v", metrics.MonthlyGrowth)
	}
}

func TestMetricsCountsAgreeWithCategorization(t *testing.T) {
	repo := repository.NewMemory()
	seedLeads(t, repo)
	svc := New(repo, nil, time.Minute, logger.New("test"))

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	leads, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	now := time.Now()
	hot, warm, cold := 0, 0, 0
	for _, lead := range leads {
		switch scoring.CategorizeLeadByScore(scoring.CalculateLeadScoreAt(lead, now)) {
		case scoring.Hot:
			hot++
		case scoring.Warm:
			warm++
		case scoring.Cold:
			cold++
		}
	}

	if metrics.HotLeads != hot || metrics.WarmLeads != warm || metrics.ColdLeads != cold {
		t.Fatalf("dashboard counts (%d/%d/%d) disagree with categorization (%d/%d/%d)",
			metrics.HotLeads, metrics.WarmLeads, metrics.ColdLeads, hot, warm, cold)
	}
}

func TestStatsDistributions(t *testing.T) {
	repo := repository.NewMemory()
	seedLeads(t, repo)
	svc := New(repo, nil, time.Minute, logger.New("test"))

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByStatus["new"] != 2 || stats.ByStatus["converted"] != 1 {
		t.Fatalf("by status = %v", stats.ByStatus)
	}
	if stats.ByBusinessType["unknown"] != 1 {
		t.Fatalf("by business type = %v, want one unknown", stats.ByBusinessType)
	}

	categoryTotal := 0
	for _, count := range stats.ByCategory {
		categoryTotal += count
	}
	if categoryTotal != stats.Total {
		t.Fatalf("category counts %v do not cover all %d leads", stats.ByCategory, stats.Total)
	}
}

func TestMetricsCacheHitAndInvalidation(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := repository.NewMemory()
	seedLeads(t, repo)
	svc := New(repo, cache, time.Minute, logger.New("test"))
	ctx := context.Background()

	first, err := svc.Metrics(ctx)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !mr.Exists(metricsCacheKey) {
		t.Fatal("metrics were not cached")
	}

	// A new lead must not show up while the cache entry is warm.
	if _, err := repo.Create(ctx, repository.CreateParams{Name: "Late Lead", Status: domain.StatusNew, Source: "manual"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := svc.Metrics(ctx)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if second.TotalLeads != first.TotalLeads {
		t.Fatalf("cache miss: total changed from %d to %d", first.TotalLeads, second.TotalLeads)
	}

	svc.Invalidate(ctx)
	if mr.Exists(metricsCacheKey) {
		t.Fatal("invalidate left the metrics cache entry")
	}

	third, err := svc.Metrics(ctx)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if third.TotalLeads != first.TotalLeads+1 {
		t.Fatalf("total after invalidation = %d, want %d", third.TotalLeads, first.TotalLeads+1)
	}
}

func TestMetricsSurvivesRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := repository.NewMemory()
	seedLeads(t, repo)
	svc := New(repo, cache, time.Minute, logger.New("test"))

	mr.Close()

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics with redis down: %v", err)
	}
	if metrics.TotalLeads != 3 {
		t.Fatalf("total leads = %d, want 3", metrics.TotalLeads)
	}
}
