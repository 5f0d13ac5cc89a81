// Package service computes dashboard metrics over the lead store.
package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"leadpilot_backend/internal/dashboard/transport"
	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/leads/scoring"
	"leadpilot_backend/platform/logger"
)

const (
	metricsCacheKey = "dashboard:metrics"
	statsCacheKey   = "dashboard:stats"

	// Leads without a revenue estimate count at this default.
	defaultPipelineEstimate = 5000
)

// Service computes dashboard metrics with a Redis cache-aside layer.
// The cache client may be nil; Redis failures degrade to uncached
// computation, never to request failure.
type Service struct {
	repo  repository.Repository
	cache *redis.Client
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

// New creates a new dashboard service. cache may be nil to disable caching.
func New(repo repository.Repository, cache *redis.Client, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Metrics returns the dashboard overview, cached for the configured TTL.
// The activitiesCompleted and monthlyGrowth values are simulated; they
// never feed back into lead scores.
func (s *Service) Metrics(ctx context.Context) (transport.MetricsResponse, error) {
	var cached transport.MetricsResponse
	if s.fromCache(ctx, metricsCacheKey, &cached) {
		return cached, nil
	}

	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return transport.MetricsResponse{}, err
	}

	now := s.now()
	metrics := transport.MetricsResponse{
		ActivitiesCompleted: rand.Intn(100) + 50,
		MonthlyGrowth:       rand.Float64()*20 - 5,
	}

	scoreSum := 0
	converted := 0
	sourceCount := map[string]int{}

	for _, lead := range leads {
		score := scoring.CalculateLeadScoreAt(lead, now)
		scoreSum += score

		switch scoring.CategorizeLeadByScore(score) {
		case scoring.Hot:
			metrics.HotLeads++
		case scoring.Warm:
			metrics.WarmLeads++
		case scoring.Cold:
			metrics.ColdLeads++
		}

		if lead.Status == domain.StatusConverted {
			converted++
		}

		if lead.RevenueEstimate > 0 {
			metrics.PipelineValue += lead.RevenueEstimate
		} else {
			metrics.PipelineValue += defaultPipelineEstimate
		}

		source := lead.Source
		if source == "" {
			source = "unknown"
		}
		sourceCount[source]++
	}

	metrics.TotalLeads = len(leads)
	if metrics.TotalLeads > 0 {
		metrics.ConversionRate = float64(converted) / float64(metrics.TotalLeads) * 100
		metrics.AverageScore = float64(scoreSum) / float64(metrics.TotalLeads)
	}
	metrics.TopSources = topSources(sourceCount, 5)

	s.toCache(ctx, metricsCacheKey, metrics)
	return metrics, nil
}

// Stats returns lead distributions by status, business type, and score
// category.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	var cached transport.StatsResponse
	if s.fromCache(ctx, statsCacheKey, &cached) {
		return cached, nil
	}

	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return transport.StatsResponse{}, err
	}

	now := s.now()
	stats := transport.StatsResponse{
		Total:          len(leads),
		ByStatus:       map[string]int{},
		ByBusinessType: map[string]int{},
		ByCategory:     map[string]int{},
	}

	for _, lead := range leads {
		stats.ByStatus[string(lead.Status)]++

		businessType := lead.BusinessType
		if businessType == "" {
			businessType = "unknown"
		}
		stats.ByBusinessType[businessType]++

		category := scoring.CategorizeLeadByScore(scoring.CalculateLeadScoreAt(lead, now))
		stats.ByCategory[category.Name]++
	}

	s.toCache(ctx, statsCacheKey, stats)
	return stats, nil
}

// Invalidate drops the cached metrics. Called when lead data changes.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, metricsCacheKey, statsCacheKey).Err(); err != nil {
		s.log.CacheError("invalidate dashboard cache", err)
	}
}

func (s *Service) fromCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.CacheError("get "+key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.log.CacheError("decode "+key, err)
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.CacheError("set "+key, err)
	}
}

func topSources(counts map[string]int, limit int) []transport.SourceShare {
	shares := make([]transport.SourceShare, 0, len(counts))
	for source, count := range counts {
		shares = append(shares, transport.SourceShare{Source: source, Count: count})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Source < shares[j].Source
	})
	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}
