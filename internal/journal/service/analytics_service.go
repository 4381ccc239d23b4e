package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"go-trade-journal/internal/journal/analytics"
	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/pkg/logger"
)

const (
	summaryCacheKeyAll    = "summary:all"
	summaryCacheKeyPublic = "summary:public"
)

// AnalyticsService computes and caches aggregate statistics. The engine
// itself is pure; this layer only adds the fetch and a TTL cache that every
// write invalidates.
type AnalyticsService interface {
	GetSummary(ctx context.Context, publicOnly bool) (*dto.AnalyticsSummary, error)
	Invalidate()
}

// NewAnalyticsService creates a new analytics service with the given cache TTL.
func NewAnalyticsService(tradeRepo repository.TradeRepository, logger *logger.Logger, cacheTTL time.Duration) AnalyticsService {
	return &analyticsService{
		tradeRepo: tradeRepo,
		logger:    logger,
		cache:     gocache.New(cacheTTL, 2*cacheTTL),
	}
}

type analyticsService struct {
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
	cache     *gocache.Cache
}

// GetSummary aggregates either the full journal or the published subset.
func (s *analyticsService) GetSummary(ctx context.Context, publicOnly bool) (*dto.AnalyticsSummary, error) {
	key := summaryCacheKeyAll
	if publicOnly {
		key = summaryCacheKeyPublic
	}
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*dto.AnalyticsSummary), nil
	}

	trades, err := s.tradeRepo.FindAll(ctx, dto.ListTradesFilter{PublishedOnly: publicOnly})
	if err != nil {
		s.logger.Error("Failed to load trades for analytics", logger.ErrorField(err))
		return nil, err
	}

	summary := mapToSummaryResponse(analytics.Compute(trades))
	s.cache.SetDefault(key, summary)
	return summary, nil
}

// Invalidate drops all cached summaries. Called after every write.
func (s *analyticsService) Invalidate() {
	s.cache.Flush()
}

func mapToSummaryResponse(sum analytics.Summary) *dto.AnalyticsSummary {
	curve := make([]dto.EquityPoint, 0, len(sum.EquityCurve))
	for _, p := range sum.EquityCurve {
		curve = append(curve, dto.EquityPoint{TradeID: p.TradeID, Label: p.Label, Equity: p.Equity})
	}

	issues := make([]dto.DataQualityIssue, 0, len(sum.DataQuality))
	for _, issue := range sum.DataQuality {
		issues = append(issues, dto.DataQualityIssue{TradeID: issue.TradeID, Reason: issue.Reason})
	}

	return &dto.AnalyticsSummary{
		TotalTrades:    sum.TotalTrades,
		OpenTrades:     sum.OpenTrades,
		ClosedTrades:   sum.ClosedTrades,
		Wins:           sum.Wins,
		Losses:         sum.Losses,
		WinRate:        sum.WinRate,
		AvgR:           sum.AvgR,
		AvgRiskReward:  sum.AvgRiskReward,
		AvgRiskPercent: sum.AvgRiskPercent,
		MaxRiskPercent: sum.MaxRiskPercent,
		DisciplineAvg:  sum.DisciplineAvg,
		MaxDrawdown:    sum.MaxDrawdown,
		EquityCurve:    curve,
		ByTimeframe:    mapBreakdowns(sum.ByTimeframe),
		ByStrategy:     mapBreakdowns(sum.ByStrategy),
		DataQuality:    issues,
	}
}

func mapBreakdowns(in map[string]analytics.Breakdown) map[string]dto.BreakdownStats {
	out := make(map[string]dto.BreakdownStats, len(in))
	for tag, b := range in {
		out[tag] = dto.BreakdownStats{
			Count:   b.Count,
			Wins:    b.Wins,
			Losses:  b.Losses,
			WinRate: b.WinRate,
			AvgR:    b.AvgR,
		}
	}
	return out
}
