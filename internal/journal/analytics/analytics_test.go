package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-journal/internal/entity"
)

func closedTrade(id uint, day int, resultR float64) entity.Trade {
	r := resultR
	return entity.Trade{
		ID:        id,
		TradeDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Symbol:    "EURUSD",
		Direction: entity.DirectionBuy,
		Status:    entity.StatusClosed,
		ResultR:   &r,
	}
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	s := Compute(nil)

	assert.Equal(t, 0, s.TotalTrades)
	assert.Equal(t, 0, s.ClosedTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, 0.0, s.AvgR)
	assert.Equal(t, 0.0, s.DisciplineAvg)
	assert.Empty(t, s.EquityCurve)
	assert.Empty(t, s.DataQuality)
}

func TestComputeSummaryAndEquityCurve(t *testing.T) {
	t.Parallel()

	trades := []entity.Trade{
		closedTrade(1, 1, 2.5),
		closedTrade(2, 2, -1),
		closedTrade(3, 3, 1.5),
		closedTrade(4, 4, 0),
		closedTrade(5, 5, -1),
	}

	s := Compute(trades)

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 5, s.ClosedTrades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 40.0, s.WinRate)
	assert.Equal(t, 0.4, s.AvgR)

	require.Len(t, s.EquityCurve, 5)
	got := make([]float64, 0, len(s.EquityCurve))
	for _, p := range s.EquityCurve {
		got = append(got, p.Equity)
	}
	assert.Equal(t, []float64{2.5, 1.5, 3.0, 3.0, 2.0}, got)

	// Final point equals the sum of all results.
	assert.Equal(t, 2.0, s.EquityCurve[len(s.EquityCurve)-1].Equity)

	// Peak 2.5 to trough 1.5, then peak 3.0 to final 2.0.
	assert.Equal(t, 1.0, s.MaxDrawdown)
}

func TestComputeIsPure(t *testing.T) {
	t.Parallel()

	trades := []entity.Trade{
		closedTrade(1, 1, 1.2),
		closedTrade(2, 2, -0.8),
		closedTrade(3, 3, 2.1),
	}

	first := Compute(trades)
	second := Compute(trades)

	assert.Equal(t, first, second)
}

func TestComputeOpenTradesExcluded(t *testing.T) {
	t.Parallel()

	open := entity.Trade{
		ID:        7,
		TradeDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		Symbol:    "GBPUSD",
		Direction: entity.DirectionSell,
		Status:    entity.StatusOpen,
	}
	trades := []entity.Trade{closedTrade(1, 1, 1.0), open}

	s := Compute(trades)

	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 1, s.ClosedTrades)
	assert.Equal(t, 100.0, s.WinRate)
	assert.Len(t, s.EquityCurve, 1)
}

func TestComputeFlagsClosedTradeWithoutResult(t *testing.T) {
	t.Parallel()

	broken := entity.Trade{
		ID:        2,
		TradeDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Symbol:    "EURUSD",
		Direction: entity.DirectionBuy,
		Status:    entity.StatusClosed,
		ResultR:   nil,
	}
	trades := []entity.Trade{closedTrade(1, 1, 2.0), broken, closedTrade(3, 3, -1.0)}

	s := Compute(trades)

	require.Len(t, s.DataQuality, 1)
	assert.Equal(t, uint(2), s.DataQuality[0].TradeID)

	// The broken trade is excluded, never treated as zero.
	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 0.5, s.AvgR)
	require.Len(t, s.EquityCurve, 2)
	assert.Equal(t, 1.0, s.EquityCurve[1].Equity)
}

func TestComputeDisciplineAverage(t *testing.T) {
	t.Parallel()

	score := func(v float64) *float64 { return &v }

	withScore := closedTrade(1, 1, 1.0)
	withScore.DisciplineScore = score(80)

	openScored := entity.Trade{
		ID:              2,
		TradeDate:       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Symbol:          "EURUSD",
		Direction:       entity.DirectionBuy,
		Status:          entity.StatusOpen,
		DisciplineScore: score(90),
	}
	unscored := closedTrade(3, 3, -1.0)

	s := Compute([]entity.Trade{withScore, openScored, unscored})

	// Mean over every trade with a recorded score, open or closed.
	assert.Equal(t, 85.0, s.DisciplineAvg)
}

func TestComputeBreakdowns(t *testing.T) {
	t.Parallel()

	h1win := closedTrade(1, 1, 2.0)
	h1win.Timeframe = "H1"
	h1win.StrategyTag = "BO"

	h1loss := closedTrade(2, 2, -1.0)
	h1loss.Timeframe = "H1"
	h1loss.StrategyTag = "BO"

	h4win := closedTrade(3, 3, 1.0)
	h4win.Timeframe = "H4"
	h4win.StrategyTag = "SND"

	s := Compute([]entity.Trade{h1win, h1loss, h4win})

	require.Contains(t, s.ByTimeframe, "H1")
	h1 := s.ByTimeframe["H1"]
	assert.Equal(t, 2, h1.Count)
	assert.Equal(t, 1, h1.Wins)
	assert.Equal(t, 1, h1.Losses)
	assert.Equal(t, 50.0, h1.WinRate)
	assert.Equal(t, 0.5, h1.AvgR)

	require.Contains(t, s.ByStrategy, "SND")
	assert.Equal(t, 100.0, s.ByStrategy["SND"].WinRate)
}

func TestComputeRiskAggregates(t *testing.T) {
	t.Parallel()

	pct := func(v float64) *float64 { return &v }

	a := closedTrade(1, 1, 1.0)
	a.RiskPercent = pct(1.0)
	a.RiskRewardRatio = pct(2.0)

	b := closedTrade(2, 2, -1.0)
	b.RiskPercent = pct(2.0)
	b.RiskRewardRatio = pct(3.0)

	s := Compute([]entity.Trade{a, b})

	assert.Equal(t, 1.5, s.AvgRiskPercent)
	assert.Equal(t, 2.0, s.MaxRiskPercent)
	assert.Equal(t, 2.5, s.AvgRiskReward)
}
