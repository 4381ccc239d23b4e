// Package analytics aggregates an ordered trade sequence into summary
// metrics and an equity curve. It performs no I/O and keeps no state:
// recomputing over the same input yields the same output.
package analytics

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"go-trade-journal/internal/entity"
	"go-trade-journal/pkg/utils"
)

// Point is one equity-curve entry: the cumulative sum of realized R over the
// closed trades up to and including this one.
type Point struct {
	TradeID uint
	Label   string
	Equity  float64
}

// Issue flags a trade excluded from numeric aggregation.
type Issue struct {
	TradeID uint
	Reason  string
}

// Breakdown is the aggregate for one timeframe or strategy tag.
type Breakdown struct {
	Count   int
	Wins    int
	Losses  int
	WinRate float64
	AvgR    float64
}

// Summary is the fixed-shape output of Compute.
type Summary struct {
	TotalTrades    int
	OpenTrades     int
	ClosedTrades   int
	Wins           int
	Losses         int
	WinRate        float64
	AvgR           float64
	AvgRiskReward  float64
	AvgRiskPercent float64
	MaxRiskPercent float64
	DisciplineAvg  float64
	MaxDrawdown    float64
	EquityCurve    []Point
	ByTimeframe    map[string]Breakdown
	ByStrategy     map[string]Breakdown
	DataQuality    []Issue
}

// Compute aggregates trades ordered by trade date ascending. A CLOSED trade
// without a result is reported in DataQuality and excluded from every
// numeric aggregate; it is never counted as zero. With no closed trades the
// win rate and averages are 0 by policy, not an error.
func Compute(trades []entity.Trade) Summary {
	s := Summary{
		TotalTrades: len(trades),
		EquityCurve: []Point{},
		ByTimeframe: map[string]Breakdown{},
		ByStrategy:  map[string]Breakdown{},
		DataQuality: []Issue{},
	}

	var (
		results     []float64
		riskRewards []float64
		risks       []float64
		disciplines []float64
	)

	cumulative := 0.0
	peak := 0.0
	maxDrawdown := 0.0

	for i := range trades {
		t := &trades[i]

		if t.DisciplineScore != nil {
			disciplines = append(disciplines, *t.DisciplineScore)
		}

		if !t.IsClosed() {
			s.OpenTrades++
			continue
		}
		s.ClosedTrades++

		if t.ResultR == nil {
			s.DataQuality = append(s.DataQuality, Issue{
				TradeID: t.ID,
				Reason:  "closed trade has no recorded result",
			})
			continue
		}

		r := *t.ResultR
		results = append(results, r)
		if r > 0 {
			s.Wins++
		} else if r < 0 {
			s.Losses++
		}

		if t.RiskRewardRatio != nil {
			riskRewards = append(riskRewards, *t.RiskRewardRatio)
		}
		if t.RiskPercent != nil {
			risks = append(risks, *t.RiskPercent)
		}

		cumulative += r
		s.EquityCurve = append(s.EquityCurve, Point{
			TradeID: t.ID,
			Label:   fmt.Sprintf("%s %s %s", t.TradeDate.Format("2006-01-02"), t.Symbol, t.Direction),
			Equity:  utils.RoundFloat(cumulative, 2),
		})
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}

		accumulateBreakdown(s.ByTimeframe, t.Timeframe, r)
		accumulateBreakdown(s.ByStrategy, t.StrategyTag, r)
	}

	if len(results) > 0 {
		s.WinRate = utils.RoundFloat(float64(s.Wins)/float64(len(results))*100, 1)
	}
	s.AvgR = roundedMean(results, 2)
	s.AvgRiskReward = roundedMean(riskRewards, 2)
	s.AvgRiskPercent = roundedMean(risks, 2)
	if v, err := stats.Max(risks); err == nil {
		s.MaxRiskPercent = utils.RoundFloat(v, 2)
	}
	s.DisciplineAvg = roundedMean(disciplines, 1)
	s.MaxDrawdown = utils.RoundFloat(maxDrawdown, 2)

	finishBreakdowns(s.ByTimeframe)
	finishBreakdowns(s.ByStrategy)

	return s
}

func accumulateBreakdown(m map[string]Breakdown, tag string, r float64) {
	if tag == "" {
		return
	}
	b := m[tag]
	b.Count++
	if r > 0 {
		b.Wins++
	} else if r < 0 {
		b.Losses++
	}
	// AvgR temporarily carries the running sum until finishBreakdowns.
	b.AvgR += r
	m[tag] = b
}

func finishBreakdowns(m map[string]Breakdown) {
	for tag, b := range m {
		if b.Count > 0 {
			b.WinRate = utils.RoundFloat(float64(b.Wins)/float64(b.Count)*100, 1)
			b.AvgR = utils.RoundFloat(b.AvgR/float64(b.Count), 2)
		}
		m[tag] = b
	}
}

func roundedMean(values []float64, precision uint) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return utils.RoundFloat(m, precision)
}
