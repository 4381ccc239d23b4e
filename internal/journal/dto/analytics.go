package dto

// EquityPoint is one point of the cumulative-R equity curve.
type EquityPoint struct {
	TradeID uint    `json:"trade_id"`
	Label   string  `json:"label"`
	Equity  float64 `json:"equity"`
}

// DataQualityIssue flags a trade that was excluded from numeric aggregation.
type DataQualityIssue struct {
	TradeID uint   `json:"trade_id"`
	Reason  string `json:"reason"`
}

// BreakdownStats is a per-tag slice of the aggregate statistics.
type BreakdownStats struct {
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
	AvgR    float64 `json:"avg_r"`
}

// AnalyticsSummary is the fixed-shape aggregate over a trade sequence.
// DataQuality is owner-facing and omitted from public responses.
type AnalyticsSummary struct {
	TotalTrades    int                       `json:"total_trades"`
	OpenTrades     int                       `json:"open_trades"`
	ClosedTrades   int                       `json:"closed_trades"`
	Wins           int                       `json:"wins"`
	Losses         int                       `json:"losses"`
	WinRate        float64                   `json:"win_rate"`
	AvgR           float64                   `json:"avg_r"`
	AvgRiskReward  float64                   `json:"avg_risk_reward"`
	AvgRiskPercent float64                   `json:"avg_risk_percent"`
	MaxRiskPercent float64                   `json:"max_risk_percent"`
	DisciplineAvg  float64                   `json:"discipline_avg"`
	MaxDrawdown    float64                   `json:"max_drawdown"`
	EquityCurve    []EquityPoint             `json:"equity_curve"`
	ByTimeframe    map[string]BreakdownStats `json:"by_timeframe"`
	ByStrategy     map[string]BreakdownStats `json:"by_strategy"`
	DataQuality    []DataQualityIssue        `json:"data_quality,omitempty"`
}
