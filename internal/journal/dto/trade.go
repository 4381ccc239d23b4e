package dto

import (
	"time"

	"go-trade-journal/internal/entity"
)

// RuleChecklistDTO mirrors the per-trade rule-compliance flags.
type RuleChecklistDTO struct {
	FollowedPlan bool `json:"followed_plan"`
	NoRevenge    bool `json:"no_revenge"`
	NoFOMO       bool `json:"no_fomo"`
	RespectedRR  bool `json:"respected_rr"`
}

// CreateTradeRequest is the DTO for logging a new trade.
type CreateTradeRequest struct {
	TradeDate       string            `json:"trade_date"` // YYYY-MM-DD, defaults to today
	Symbol          string            `json:"symbol"`
	Timeframe       string            `json:"timeframe"`
	Direction       string            `json:"direction"`
	EntryPrice      float64           `json:"entry_price"`
	StopPrice       float64           `json:"stop_price"`
	TargetPrice     float64           `json:"target_price"`
	RiskPercent     *float64          `json:"risk_percent"`
	RiskRewardRatio *float64          `json:"risk_reward_ratio"`
	ResultR         *float64          `json:"result_r"`
	DisciplineScore *float64          `json:"discipline_score"`
	RuleChecklist   *RuleChecklistDTO `json:"rule_checklist"`
	StrategyTag     string            `json:"strategy_tag"`
	MarketCondition string            `json:"market_condition"`
	Grade           string            `json:"grade"`
	Featured        bool              `json:"featured"`
	Published       bool              `json:"published"`
	Thesis          string            `json:"thesis"`
	Narrative       string            `json:"narrative"`
	PrivateNotes    string            `json:"private_notes"`
	Status          string            `json:"status"`
}

// UpdateTradeRequest is the DTO for editing an existing trade. It is a full
// replacement of the editable fields; id and created_at are immutable.
type UpdateTradeRequest struct {
	TradeDate       string            `json:"trade_date"`
	Symbol          string            `json:"symbol"`
	Timeframe       string            `json:"timeframe"`
	Direction       string            `json:"direction"`
	EntryPrice      float64           `json:"entry_price"`
	StopPrice       float64           `json:"stop_price"`
	TargetPrice     float64           `json:"target_price"`
	RiskPercent     *float64          `json:"risk_percent"`
	RiskRewardRatio *float64          `json:"risk_reward_ratio"`
	ResultR         *float64          `json:"result_r"`
	DisciplineScore *float64          `json:"discipline_score"`
	RuleChecklist   *RuleChecklistDTO `json:"rule_checklist"`
	StrategyTag     string            `json:"strategy_tag"`
	MarketCondition string            `json:"market_condition"`
	Grade           string            `json:"grade"`
	Featured        bool              `json:"featured"`
	Published       bool              `json:"published"`
	Thesis          string            `json:"thesis"`
	Narrative       string            `json:"narrative"`
	PrivateNotes    string            `json:"private_notes"`
	Status          string            `json:"status"`
}

// TradeResponse is the owner-facing view of a trade.
type TradeResponse struct {
	ID              uint              `json:"id"`
	TradeDate       string            `json:"trade_date"`
	Symbol          string            `json:"symbol"`
	Timeframe       string            `json:"timeframe"`
	Direction       string            `json:"direction"`
	EntryPrice      float64           `json:"entry_price"`
	StopPrice       float64           `json:"stop_price"`
	TargetPrice     float64           `json:"target_price"`
	RiskPercent     *float64          `json:"risk_percent"`
	RiskRewardRatio *float64          `json:"risk_reward_ratio"`
	ResultR         *float64          `json:"result_r"`
	DisciplineScore *float64          `json:"discipline_score"`
	RuleChecklist   *RuleChecklistDTO `json:"rule_checklist"`
	StrategyTag     string            `json:"strategy_tag"`
	MarketCondition string            `json:"market_condition"`
	Grade           string            `json:"grade"`
	Featured        bool              `json:"featured"`
	Published       bool              `json:"published"`
	Thesis          string            `json:"thesis"`
	Narrative       string            `json:"narrative"`
	PrivateNotes    string            `json:"private_notes"`
	ScreenshotBefore string           `json:"screenshot_before"`
	ScreenshotAfter  string           `json:"screenshot_after"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// PublicCaseResponse is the visitor-facing view of a published trade. It has
// no private-notes or checklist fields at all, so they cannot leak through
// serialization.
type PublicCaseResponse struct {
	ID              uint      `json:"id"`
	TradeDate       string    `json:"trade_date"`
	Symbol          string    `json:"symbol"`
	Timeframe       string    `json:"timeframe"`
	Direction       string    `json:"direction"`
	EntryPrice      float64   `json:"entry_price"`
	StopPrice       float64   `json:"stop_price"`
	TargetPrice     float64   `json:"target_price"`
	RiskRewardRatio *float64  `json:"risk_reward_ratio"`
	ResultR         *float64  `json:"result_r"`
	DisciplineScore *float64  `json:"discipline_score"`
	StrategyTag     string    `json:"strategy_tag"`
	MarketCondition string    `json:"market_condition"`
	Grade           string    `json:"grade"`
	Featured        bool      `json:"featured"`
	Thesis          string    `json:"thesis"`
	Narrative       string    `json:"narrative"`
	ScreenshotBefore string   `json:"screenshot_before"`
	ScreenshotAfter  string   `json:"screenshot_after"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListTradesFilter narrows a trade listing. The zero value lists everything
// in chronological order.
type ListTradesFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Status        entity.Status
	Direction     entity.Direction
	StrategyTag   string
	SymbolQuery   string
}

// TradeCSV is one row of the closed-trades CSV export.
type TradeCSV struct {
	TradeDate       string  `csv:"trade_date"`
	Symbol          string  `csv:"symbol"`
	Timeframe       string  `csv:"timeframe"`
	Direction       string  `csv:"direction"`
	EntryPrice      float64 `csv:"entry_price"`
	StopPrice       float64 `csv:"stop_price"`
	TargetPrice     float64 `csv:"target_price"`
	RiskRewardRatio string  `csv:"risk_reward_ratio"`
	ResultR         string  `csv:"result_r"`
	Grade           string  `csv:"grade"`
	StrategyTag     string  `csv:"strategy_tag"`
	Status          string  `csv:"status"`
}

// PlaybookEntry describes one strategy tag in use.
type PlaybookEntry struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
}
