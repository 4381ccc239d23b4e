package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Direction is the side of a trade.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Status is the lifecycle state of a trade. A trade is OPEN until the owner
// records its result, which closes it.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// RuleChecklist captures the per-trade rule-compliance flags. It is stored
// as a JSON column alongside the numeric discipline score.
type RuleChecklist struct {
	FollowedPlan bool `json:"followed_plan"`
	NoRevenge    bool `json:"no_revenge"`
	NoFOMO       bool `json:"no_fomo"`
	RespectedRR  bool `json:"respected_rr"`
}

// Trade is one journal entry. ResultR is nil exactly while the trade is
// OPEN; PrivateNotes never leaves the owner workspace.
type Trade struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	TradeDate       time.Time      `gorm:"not null;index" json:"trade_date"`
	Symbol          string         `gorm:"not null" json:"symbol"`
	Timeframe       string         `json:"timeframe"`
	Direction       Direction      `gorm:"not null" json:"direction"`
	EntryPrice      float64        `json:"entry_price"`
	StopPrice       float64        `json:"stop_price"`
	TargetPrice     float64        `json:"target_price"`
	RiskPercent     *float64       `json:"risk_percent"`
	RiskRewardRatio *float64       `json:"risk_reward_ratio"`
	ResultR         *float64       `json:"result_r"`
	DisciplineScore *float64       `json:"discipline_score"`
	RuleChecklist   datatypes.JSON `json:"rule_checklist"`
	StrategyTag     string         `json:"strategy_tag"`
	MarketCondition string         `json:"market_condition"`
	Grade           string         `json:"grade"`
	Featured        bool           `gorm:"not null;default:false" json:"featured"`
	Published       bool           `gorm:"not null;default:false" json:"published"`
	Thesis          string         `json:"thesis"`
	Narrative       string         `json:"narrative"`
	PrivateNotes    string         `json:"private_notes"`
	ScreenshotBefore string        `json:"screenshot_before"`
	ScreenshotAfter  string        `json:"screenshot_after"`
	Status          Status         `gorm:"not null;default:OPEN" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// IsClosed reports whether the trade has a recorded outcome.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// HasValidResult reports whether the trade is closed with a usable numeric
// result. A closed trade without one is a data-quality issue, not a zero.
func (t *Trade) HasValidResult() bool {
	return t.Status == StatusClosed && t.ResultR != nil
}
