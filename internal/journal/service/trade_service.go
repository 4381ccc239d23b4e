package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"go-trade-journal/internal/entity"
	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/pkg/common"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/utils"
)

const tradeDateLayout = "2006-01-02"

// TradeService defines the interface for managing journal entries.
type TradeService interface {
	CreateTrade(ctx context.Context, req *dto.CreateTradeRequest) (*dto.TradeResponse, error)
	GetTrade(ctx context.Context, id uint) (*dto.TradeResponse, error)
	ListTrades(ctx context.Context, filter dto.ListTradesFilter) ([]*dto.TradeResponse, error)
	UpdateTrade(ctx context.Context, id uint, req *dto.UpdateTradeRequest) (*dto.TradeResponse, error)
	DeleteTrade(ctx context.Context, id uint) error

	GetPublicCase(ctx context.Context, id uint) (*dto.PublicCaseResponse, error)
	ListPublicCases(ctx context.Context, filter dto.ListTradesFilter) ([]*dto.PublicCaseResponse, error)
	ListPlaybook(ctx context.Context) ([]dto.PlaybookEntry, error)
}

// NewTradeService creates a new trade service.
func NewTradeService(tradeRepo repository.TradeRepository, screenshots ScreenshotService, analytics AnalyticsService, logger *logger.Logger) TradeService {
	return &tradeService{
		tradeRepo:   tradeRepo,
		screenshots: screenshots,
		analytics:   analytics,
		logger:      logger,
	}
}

type tradeService struct {
	tradeRepo   repository.TradeRepository
	screenshots ScreenshotService
	analytics   AnalyticsService
	logger      *logger.Logger
}

// CreateTrade validates and persists a new journal entry.
func (s *tradeService) CreateTrade(ctx context.Context, req *dto.CreateTradeRequest) (*dto.TradeResponse, error) {
	trade := &entity.Trade{}
	if err := s.applyRequest(trade, tradeFields{
		TradeDate:       req.TradeDate,
		Symbol:          req.Symbol,
		Timeframe:       req.Timeframe,
		Direction:       req.Direction,
		EntryPrice:      req.EntryPrice,
		StopPrice:       req.StopPrice,
		TargetPrice:     req.TargetPrice,
		RiskPercent:     req.RiskPercent,
		RiskRewardRatio: req.RiskRewardRatio,
		ResultR:         req.ResultR,
		DisciplineScore: req.DisciplineScore,
		RuleChecklist:   req.RuleChecklist,
		StrategyTag:     req.StrategyTag,
		MarketCondition: req.MarketCondition,
		Grade:           req.Grade,
		Featured:        req.Featured,
		Published:       req.Published,
		Thesis:          req.Thesis,
		Narrative:       req.Narrative,
		PrivateNotes:    req.PrivateNotes,
		Status:          req.Status,
	}); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		s.logger.Error("Failed to create trade", logger.ErrorField(err))
		return nil, err
	}
	s.analytics.Invalidate()

	s.logger.Info("Trade created", logger.Field("trade_id", trade.ID), logger.Field("symbol", trade.Symbol))
	return mapToTradeResponse(trade), nil
}

// GetTrade retrieves a trade by id for the owner workspace.
func (s *tradeService) GetTrade(ctx context.Context, id uint) (*dto.TradeResponse, error) {
	trade, err := s.findTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToTradeResponse(trade), nil
}

// ListTrades retrieves trades for the owner workspace, oldest first.
func (s *tradeService) ListTrades(ctx context.Context, filter dto.ListTradesFilter) ([]*dto.TradeResponse, error) {
	trades, err := s.tradeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list trades", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.TradeResponse, 0, len(trades))
	for i := range trades {
		responses = append(responses, mapToTradeResponse(&trades[i]))
	}
	return responses, nil
}

// UpdateTrade validates and persists a full edit of an existing trade.
func (s *tradeService) UpdateTrade(ctx context.Context, id uint, req *dto.UpdateTradeRequest) (*dto.TradeResponse, error) {
	trade, err := s.findTrade(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyRequest(trade, tradeFields{
		TradeDate:       req.TradeDate,
		Symbol:          req.Symbol,
		Timeframe:       req.Timeframe,
		Direction:       req.Direction,
		EntryPrice:      req.EntryPrice,
		StopPrice:       req.StopPrice,
		TargetPrice:     req.TargetPrice,
		RiskPercent:     req.RiskPercent,
		RiskRewardRatio: req.RiskRewardRatio,
		ResultR:         req.ResultR,
		DisciplineScore: req.DisciplineScore,
		RuleChecklist:   req.RuleChecklist,
		StrategyTag:     req.StrategyTag,
		MarketCondition: req.MarketCondition,
		Grade:           req.Grade,
		Featured:        req.Featured,
		Published:       req.Published,
		Thesis:          req.Thesis,
		Narrative:       req.Narrative,
		PrivateNotes:    req.PrivateNotes,
		Status:          req.Status,
	}); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		s.logger.Error("Failed to update trade", logger.ErrorField(err), logger.Field("trade_id", id))
		return nil, err
	}
	s.analytics.Invalidate()

	s.logger.Info("Trade updated", logger.Field("trade_id", id))
	return mapToTradeResponse(trade), nil
}

// DeleteTrade removes a trade and its screenshot files. Remaining ids are
// untouched and the deleted id is never reused.
func (s *tradeService) DeleteTrade(ctx context.Context, id uint) error {
	trade, err := s.findTrade(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tradeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTradeNotFound
		}
		s.logger.Error("Failed to delete trade", logger.ErrorField(err), logger.Field("trade_id", id))
		return err
	}
	s.screenshots.Remove(trade.ScreenshotBefore, trade.ScreenshotAfter)
	s.analytics.Invalidate()

	s.logger.Info("Trade deleted", logger.Field("trade_id", id))
	return nil
}

// GetPublicCase retrieves a published trade with private fields stripped.
// Unpublished ids look identical to unknown ones.
func (s *tradeService) GetPublicCase(ctx context.Context, id uint) (*dto.PublicCaseResponse, error) {
	trade, err := s.findTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	if !trade.Published {
		return nil, ErrTradeNotFound
	}
	return mapToPublicCase(trade), nil
}

// ListPublicCases retrieves published trades with private fields stripped.
func (s *tradeService) ListPublicCases(ctx context.Context, filter dto.ListTradesFilter) ([]*dto.PublicCaseResponse, error) {
	filter.PublishedOnly = true
	trades, err := s.tradeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list public cases", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.PublicCaseResponse, 0, len(trades))
	for i := range trades {
		responses = append(responses, mapToPublicCase(&trades[i]))
	}
	return responses, nil
}

// ListPlaybook returns the strategy tags used by published trades together
// with their playbook descriptions.
func (s *tradeService) ListPlaybook(ctx context.Context) ([]dto.PlaybookEntry, error) {
	trades, err := s.tradeRepo.FindAll(ctx, dto.ListTradesFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for i := range trades {
		tag := strings.ToUpper(strings.TrimSpace(trades[i].StrategyTag))
		if tag != "" {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	playbook := make([]dto.PlaybookEntry, 0, len(tags))
	for _, tag := range tags {
		playbook = append(playbook, dto.PlaybookEntry{Tag: tag, Description: common.DescribeStrategy(tag)})
	}
	return playbook, nil
}

func (s *tradeService) findTrade(ctx context.Context, id uint) (*entity.Trade, error) {
	trade, err := s.tradeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		s.logger.Error("Failed to find trade", logger.ErrorField(err), logger.Field("trade_id", id))
		return nil, err
	}
	return trade, nil
}

// tradeFields is the common editable field set of create and update requests.
type tradeFields struct {
	TradeDate       string
	Symbol          string
	Timeframe       string
	Direction       string
	EntryPrice      float64
	StopPrice       float64
	TargetPrice     float64
	RiskPercent     *float64
	RiskRewardRatio *float64
	ResultR         *float64
	DisciplineScore *float64
	RuleChecklist   *dto.RuleChecklistDTO
	StrategyTag     string
	MarketCondition string
	Grade           string
	Featured        bool
	Published       bool
	Thesis          string
	Narrative       string
	PrivateNotes    string
	Status          string
}

// applyRequest validates the request fields and writes them onto the entity.
// Nothing is persisted when it returns an error.
func (s *tradeService) applyRequest(trade *entity.Trade, f tradeFields) error {
	verr := newValidationError()

	symbol := strings.ToUpper(strings.TrimSpace(f.Symbol))
	if symbol == "" {
		verr.add("symbol", "symbol is required")
	}

	direction := entity.Direction(strings.ToUpper(strings.TrimSpace(f.Direction)))
	if direction != entity.DirectionBuy && direction != entity.DirectionSell {
		verr.add("direction", "direction must be BUY or SELL")
	}

	status := entity.Status(strings.ToUpper(strings.TrimSpace(f.Status)))
	if status == "" {
		status = entity.StatusOpen
	}
	if status != entity.StatusOpen && status != entity.StatusClosed {
		verr.add("status", "status must be OPEN or CLOSED")
	}

	// A result exists exactly when the trade is closed.
	if status == entity.StatusClosed && f.ResultR == nil {
		verr.add("result_r", "a closed trade requires a result in R")
	}
	if status == entity.StatusOpen && f.ResultR != nil {
		verr.add("result_r", "an open trade cannot have a result; close it instead")
	}

	tradeDate := trade.TradeDate
	if f.TradeDate != "" {
		parsed, err := time.Parse(tradeDateLayout, f.TradeDate)
		if err != nil {
			verr.add("trade_date", "trade_date must be formatted YYYY-MM-DD")
		} else {
			tradeDate = parsed
		}
	} else if tradeDate.IsZero() {
		tradeDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	riskReward := f.RiskRewardRatio
	if riskReward == nil && f.EntryPrice != 0 && f.StopPrice != 0 && f.TargetPrice != 0 {
		rr, ok := deriveRiskReward(direction, f.EntryPrice, f.StopPrice, f.TargetPrice)
		if !ok {
			verr.add("stop_price", "stop must sit on the risk side of entry")
		} else {
			riskReward = &rr
		}
	}

	var checklist datatypes.JSON
	if f.RuleChecklist != nil {
		raw, err := json.Marshal(entity.RuleChecklist{
			FollowedPlan: f.RuleChecklist.FollowedPlan,
			NoRevenge:    f.RuleChecklist.NoRevenge,
			NoFOMO:       f.RuleChecklist.NoFOMO,
			RespectedRR:  f.RuleChecklist.RespectedRR,
		})
		if err != nil {
			return err
		}
		checklist = datatypes.JSON(raw)
	}

	if err := verr.orNil(); err != nil {
		return err
	}

	trade.TradeDate = tradeDate
	trade.Symbol = symbol
	trade.Timeframe = strings.TrimSpace(f.Timeframe)
	trade.Direction = direction
	trade.EntryPrice = f.EntryPrice
	trade.StopPrice = f.StopPrice
	trade.TargetPrice = f.TargetPrice
	trade.RiskPercent = f.RiskPercent
	trade.RiskRewardRatio = riskReward
	trade.ResultR = f.ResultR
	trade.DisciplineScore = f.DisciplineScore
	trade.RuleChecklist = checklist
	trade.StrategyTag = strings.ToUpper(strings.TrimSpace(f.StrategyTag))
	trade.MarketCondition = strings.TrimSpace(f.MarketCondition)
	trade.Grade = strings.TrimSpace(f.Grade)
	trade.Featured = f.Featured
	trade.Published = f.Published
	trade.Thesis = utils.StripUnprintable(f.Thesis)
	trade.Narrative = utils.StripUnprintable(f.Narrative)
	trade.PrivateNotes = utils.StripUnprintable(f.PrivateNotes)
	trade.Status = status
	return nil
}

// deriveRiskReward computes the theoretical R:R from the price setup. The
// owner can record a ratio manually instead; this runs only when they did
// not.
func deriveRiskReward(direction entity.Direction, entry, stop, target float64) (float64, bool) {
	var risk, reward float64
	switch direction {
	case entity.DirectionBuy:
		risk = entry - stop
		reward = target - entry
	case entity.DirectionSell:
		risk = stop - entry
		reward = entry - target
	default:
		return 0, false
	}
	if risk <= 0 {
		return 0, false
	}
	return utils.RoundFloat(reward/risk, 2), true
}

func mapToTradeResponse(trade *entity.Trade) *dto.TradeResponse {
	return &dto.TradeResponse{
		ID:              trade.ID,
		TradeDate:       trade.TradeDate.Format(tradeDateLayout),
		Symbol:          trade.Symbol,
		Timeframe:       trade.Timeframe,
		Direction:       string(trade.Direction),
		EntryPrice:      trade.EntryPrice,
		StopPrice:       trade.StopPrice,
		TargetPrice:     trade.TargetPrice,
		RiskPercent:     trade.RiskPercent,
		RiskRewardRatio: trade.RiskRewardRatio,
		ResultR:         trade.ResultR,
		DisciplineScore: trade.DisciplineScore,
		RuleChecklist:   unmarshalChecklist(trade.RuleChecklist),
		StrategyTag:     trade.StrategyTag,
		MarketCondition: trade.MarketCondition,
		Grade:           trade.Grade,
		Featured:        trade.Featured,
		Published:       trade.Published,
		Thesis:          trade.Thesis,
		Narrative:       trade.Narrative,
		PrivateNotes:    trade.PrivateNotes,
		ScreenshotBefore: trade.ScreenshotBefore,
		ScreenshotAfter:  trade.ScreenshotAfter,
		Status:          string(trade.Status),
		CreatedAt:       trade.CreatedAt,
		UpdatedAt:       trade.UpdatedAt,
	}
}

func mapToPublicCase(trade *entity.Trade) *dto.PublicCaseResponse {
	return &dto.PublicCaseResponse{
		ID:              trade.ID,
		TradeDate:       trade.TradeDate.Format(tradeDateLayout),
		Symbol:          trade.Symbol,
		Timeframe:       trade.Timeframe,
		Direction:       string(trade.Direction),
		EntryPrice:      trade.EntryPrice,
		StopPrice:       trade.StopPrice,
		TargetPrice:     trade.TargetPrice,
		RiskRewardRatio: trade.RiskRewardRatio,
		ResultR:         trade.ResultR,
		DisciplineScore: trade.DisciplineScore,
		StrategyTag:     trade.StrategyTag,
		MarketCondition: trade.MarketCondition,
		Grade:           trade.Grade,
		Featured:        trade.Featured,
		Thesis:          trade.Thesis,
		Narrative:       trade.Narrative,
		ScreenshotBefore: trade.ScreenshotBefore,
		ScreenshotAfter:  trade.ScreenshotAfter,
		Status:          string(trade.Status),
		CreatedAt:       trade.CreatedAt,
	}
}

func unmarshalChecklist(raw datatypes.JSON) *dto.RuleChecklistDTO {
	if len(raw) == 0 {
		return nil
	}
	var checklist entity.RuleChecklist
	if err := json.Unmarshal(raw, &checklist); err != nil {
		return nil
	}
	return &dto.RuleChecklistDTO{
		FollowedPlan: checklist.FollowedPlan,
		NoRevenge:    checklist.NoRevenge,
		NoFOMO:       checklist.NoFOMO,
		RespectedRR:  checklist.RespectedRR,
	}
}
