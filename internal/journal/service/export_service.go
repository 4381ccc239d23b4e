package service

import (
	"context"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"go-trade-journal/internal/entity"
	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/utils"
)

// ExportService serializes closed trades to CSV.
type ExportService interface {
	ExportClosedCSV(ctx context.Context, w io.Writer, publicOnly bool) error
}

// NewExportService creates a new export service.
func NewExportService(tradeRepo repository.TradeRepository, logger *logger.Logger) ExportService {
	return &exportService{tradeRepo: tradeRepo, logger: logger}
}

type exportService struct {
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
}

// ExportClosedCSV writes the closed trades in chronological order. Free-text
// columns are sanitized against spreadsheet formula injection.
func (s *exportService) ExportClosedCSV(ctx context.Context, w io.Writer, publicOnly bool) error {
	trades, err := s.tradeRepo.FindAll(ctx, dto.ListTradesFilter{
		PublishedOnly: publicOnly,
		Status:        entity.StatusClosed,
	})
	if err != nil {
		s.logger.Error("Failed to load trades for export", logger.ErrorField(err))
		return err
	}

	rows := make([]dto.TradeCSV, 0, len(trades))
	for i := range trades {
		t := &trades[i]
		rows = append(rows, dto.TradeCSV{
			TradeDate:       t.TradeDate.Format(tradeDateLayout),
			Symbol:          utils.SanitizeForFormulaInjection(t.Symbol),
			Timeframe:       utils.SanitizeForFormulaInjection(t.Timeframe),
			Direction:       string(t.Direction),
			EntryPrice:      t.EntryPrice,
			StopPrice:       t.StopPrice,
			TargetPrice:     t.TargetPrice,
			RiskRewardRatio: formatOptional(t.RiskRewardRatio),
			ResultR:         formatOptional(t.ResultR),
			Grade:           utils.SanitizeForFormulaInjection(t.Grade),
			StrategyTag:     utils.SanitizeForFormulaInjection(t.StrategyTag),
			Status:          string(t.Status),
		})
	}

	return gocsv.Marshal(&rows, w)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
