package repository

import (
	"context"

	"gorm.io/gorm"

	"go-trade-journal/internal/entity"
	"go-trade-journal/internal/journal/dto"
)

// TradeRepository defines the interface for trade data operations.
type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	FindByID(ctx context.Context, id uint) (*entity.Trade, error)
	FindAll(ctx context.Context, filter dto.ListTradesFilter) ([]entity.Trade, error)
	Update(ctx context.Context, trade *entity.Trade) error
	Delete(ctx context.Context, id uint) error
}

// NewTradeRepository creates a new GORM-based trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

type tradeRepository struct {
	db *gorm.DB
}

// Create inserts a new trade.
func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

// FindByID retrieves a trade by its ID.
func (r *tradeRepository) FindByID(ctx context.Context, id uint) (*entity.Trade, error) {
	var trade entity.Trade
	if err := r.db.WithContext(ctx).First(&trade, id).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

// FindAll retrieves trades matching the filter, ordered chronologically.
// The ascending order is what the analytics engine expects.
func (r *tradeRepository) FindAll(ctx context.Context, filter dto.ListTradesFilter) ([]entity.Trade, error) {
	q := r.db.WithContext(ctx).Model(&entity.Trade{})

	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Direction != "" {
		q = q.Where("direction = ?", filter.Direction)
	}
	if filter.StrategyTag != "" {
		q = q.Where("strategy_tag = ?", filter.StrategyTag)
	}
	if filter.SymbolQuery != "" {
		q = q.Where("symbol LIKE ?", "%"+filter.SymbolQuery+"%")
	}

	var trades []entity.Trade
	if err := q.Order("trade_date ASC, id ASC").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// Update persists all fields of an existing trade.
func (r *tradeRepository) Update(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Save(trade).Error
}

// Delete removes a trade. Deleting does not recycle its id: the table uses
// AUTOINCREMENT, so ids are never reused.
func (r *tradeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Trade{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
