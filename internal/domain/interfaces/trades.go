package interfaces

import (
	"context"
	"errors"

	domain "trade-journal/internal/domain/entity/journal"
)

// ErrTradeNotFound is returned by lookups when no trade matches the id.
var ErrTradeNotFound = errors.New("trade not found")

type TradeRepository interface {
	GetTradeByID(ctx context.Context, id int64) (*domain.Trade, error)
	GetTradesByProject(ctx context.Context, projectID int64) ([]domain.Trade, error)
	GetLegsByTradeID(ctx context.Context, tradeID int64) ([]domain.Leg, error)
	GetTradeTags(ctx context.Context, tradeID int64) ([]domain.Tag, error)

	// AddTrade creates the trade, its legs and its tag associations in one
	// transaction; a failure leaves nothing behind.
	AddTrade(ctx context.Context, projectID int64, model *domain.TradeCreateModel) error
	// UpdateTrade touches only the fields the model carries. A non-nil legs
	// or tags slice replaces the full set.
	UpdateTrade(ctx context.Context, tradeID int64, model *domain.TradeUpdateModel) error
	// DeleteTradeByID is idempotent: deleting an id that no longer exists is
	// not an error.
	DeleteTradeByID(ctx context.Context, tradeID int64) error

	Close()
}
