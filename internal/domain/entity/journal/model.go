package journal

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTrade signals that a create payload does not describe a usable
// trade.
var ErrInvalidTrade = errors.New("a trade was not provided")

// LegInput carries one leg of an incoming create or update payload.
type LegInput struct {
	Side       string
	Quantity   decimal.Decimal
	OpenPrice  decimal.Decimal
	ClosePrice *decimal.Decimal
	Strike     *decimal.Decimal
	Expiration *time.Time
	PutCall    *string
}

// TradeCreateInput is the raw create payload before validation. Optional
// fields are nil when the caller omitted them.
type TradeCreateInput struct {
	Symbol      string
	OpenDate    *time.Time
	OpeningNote *string
	Legs        []LegInput
	Tags        []string
}

// TradeCreateModel is a validated, normalized trade ready for persistence.
type TradeCreateModel struct {
	Symbol      string
	OpenDate    time.Time
	OpeningNote *string
	Legs        []LegInput
	Tags        []string
}

// TradeUpdateInput is the raw update payload. Every field is optional; nil
// means "leave unchanged". A non-nil Legs or Tags slice replaces the whole
// set, never merges element by element.
type TradeUpdateInput struct {
	Symbol      *string
	OpenDate    *time.Time
	CloseDate   *time.Time
	OpeningNote *string
	ClosingNote *string
	Legs        []LegInput
	Tags        []string
}

// TradeUpdateModel mirrors TradeUpdateInput after normalization.
type TradeUpdateModel struct {
	Symbol      *string
	OpenDate    *time.Time
	CloseDate   *time.Time
	OpeningNote *string
	ClosingNote *string
	Legs        []LegInput
	Tags        []string
}

// NewTradeCreate validates a create payload and normalizes the symbol to
// uppercase. The baseline contract only checks the first leg: it must carry a
// side, a positive quantity and a non-negative open price.
func NewTradeCreate(in TradeCreateInput) (*TradeCreateModel, error) {
	if in.Symbol == "" || in.OpenDate == nil || len(in.Legs) == 0 {
		return nil, ErrInvalidTrade
	}
	first := in.Legs[0]
	if first.Side == "" || !first.Quantity.IsPositive() || first.OpenPrice.IsNegative() {
		return nil, ErrInvalidTrade
	}
	return &TradeCreateModel{
		Symbol:      strings.ToUpper(in.Symbol),
		OpenDate:    *in.OpenDate,
		OpeningNote: in.OpeningNote,
		Legs:        in.Legs,
		Tags:        in.Tags,
	}, nil
}

// NewTradeUpdate builds an update model from a raw payload. Supplied symbols
// are normalized to uppercase; everything else passes through untouched so
// absent fields stay absent.
func NewTradeUpdate(in TradeUpdateInput) *TradeUpdateModel {
	model := &TradeUpdateModel{
		Symbol:      in.Symbol,
		OpenDate:    in.OpenDate,
		CloseDate:   in.CloseDate,
		OpeningNote: in.OpeningNote,
		ClosingNote: in.ClosingNote,
		Legs:        in.Legs,
		Tags:        in.Tags,
	}
	if in.Symbol != nil {
		upper := strings.ToUpper(*in.Symbol)
		model.Symbol = &upper
	}
	return model
}
