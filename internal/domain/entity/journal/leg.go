package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg is one component (buy/sell, option/stock) of a trade. Strike,
// expiration and put/call are only present on options-style legs.
type Leg struct {
	ID         int64
	TradeID    int64
	Side       string
	Quantity   decimal.Decimal
	OpenPrice  decimal.Decimal
	ClosePrice *decimal.Decimal
	Strike     *decimal.Decimal
	Expiration *time.Time
	PutCall    *string
}
