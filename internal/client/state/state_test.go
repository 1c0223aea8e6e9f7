package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownEvent struct{}

func (unknownEvent) isEvent() {}

func fetchedList() []Trade {
	openDate := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	return []Trade{
		{ID: 1, Symbol: "SPY", OpenDate: openDate, Tags: []string{"a", "B"}},
		{ID: 2, Symbol: "AAPL", OpenDate: openDate, Tags: []string{"B", "a", "c"}},
	}
}

func TestTradesFetchedReplacesListAndDedupsTags(t *testing.T) {
	next := Apply(State{}, TradesFetched{Trades: fetchedList()})

	require.Len(t, next.Trades, 2)
	// Case-sensitive dedup, first-seen order.
	assert.Equal(t, []string{"a", "B", "c"}, next.Tags)
}

func TestTradesFetchedDoesNotAliasTheEventSlice(t *testing.T) {
	list := fetchedList()
	next := Apply(State{}, TradesFetched{Trades: list})

	list[0].Symbol = "QQQ"
	assert.Equal(t, "SPY", next.Trades[0].Symbol)
}

func TestTradeFetchedReplacesOnlyMatchingEntry(t *testing.T) {
	prev := Apply(State{}, TradesFetched{Trades: fetchedList()})

	symbol := "MSFT"
	next := Apply(prev, TradeFetched{Trade: TradePatch{ID: 2, Symbol: &symbol}})

	require.NotNil(t, next.Trade)
	assert.Equal(t, "MSFT", next.Trade.Symbol)
	assert.Equal(t, "MSFT", next.Trades[1].Symbol)
	assert.Equal(t, "SPY", next.Trades[0].Symbol)

	// Previous state stays intact.
	assert.Equal(t, "AAPL", prev.Trades[1].Symbol)
}

func TestTradeUpdatedMergesOverSelectedTrade(t *testing.T) {
	note := "bought the dip"
	openDate := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	prev := State{
		Trade:  &Trade{ID: 2, Symbol: "AAPL", OpenDate: openDate, OpeningNote: &note},
		Trades: []Trade{{ID: 2, Symbol: "AAPL", OpenDate: openDate}},
	}

	symbol := "MSFT"
	next := Apply(prev, TradeUpdated{Trade: TradePatch{ID: 2, Symbol: &symbol}})

	require.NotNil(t, next.Trade)
	assert.Equal(t, "MSFT", next.Trade.Symbol)
	// Fields absent from the patch survive the merge.
	require.NotNil(t, next.Trade.OpeningNote)
	assert.Equal(t, note, *next.Trade.OpeningNote)
	assert.Equal(t, openDate, next.Trade.OpenDate)
}

func TestTradeFetchedForUnknownIDLeavesListUntouched(t *testing.T) {
	prev := Apply(State{}, TradesFetched{Trades: fetchedList()})

	symbol := "TSLA"
	next := Apply(prev, TradeFetched{Trade: TradePatch{ID: 99, Symbol: &symbol}})

	require.NotNil(t, next.Trade)
	assert.Equal(t, int64(99), next.Trade.ID)
	assert.Equal(t, prev.Trades, next.Trades)
}

func TestUnhandledEventIsIdentity(t *testing.T) {
	prev := Apply(State{}, TradesFetched{Trades: fetchedList()})
	next := Apply(prev, unknownEvent{})
	assert.Equal(t, prev, next)
}
