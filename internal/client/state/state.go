// Package state keeps a client-side view of trades consistent: a selected
// trade, the last-fetched trade list, and a deduplicated tag index derived
// from the list. Apply is a pure transition function; the hosting
// application owns the state's lifecycle (init at session start, reset at
// logout).
package state

import "time"

// Trade is the client-shaped trade, mirroring the wire DTO.
type Trade struct {
	ID          int64
	Symbol      string
	OpenDate    time.Time
	CloseDate   *time.Time
	OpeningNote *string
	ClosingNote *string
	Legs        []Leg
	Tags        []string
	ProjectID   int64
}

type Leg struct {
	Side       string
	Quantity   float64
	OpenPrice  float64
	ClosePrice *float64
	Strike     *float64
	Expiration *time.Time
	PutCall    *string
}

// TradePatch is a partial trade keyed by ID. Nil fields leave the merged
// trade's current value in place; a full server response simply sets every
// field.
type TradePatch struct {
	ID          int64
	Symbol      *string
	OpenDate    *time.Time
	CloseDate   *time.Time
	OpeningNote *string
	ClosingNote *string
	Legs        []Leg
	Tags        []string
	ProjectID   *int64
}

type State struct {
	Trade  *Trade
	Trades []Trade
	Tags   []string
}

type Event interface {
	isEvent()
}

// TradesFetched replaces the list and recomputes the tag index.
type TradesFetched struct {
	Trades []Trade
}

// TradeFetched merges the payload into the selected-trade slot and into the
// matching list entry.
type TradeFetched struct {
	Trade TradePatch
}

// TradeUpdated behaves exactly like TradeFetched.
type TradeUpdated struct {
	Trade TradePatch
}

func (TradesFetched) isEvent() {}
func (TradeFetched) isEvent()  {}
func (TradeUpdated) isEvent()  {}

// Apply computes the next state. The previous state is never mutated, and
// an unhandled event returns it unchanged.
func Apply(prev State, event Event) State {
	switch e := event.(type) {
	case TradesFetched:
		return State{
			Trade:  prev.Trade,
			Trades: append([]Trade(nil), e.Trades...),
			Tags:   collectTags(e.Trades),
		}
	case TradeFetched:
		return applyPatch(prev, e.Trade)
	case TradeUpdated:
		return applyPatch(prev, e.Trade)
	default:
		return prev
	}
}

// applyPatch performs both writes in one transition: the selected-trade
// merge and the find-and-replace in the list. Splitting them would expose
// an inconsistent intermediate state. When the list holds no entry with the
// merged id (not fetched yet, or fetched before this trade existed) the
// list stays untouched and only the selected slot moves.
func applyPatch(prev State, patch TradePatch) State {
	merged := mergeTrade(prev.Trade, patch)
	next := State{Trade: &merged, Trades: prev.Trades, Tags: prev.Tags}

	for i := range prev.Trades {
		if prev.Trades[i].ID == merged.ID {
			trades := append([]Trade(nil), prev.Trades...)
			trades[i] = merged
			next.Trades = trades
			break
		}
	}
	return next
}

func mergeTrade(current *Trade, patch TradePatch) Trade {
	var merged Trade
	if current != nil {
		merged = *current
	}
	merged.ID = patch.ID
	if patch.Symbol != nil {
		merged.Symbol = *patch.Symbol
	}
	if patch.OpenDate != nil {
		merged.OpenDate = *patch.OpenDate
	}
	if patch.CloseDate != nil {
		merged.CloseDate = patch.CloseDate
	}
	if patch.OpeningNote != nil {
		merged.OpeningNote = patch.OpeningNote
	}
	if patch.ClosingNote != nil {
		merged.ClosingNote = patch.ClosingNote
	}
	if patch.Legs != nil {
		merged.Legs = patch.Legs
	}
	if patch.Tags != nil {
		merged.Tags = patch.Tags
	}
	if patch.ProjectID != nil {
		merged.ProjectID = *patch.ProjectID
	}
	return merged
}

// collectTags dedups tag strings across the list, case-sensitive, keeping
// first-seen order.
func collectTags(trades []Trade) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, trade := range trades {
		for _, tag := range trade.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
