package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const tradeColumns = `id, project_id, symbol, open_date, close_date, opening_note, closing_note`

func scanTradeInto(row pgx.Row, trade *domain.Trade) error {
	return row.Scan(
		&trade.ID,
		&trade.ProjectID,
		&trade.Symbol,
		&trade.OpenDate,
		&trade.CloseDate,
		&trade.OpeningNote,
		&trade.ClosingNote,
	)
}

func (r *Repository) GetTradeByID(ctx context.Context, id int64) (*domain.Trade, error) {
	query := fmt.Sprintf(`SELECT %s FROM trades WHERE id=$1`, tradeColumns)

	trade := &domain.Trade{}
	if err := scanTradeInto(r.pool.QueryRow(ctx, query, id), trade); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrTradeNotFound
		}
		return nil, err
	}
	return trade, nil
}

func (r *Repository) GetTradesByProject(ctx context.Context, projectID int64) ([]domain.Trade, error) {
	query := fmt.Sprintf(`SELECT %s FROM trades WHERE project_id=$1 ORDER BY id`, tradeColumns)

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var trade domain.Trade
		if err := scanTradeInto(rows, &trade); err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

func (r *Repository) GetLegsByTradeID(ctx context.Context, tradeID int64) ([]domain.Leg, error) {
	const query = `
		SELECT id, trade_id, side, quantity::text, open_price::text, close_price::text, strike::text, expiration, put_call
		FROM legs
		WHERE trade_id=$1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []domain.Leg
	for rows.Next() {
		var (
			leg        domain.Leg
			quantity   string
			openPrice  string
			closePrice *string
			strike     *string
		)
		if err := rows.Scan(&leg.ID, &leg.TradeID, &leg.Side, &quantity, &openPrice, &closePrice, &strike, &leg.Expiration, &leg.PutCall); err != nil {
			return nil, err
		}
		if leg.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
		if leg.OpenPrice, err = parseDecimal(openPrice); err != nil {
			return nil, err
		}
		if leg.ClosePrice, err = parseNullDecimal(closePrice); err != nil {
			return nil, err
		}
		if leg.Strike, err = parseNullDecimal(strike); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func (r *Repository) GetTradeTags(ctx context.Context, tradeID int64) ([]domain.Tag, error) {
	const query = `
		SELECT t.id, t.name
		FROM tags t
		INNER JOIN trade_tags tt ON tt.tag_id = t.id
		WHERE tt.trade_id=$1
		ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *Repository) AddTrade(ctx context.Context, projectID int64, model *domain.TradeCreateModel) error {
	if model == nil {
		return errors.New("trade model is nil")
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO trades (project_id, symbol, open_date, opening_note)
			VALUES ($1,$2,$3,$4)
			RETURNING id`

		var tradeID int64
		if err := tx.QueryRow(ctx, query, projectID, model.Symbol, model.OpenDate, model.OpeningNote).Scan(&tradeID); err != nil {
			return err
		}
		if err := insertLegs(ctx, tx, tradeID, model.Legs); err != nil {
			return err
		}
		return insertTags(ctx, tx, tradeID, model.Tags)
	})
}

func (r *Repository) UpdateTrade(ctx context.Context, tradeID int64, model *domain.TradeUpdateModel) error {
	if model == nil {
		return errors.New("trade model is nil")
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		set, args := buildTradeSet(tradeID, model)
		if len(set) > 0 {
			query := fmt.Sprintf(`UPDATE trades SET %s WHERE id=$1`, strings.Join(set, ", "))
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return err
			}
		}
		if model.Legs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM legs WHERE trade_id=$1`, tradeID); err != nil {
				return err
			}
			if err := insertLegs(ctx, tx, tradeID, model.Legs); err != nil {
				return err
			}
		}
		if model.Tags != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM trade_tags WHERE trade_id=$1`, tradeID); err != nil {
				return err
			}
			if err := insertTags(ctx, tx, tradeID, model.Tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTradeByID removes the trade row; legs and tag joins go with it via
// cascading foreign keys. Zero rows affected is fine, deletes are idempotent
// at this layer.
func (r *Repository) DeleteTradeByID(ctx context.Context, tradeID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trades WHERE id=$1`, tradeID)
	return err
}

// buildTradeSet collects SET clauses for the fields the model carries.
// Argument $1 is reserved for the trade id.
func buildTradeSet(tradeID int64, model *domain.TradeUpdateModel) ([]string, []interface{}) {
	set := make([]string, 0, 5)
	args := []interface{}{tradeID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if model.Symbol != nil {
		add("symbol", *model.Symbol)
	}
	if model.OpenDate != nil {
		add("open_date", *model.OpenDate)
	}
	if model.CloseDate != nil {
		add("close_date", *model.CloseDate)
	}
	if model.OpeningNote != nil {
		add("opening_note", *model.OpeningNote)
	}
	if model.ClosingNote != nil {
		add("closing_note", *model.ClosingNote)
	}
	return set, args
}

func insertLegs(ctx context.Context, tx pgx.Tx, tradeID int64, legs []domain.LegInput) error {
	const query = `
		INSERT INTO legs (trade_id, side, quantity, open_price, close_price, strike, expiration, put_call)
		VALUES ($1,$2,$3::numeric,$4::numeric,$5::numeric,$6::numeric,$7,$8)`

	for _, leg := range legs {
		_, err := tx.Exec(ctx, query,
			tradeID,
			leg.Side,
			leg.Quantity.String(),
			leg.OpenPrice.String(),
			nullDecimalString(leg.ClosePrice),
			nullDecimalString(leg.Strike),
			leg.Expiration,
			leg.PutCall,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertTags(ctx context.Context, tx pgx.Tx, tradeID int64, names []string) error {
	const upsertTag = `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
		RETURNING id`
	const linkTag = `
		INSERT INTO trade_tags (trade_id, tag_id) VALUES ($1,$2)
		ON CONFLICT DO NOTHING`

	for _, name := range names {
		var tagID int64
		if err := tx.QueryRow(ctx, upsertTag, name).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, linkTag, tradeID, tagID); err != nil {
			return err
		}
	}
	return nil
}
