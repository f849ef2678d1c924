package storage

import (
	"context"
	"database/sql"

	"fiwa/internal/core"
)

// InsertItem stores a new transaction row and returns its generated id.
func (s *Store) InsertItem(ctx context.Context, item core.Item) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		var exchangeDate sql.NullString
		if !item.ExchangeRateDate.IsZero() {
			exchangeDate = sql.NullString{String: formatTime(item.ExchangeRateDate), Valid: true}
		}
		res, err := db.ExecContext(ctx, `
			INSERT INTO items
			(item_uuid, project_id, name, note, price, price_final, currency, currency_final,
			 bought_date, bought_by_id, bought_for_id, added_by_id, exchange_rate, exchange_rate_date, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ItemUUID, item.ProjectID, item.Name, item.Note, item.Price, item.PriceFinal,
			item.Currency, item.CurrencyFinal, formatTime(item.BoughtDate),
			nullID(item.BoughtByID), nullID(item.BoughtForID), nullID(item.AddedByID),
			item.ExchangeRate, exchangeDate, encodeInt64s(item.Tags))
		if err != nil {
			return mapConstraint(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, s.wrap("create item", err)
}

// ListItems returns the project's transactions, most recent purchase
// first.
func (s *Store) ListItems(ctx context.Context, projectID int64) ([]core.Item, error) {
	var items []core.Item
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT item_id, item_uuid, project_id, name, note, price, price_final,
			       currency, currency_final, bought_date, bought_by_id, bought_for_id,
			       added_by_id, exchange_rate, exchange_rate_date, tags
			FROM items WHERE project_id = ? ORDER BY bought_date DESC, item_id DESC`, projectID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it core.Item
			var boughtDate, tags string
			var exchangeDate sql.NullString
			var boughtBy, boughtFor, addedBy sql.NullInt64
			if err := rows.Scan(&it.ItemID, &it.ItemUUID, &it.ProjectID, &it.Name, &it.Note,
				&it.Price, &it.PriceFinal, &it.Currency, &it.CurrencyFinal, &boughtDate,
				&boughtBy, &boughtFor, &addedBy, &it.ExchangeRate, &exchangeDate, &tags); err != nil {
				return err
			}
			if it.BoughtDate, err = parseTime(boughtDate); err != nil {
				return err
			}
			if exchangeDate.Valid {
				if it.ExchangeRateDate, err = parseTime(exchangeDate.String); err != nil {
					return err
				}
			}
			it.BoughtByID = boughtBy.Int64
			it.BoughtForID = boughtFor.Int64
			it.AddedByID = addedBy.Int64
			it.Tags = decodeInt64s(tags)
			items = append(items, it)
		}
		return rows.Err()
	})
	return items, s.wrap("list items", err)
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
