// Package store is the service layer: the only code path that reads or
// writes persisted items. Handlers hand it a database handle per request
// and never touch SQL themselves.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/erazemk/cenik/internal/model"
)

// ErrDuplicateName is returned by CreateItem when another item already has
// the same name, compared case-insensitively.
var ErrDuplicateName = errors.New("item name already in use")

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateItem creates a new item after checking that no other item has the
// same name case-insensitively. The check and the insert share one write
// transaction so concurrent creates serialize instead of both passing the
// check.
func CreateItem(ctx context.Context, db *sql.DB, name, description string, price float64) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Use BEGIN IMMEDIATE semantics by acquiring a write lock early.
	if _, err := tx.ExecContext(ctx, "SELECT 1"); err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM items WHERE name = ? COLLATE NOCASE`, name,
	).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("item %q: %w", name, ErrDuplicateName)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking item name: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, description, price) VALUES (?, ?, ?)`,
		name, description, price,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, price FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Price)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items in insertion order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, price FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItems returns all items whose name contains the query,
// case-insensitively.
func SearchItems(ctx context.Context, db *sql.DB, query string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, price FROM items
		 WHERE name LIKE '%' || ? || '%' COLLATE NOCASE ORDER BY name`, query,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem replaces an item's name, description and price. Returns the
// updated item, or nil if no such item exists.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name, description string, price float64) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ? WHERE id = ?`,
		name, description, price, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking updated rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return GetItem(ctx, db, id)
}

// DeleteItem deletes an item by ID. Returns false if no such item exists.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking deleted rows: %w", err)
	}
	return affected > 0, nil
}

// ApplyDiscount reduces every item's price by percent (10 means 10% off),
// rounded to two decimals, in a single transaction. Returns the number of
// items updated.
func ApplyDiscount(ctx context.Context, db *sql.DB, percent float64) (int, error) {
	return applyDiscount(ctx, db, `SELECT id, price FROM items`, nil, percent)
}

// ApplyBulkDiscount is ApplyDiscount restricted to items priced above
// threshold.
func ApplyBulkDiscount(ctx context.Context, db *sql.DB, threshold, percent float64) (int, error) {
	return applyDiscount(ctx, db,
		`SELECT id, price FROM items WHERE price > ?`, []any{threshold}, percent)
}

func applyDiscount(ctx context.Context, db *sql.DB, query string, args []any, percent float64) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT 1"); err != nil {
		return 0, fmt.Errorf("acquiring lock: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("listing items for discount: %w", err)
	}

	type priced struct {
		id    int64
		price float64
	}
	var items []priced
	for rows.Next() {
		var p priced
		if err := rows.Scan(&p.id, &p.price); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("listing items for discount: %w", err)
	}
	rows.Close()

	factor := 1 - percent/100
	for _, p := range items {
		if _, err := tx.ExecContext(ctx,
			`UPDATE items SET price = ? WHERE id = ?`,
			round2(p.price*factor), p.id,
		); err != nil {
			return 0, fmt.Errorf("discounting item %d: %w", p.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing discount: %w", err)
	}

	return len(items), nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
