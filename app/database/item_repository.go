package database

import (
	"database/sql"
	"fmt"
)

// ItemRepositoryImpl handles database operations for Grand Exchange items
type ItemRepositoryImpl struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepositoryImpl {
	return &ItemRepositoryImpl{db: db}
}

func (r *ItemRepositoryImpl) UpsertItem(item Item) error {
	_, err := r.db.Exec(`
		INSERT INTO items (id, name, price, volume, "limit", value, highalch, lowalch, members, examine)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    volume = EXCLUDED.volume,
		    "limit" = EXCLUDED."limit",
		    value = EXCLUDED.value,
		    highalch = EXCLUDED.highalch,
		    lowalch = EXCLUDED.lowalch,
		    members = EXCLUDED.members,
		    examine = EXCLUDED.examine,
		    updated_at = NOW()
	`, item.ID, item.Name, item.Price, item.Volume, item.Limit,
		item.Value, item.HighAlch, item.LowAlch, item.Members, item.Examine)

	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	return nil
}

func (r *ItemRepositoryImpl) GetItem(id int64) (*Item, error) {
	var item Item
	err := r.db.QueryRow(`
		SELECT id, name, price, volume, "limit", value, highalch, lowalch, members, examine, updated_at
		FROM items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Price, &item.Volume, &item.Limit,
		&item.Value, &item.HighAlch, &item.LowAlch, &item.Members, &item.Examine, &item.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

func (r *ItemRepositoryImpl) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}
