package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lostfound/internal/models"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var _ Items = (*ItemRepository)(nil)

// SQLite TIMESTAMP format, matches what the driver parses back into time.Time.
const timeLayout = "2006-01-02 15:04:05"

const (
	itemColumns = `id, title, description, type, location, image, date_reported, is_resolved, user_id`

	insertItemSQL = `INSERT INTO items (title, description, type, location, image, date_reported, is_resolved, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectItemByIDSQL     = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	selectItemsByOwnerSQL = `SELECT ` + itemColumns + ` FROM items WHERE user_id = ? ORDER BY date_reported DESC, id DESC`
	selectRecentItemsSQL  = `SELECT ` + itemColumns + ` FROM items ORDER BY date_reported DESC, id DESC LIMIT ?`
	updateItemResolvedSQL = `UPDATE items SET is_resolved = ? WHERE id = ?`
	deleteItemSQL         = `DELETE FROM items WHERE id = ?`

	selectItemStatsSQL = `SELECT COUNT(*),
		COALESCE(SUM(type = 'Lost'), 0),
		COALESCE(SUM(type = 'Found'), 0),
		COALESCE(SUM(is_resolved), 0),
		COALESCE(SUM(user_id = ?), 0)
		FROM items`
)

// Create inserts a new item and returns its ID.
func (r *ItemRepository) Create(ctx context.Context, it models.Item) (int, error) {
	// image is nullable; store NULL rather than an empty string
	var image *string
	if it.Image != "" {
		image = &it.Image
	}

	res, err := r.db.ExecContext(ctx, insertItemSQL,
		it.Title,
		it.Description,
		it.Type,
		it.Location,
		image,
		it.DateReported.UTC().Format(timeLayout),
		it.IsResolved,
		it.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item %q: %w", it.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for item %q: %w", it.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches an item by id. Returns (nil, nil) if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, selectItemByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select item %d: %w", id, err)
	}
	return &it, nil
}

// ListByOwner returns all items owned by ownerID, newest first.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error) {
	return r.list(ctx, selectItemsByOwnerSQL, ownerID)
}

// ListRecent returns the newest items across all users, capped at limit.
func (r *ItemRepository) ListRecent(ctx context.Context, limit int) ([]models.Item, error) {
	return r.list(ctx, selectRecentItemsSQL, limit)
}

func (r *ItemRepository) list(ctx context.Context, query string, arg any) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]models.Item, 0, 16)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

// SetResolved persists a new resolution state for the item.
func (r *ItemRepository) SetResolved(ctx context.Context, id int, resolved bool) error {
	res, err := r.db.ExecContext(ctx, updateItemResolvedSQL, resolved, id)
	if err != nil {
		return fmt.Errorf("update item %d resolved: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update item %d resolved: no such item", id)
	}
	return nil
}

// Delete removes the item row permanently.
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteItemSQL, id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

// Stats computes the dashboard counts in a single aggregate query.
func (r *ItemRepository) Stats(ctx context.Context, ownerID int) (models.Stats, error) {
	var st models.Stats
	err := r.db.QueryRowContext(ctx, selectItemStatsSQL, ownerID).
		Scan(&st.Total, &st.Lost, &st.Found, &st.Resolved, &st.Mine)
	if err != nil {
		return models.Stats{}, fmt.Errorf("select item stats: %w", err)
	}
	return st, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (models.Item, error) {
	var (
		it    models.Item
		image sql.NullString
	)
	err := s.Scan(
		&it.ID,
		&it.Title,
		&it.Description,
		&it.Type,
		&it.Location,
		&image,
		&it.DateReported,
		&it.IsResolved,
		&it.UserID,
	)
	if err != nil {
		return models.Item{}, err
	}
	it.DateReported = it.DateReported.UTC()
	if image.Valid {
		it.Image = image.String
	}
	return it, nil
}
