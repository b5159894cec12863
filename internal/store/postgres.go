// Package store provides core.Store implementations: Postgres for
// production and an in-memory store for tests and local development.
package store

import (
	"context"
	"errors"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised by the unique index on
// the normalized product name.
const uniqueViolation = "23505"

const productColumns = "id, name, unit, category, brand, stock, status, image, created_at, updated_at"

// Postgres implements core.Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Postgres) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *Postgres) SearchProducts(ctx context.Context, name string) ([]core.Product, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id",
		name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *Postgres) GetProduct(ctx context.Context, id int64) (core.Product, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Product{}, core.ErrNotFound
	}
	return p, err
}

func (s *Postgres) FindProductIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"SELECT id FROM products WHERE LOWER(name) = LOWER($1)", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Postgres) FindProductIDByNameExcept(ctx context.Context, name string, exceptID int64) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"SELECT id FROM products WHERE LOWER(name) = LOWER($1) AND id <> $2",
		name, exceptID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Postgres) InsertProduct(ctx context.Context, p core.Product) (core.Product, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO products (name, unit, category, brand, stock, status, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+productColumns,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image)
	inserted, err := scanProduct(row)
	if err != nil {
		return core.Product{}, mapConstraintError(err)
	}
	return inserted, nil
}

func (s *Postgres) UpdateProductWithLog(ctx context.Context, p core.Product, entry *core.InventoryLogEntry) (core.Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return core.Product{}, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE products
		 SET name = $1, unit = $2, category = $3, brand = $4, stock = $5, status = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING `+productColumns,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.ID)
	updated, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Product{}, core.ErrNotFound
	}
	if err != nil {
		return core.Product{}, mapConstraintError(err)
	}

	if entry != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO inventory_logs (product_id, old_stock, new_stock, changed_by)
			 VALUES ($1, $2, $3, $4)`,
			entry.ProductID, entry.OldStock, entry.NewStock, entry.ChangedBy)
		if err != nil {
			return core.Product{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return core.Product{}, err
	}
	return updated, nil
}

func (s *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	// No existence check: deleting an unknown id is a no-op, and log rows
	// referencing the product are intentionally left in place.
	_, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (s *Postgres) ProductHistory(ctx context.Context, productID int64) ([]core.InventoryLogEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, product_id, old_stock, new_stock, changed_by, created_at
		 FROM inventory_logs
		 WHERE product_id = $1
		 ORDER BY created_at DESC, id DESC`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []core.InventoryLogEntry{}
	for rows.Next() {
		var e core.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldStock, &e.NewStock, &e.ChangedBy, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// mapConstraintError translates a unique violation on the normalized name
// index into core.ErrDuplicateName.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return core.ErrDuplicateName
	}
	return err
}

func scanProduct(row pgx.Row) (core.Product, error) {
	var p core.Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanProducts(rows pgx.Rows) ([]core.Product, error) {
	products := []core.Product{}
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
