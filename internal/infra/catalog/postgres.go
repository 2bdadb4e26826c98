package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louardi/souk-assistant-go/internal/domain"

	_ "github.com/lib/pq"
)

// Postgres serves the catalog from a real database. It implements the same
// two ports as Memory and is selected via CATALOG_DSN in main.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens the connection, verifies it and bootstraps the schema.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.ensureSchema(); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) ensureSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id       SERIAL PRIMARY KEY,
			name     TEXT NOT NULL UNIQUE,
			icon     TEXT NOT NULL DEFAULT '',
			color    TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS products (
			id          SERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			price       NUMERIC(10,2) NOT NULL,
			image       TEXT NOT NULL DEFAULT '',
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			reviews     INTEGER NOT NULL DEFAULT 0,
			badge       TEXT NOT NULL DEFAULT '',
			category_id INTEGER REFERENCES categories(id),
			description TEXT NOT NULL DEFAULT '',
			stock       INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

const productColumns = `id, name, price, image, rating, reviews, badge, COALESCE(category_id, 0), description, stock`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Rating,
		&p.Reviews, &p.Badge, &p.CategoryID, &p.Description, &p.Stock)
	return p, err
}

func (p *Postgres) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		prod, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, prod)
	}
	return out, rows.Err()
}

// ListAll returns every product ordered by id, the catalog order.
func (p *Postgres) ListAll(ctx context.Context) ([]domain.Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`)
}

// ByID looks a product up by its numeric id.
func (p *Postgres) ByID(ctx context.Context, id int) (*domain.Product, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	prod, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Resource: "product", ID: strconv.Itoa(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &prod, nil
}

// ByCategory returns the category's products in catalog order.
func (p *Postgres) ByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY id`, categoryID)
}

// TopRated returns up to limit products ordered by rating, best first.
func (p *Postgres) TopRated(ctx context.Context, limit int) ([]domain.Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rating DESC, id LIMIT $1`, limit)
}

// Promotional returns products carrying a promotion or popularity badge.
func (p *Postgres) Promotional(ctx context.Context) ([]domain.Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE badge IN ($1, $2) ORDER BY id`,
		domain.BadgePromotion, domain.BadgePopular)
}

// Search does a case-insensitive substring match over name and description.
func (p *Postgres) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		 ORDER BY id`, q)
}

// ListCategories returns every category in taxonomy order.
func (p *Postgres) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, icon, color, keywords FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CategoryByName looks a category up by its exact display name.
func (p *Postgres) CategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT id, name, icon, color, keywords FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Resource: "category", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Keywords are stored comma-separated; empty string means none.
func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var c domain.Category
	var keywords string
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &keywords); err != nil {
		return c, fmt.Errorf("scan category: %w", err)
	}
	if keywords != "" {
		c.Keywords = strings.Split(keywords, ",")
	}
	return c, nil
}

// Seed inserts the demo catalog if the products table is empty. Lets a fresh
// database come up with the same data the in-memory store ships with.
func (p *Postgres) Seed(ctx context.Context) error {
	var count int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range SeedCategories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, icon, color, keywords) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.Name, c.Icon, c.Color, strings.Join(c.Keywords, ",")); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	for _, prod := range SeedProducts() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, price, image, rating, reviews, badge, category_id, description, stock)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			prod.ID, prod.Name, prod.Price, prod.Image, prod.Rating, prod.Reviews,
			prod.Badge, prod.CategoryID, prod.Description, prod.Stock); err != nil {
			return fmt.Errorf("seed product %q: %w", prod.Name, err)
		}
	}
	return tx.Commit()
}
