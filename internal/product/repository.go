package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
		id,
		name,
		slug,
		category,
		description,
		price,
		original_price,
		images,
		variants,
		stock,
		status,
		created_at,
		updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p             Product
		description   sql.NullString
		originalPrice decimal.NullDecimal
		images        []string
		variants      []byte
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Category,
		&description,
		&p.Price,
		&originalPrice,
		pq.Array(&images),
		&variants,
		&p.Stock,
		&p.Status,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = &description.String
	}
	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Decimal
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	p.Images = images
	if p.Images == nil {
		p.Images = []string{}
	}
	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants: %w", err)
		}
	}

	return &p, nil
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProductByID"),
		zap.String("product_id", opts.ProductID),
	)

	query := `SELECT` + productColumns + `
	FROM products
	WHERE id = $1`
	args := []any{opts.ProductID}
	if opts.OnlyActive {
		query += ` AND status = $2`
		args = append(args, utils.ProductStatusActive)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("product not found")
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	start := time.Now()
	limit, _, offset := utils.Paginate(opts.Limit, opts.Page)

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if !opts.IncludeDisabled {
		args = append(args, utils.ProductStatusActive)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- count ----------
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- query ----------
	query := `SELECT` + productColumns + `
	FROM products` + whereSQL + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

func documentArgs(p *Product) (any, []byte, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	variants := p.Variants
	if variants == nil {
		variants = []Variant{}
	}
	encoded, err := json.Marshal(variants)
	if err != nil {
		return nil, nil, fmt.Errorf("encode variants: %w", err)
	}
	return pq.Array(images), encoded, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("slug", p.Slug),
	)

	images, variants, err := documentArgs(p)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO products (
		name, slug, category, description, price, original_price, images, variants, stock, status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		p.Name, p.Slug, p.Category, p.Description, p.Price, p.OriginalPrice,
		images, variants, p.Stock, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("product_id", p.ID),
	)

	images, variants, err := documentArgs(p)
	if err != nil {
		return err
	}

	query := `
	UPDATE products
	SET name = $2,
		slug = $3,
		category = $4,
		description = $5,
		price = $6,
		original_price = $7,
		images = $8,
		variants = $9,
		stock = $10,
		status = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	var updatedAt time.Time
	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Category, p.Description, p.Price, p.OriginalPrice,
		images, variants, p.Stock, p.Status,
	).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return err
	}

	p.UpdatedAt = &updatedAt
	log.Info("product updated")
	return nil
}

func (r *repository) Delete(ctx context.Context, productID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.String("product_id", productID),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	log.Info("product deleted")
	return nil
}
