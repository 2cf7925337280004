package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByOwner(ctx context.Context, userID uint) ([]*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
		id,
		order_number,
		user_id,
		items,
		amounts,
		net_amount,
		status,
		payment_status,
		created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o         Order
		items     []byte
		amounts   []byte
		netAmount decimal.NullDecimal
		status    string
		payment   string
	)

	if err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&items,
		&amounts,
		&netAmount,
		&status,
		&payment,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}

	// NULL items stays nil so total resolution can tell "absent" from "empty".
	if items != nil {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	if amounts != nil {
		o.Amounts = &Amounts{}
		if err := json.Unmarshal(amounts, o.Amounts); err != nil {
			return nil, fmt.Errorf("decode amounts: %w", err)
		}
	}
	if netAmount.Valid {
		o.NetAmount = &netAmount.Decimal
	}
	o.Status = Status(status)
	o.PaymentStatus = PaymentStatus(payment)

	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("order_id", orderID),
	)

	query := `SELECT` + orderColumns + `
	FROM orders
	WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("order not found")
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to get order", zap.Error(err))
		return nil, err
	}

	return o, nil
}

func (r *repository) ListByOwner(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByOwner"),
		zap.Uint("user_id", userID),
	)

	query := `SELECT` + orderColumns + `
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows, log)
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()
	limit, _, offset := utils.Paginate(opts.Limit, opts.Page)

	whereSQL := ""
	args := []any{}
	if opts.Status != "" {
		args = append(args, opts.Status)
		whereSQL = " WHERE status = $1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT` + orderColumns + `
	FROM orders` + whereSQL + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collect(rows, log)
	if err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(orders)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, total, nil
}

func collect(rows *sql.Rows, log *zap.Logger) ([]*Order, error) {
	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
