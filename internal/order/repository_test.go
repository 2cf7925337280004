package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "order_number", "user_id", "items", "amounts", "net_amount",
	"status", "payment_status", "created_at",
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(orderRowColumns).AddRow(
			"o1", "ORD-1", 7,
			[]byte(`[{"productId":"p1","name":"Mug","unitPrice":"50","quantity":2}]`),
			[]byte(`{"total":"500","tax":"12.5"}`),
			nil, "shipped", "paid", time.Now(),
		)
		mock.ExpectQuery(`(?s)SELECT .* FROM orders\s+WHERE id = \$1`).
			WithArgs("o1").
			WillReturnRows(rows)

		o, err := repo.GetByID(ctx, "o1")
		require.NoError(t, err)
		assert.Equal(t, "ORD-1", o.OrderNumber)
		assert.Equal(t, uint(7), o.UserID)
		require.Len(t, o.Items, 1)
		assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)))
		require.NotNil(t, o.Amounts)
		require.NotNil(t, o.Amounts.Total)
		assert.True(t, o.Amounts.Total.Equal(decimal.NewFromInt(500)))
		assert.Nil(t, o.NetAmount)
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, PaymentPaid, o.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NULL items stays absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(orderRowColumns).AddRow(
			"o2", "ORD-2", 7, nil, nil, "99.90", "", "unpaid", time.Now(),
		)
		mock.ExpectQuery(`SELECT`).WithArgs("o2").WillReturnRows(rows)

		o, err := repo.GetByID(ctx, "o2")
		require.NoError(t, err)
		assert.Nil(t, o.Items)
		assert.Nil(t, o.Amounts)
		require.NotNil(t, o.NetAmount)
		assert.Equal(t, "99.9", o.NetAmount.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(orderRowColumns))

		_, err = repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Bad items document", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(orderRowColumns).AddRow(
			"o3", "ORD-3", 7, []byte(`{not json`), nil, nil, "pending", "unpaid", time.Now(),
		)
		mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

		_, err = repo.GetByID(ctx, "o3")
		assert.ErrorContains(t, err, "decode items")
	})
}

func TestRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(orderRowColumns).
			AddRow("o2", "ORD-2", 7, []byte(`[]`), nil, nil, "pending", "unpaid", time.Now()).
			AddRow("o1", "ORD-1", 7, []byte(`[]`), nil, nil, "delivered", "paid", time.Now().Add(-time.Hour))

		mock.ExpectQuery(`(?s)SELECT .* FROM orders\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`).
			WithArgs(uint(7)).
			WillReturnRows(rows)

		orders, err := repo.ListByOwner(ctx, 7)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "o2", orders[0].ID)
		assert.NotNil(t, orders[0].Items)
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(orderRowColumns))

		orders, err := repo.ListByOwner(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, []*Order{}, orders)
	})

	t.Run("DB Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db error"))

		_, err = repo.ListByOwner(ctx, 7)
		assert.Error(t, err)
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Status filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE status = \$1`).
			WithArgs("shipped").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(`(?s)SELECT .* FROM orders WHERE status = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2\s+OFFSET \$3`).
			WithArgs("shipped", 20, 0).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow("o1", "ORD-1", 7, nil, nil, nil, "shipped", "paid", time.Now()))

		orders, total, err := repo.List(ctx, ListOptions{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, orders, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM orders$`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`(?s)SELECT .* LIMIT \$1\s+OFFSET \$2`).
			WithArgs(5, 5).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		_, total, err := repo.List(ctx, ListOptions{Limit: 5, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("Query Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db error"))

		_, _, err = repo.List(ctx, ListOptions{})
		assert.Error(t, err)
	})
}
