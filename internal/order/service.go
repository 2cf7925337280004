package order

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/envelope"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	FetchByID(ctx context.Context, orderID string) envelope.Result[Order]
	FetchByOwner(ctx context.Context, ownerID uint) envelope.Result[[]Order]
	List(ctx context.Context, opts ListOptions) ([]*Order, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// FetchByID returns an order to its owner or to an admin. Orders belonging to
// someone else are reported as not found.
func (s *service) FetchByID(ctx context.Context, orderID string) envelope.Result[Order] {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchByID"),
		zap.String("order_id", orderID),
	)

	if strings.TrimSpace(orderID) == "" {
		return envelope.Fail[Order](ErrOrderIDRequired)
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return envelope.Fail[Order](ErrInvalidOrderID)
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return envelope.Fail[Order](ErrUnauthorized)
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return envelope.Fail[Order](ErrOrderNotFound)
	}
	if err != nil {
		log.Error("failed to fetch order", zap.Error(err))
		return envelope.Fail[Order](ErrFailedGetOrder)
	}

	if o.UserID != userID && !utils.IsAdmin(ctx) {
		log.Warn("order requested by non-owner", zap.Uint("user_id", userID))
		return envelope.Fail[Order](ErrOrderNotFound)
	}

	return envelope.OK(*o)
}

// FetchByOwner lists an owner's orders, newest first. An owner with no orders
// gets an empty list, not a failure.
func (s *service) FetchByOwner(ctx context.Context, ownerID uint) envelope.Result[[]Order] {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchByOwner"),
		zap.Uint("owner_id", ownerID),
	)

	if ownerID == 0 {
		return envelope.Fail[[]Order](ErrOwnerRequired)
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return envelope.Fail[[]Order](ErrUnauthorized)
	}
	if userID != ownerID && !utils.IsAdmin(ctx) {
		return envelope.Fail[[]Order](ErrForbidden)
	}

	orders, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return envelope.Fail[[]Order](ErrFailedListOrders)
	}

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, *o)
	}
	return envelope.OK(out)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	if !utils.IsAdmin(ctx) {
		return nil, 0, ErrForbidden
	}

	opts.Status = strings.ToLower(strings.TrimSpace(opts.Status))
	if opts.Status != "" && !Status(opts.Status).Valid() {
		return nil, 0, ErrInvalidStatus
	}
	opts.Limit, opts.Page, _ = utils.Paginate(opts.Limit, opts.Page)

	orders, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, 0, ErrFailedListOrders
	}

	log.Info("list orders success",
		zap.Int("count", len(orders)),
		zap.Int("total", total),
		zap.String("status", opts.Status),
	)

	return orders, total, nil
}
