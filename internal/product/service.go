package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront-be/internal/envelope"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageStore removes uploaded product images that are no longer referenced.
type ImageStore interface {
	Delete(ctx context.Context, url, bucket string) bool
}

type Service interface {
	FetchByID(ctx context.Context, productID string) envelope.Result[Product]
	GetByID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, productID string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, productID string) error
}

type service struct {
	repo   Repository
	images ImageStore
	bucket string
}

func NewService(repo Repository, images ImageStore, bucket string) Service {
	return &service{repo: repo, images: images, bucket: bucket}
}

// FetchByID never returns an error value; every outcome is carried by the envelope.
func (s *service) FetchByID(ctx context.Context, productID string) envelope.Result[Product] {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchByID"),
		zap.String("product_id", productID),
	)

	if err := checkID(productID); err != nil {
		return envelope.Fail[Product](err)
	}

	p, err := s.repo.GetProductByID(ctx, GetProductOptions{
		ProductID:  productID,
		OnlyActive: !utils.IsAdmin(ctx),
	})
	if errors.Is(err, ErrProductNotFound) {
		return envelope.Fail[Product](ErrProductNotFound)
	}
	if err != nil {
		log.Error("failed to fetch product", zap.Error(err))
		return envelope.Fail[Product](ErrFailedGetProduct)
	}

	return envelope.OK(*p)
}

func (s *service) GetByID(ctx context.Context, productID string) (*Product, error) {
	return s.FetchByID(ctx, productID).Unwrap()
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	start := time.Now()

	/* ---------- INPUT NORMALIZATION ---------- */

	opts.Limit, opts.Page, _ = utils.Paginate(opts.Limit, opts.Page)
	opts.Search = strings.TrimSpace(opts.Search)
	if !utils.IsAdmin(ctx) {
		opts.IncludeDisabled = false
	}

	log.Debug("list products requested",
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
		zap.String("category", opts.Category),
		zap.String("search", opts.Search),
		zap.Bool("include_disabled", opts.IncludeDisabled),
	)

	/* ---------- FETCH DATA ---------- */

	products, total, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, ErrFailedListProducts
	}

	log.Info("list products success",
		zap.Int("count", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &ListResult{
		Items:      products,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
	}, nil
}

func normalizeStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", utils.ProductStatusActive:
		return utils.ProductStatusActive, nil
	case utils.ProductStatusDisable:
		return utils.ProductStatusDisable, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	p := &Product{
		Name:          strings.TrimSpace(input.Name),
		Category:      strings.TrimSpace(input.Category),
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Images:        input.Images,
		Variants:      input.Variants,
		Stock:         input.Stock,
		Status:        status,
	}
	p.Slug = utils.Slugify(p.Name)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, ErrFailedSaveProduct
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, input UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", productID),
	)

	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}
	if err := checkID(productID); err != nil {
		return nil, err
	}
	if input.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	current, err := s.repo.GetProductByID(ctx, GetProductOptions{ProductID: productID})
	if errors.Is(err, ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, ErrFailedGetProduct
	}

	next := *current
	if input.Name != nil {
		next.Name = strings.TrimSpace(*input.Name)
		next.Slug = utils.Slugify(next.Name)
	}
	if input.Category != nil {
		next.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		next.Description = input.Description
	}
	if input.Price != nil {
		next.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		next.OriginalPrice = input.OriginalPrice
	}
	if input.Images != nil {
		next.Images = *input.Images
	}
	if input.Variants != nil {
		next.Variants = *input.Variants
	}
	if input.Stock != nil {
		next.Stock = *input.Stock
	}
	if input.Status != nil {
		if next.Status, err = normalizeStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, ErrFailedSaveProduct
	}

	if input.Images != nil {
		s.deleteImages(ctx, removedImages(current.Images, next.Images))
	}

	return &next, nil
}

func (s *service) Delete(ctx context.Context, productID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("product_id", productID),
	)

	if !utils.IsAdmin(ctx) {
		return ErrForbidden
	}
	if err := checkID(productID); err != nil {
		return err
	}

	current, err := s.repo.GetProductByID(ctx, GetProductOptions{ProductID: productID})
	if errors.Is(err, ErrProductNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return ErrFailedGetProduct
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error("failed to delete product", zap.Error(err))
		return ErrFailedDeleteProduct
	}

	s.deleteImages(ctx, current.Images)
	return nil
}

// deleteImages is best effort: the product row is already committed.
// checkID rejects ids that could never match a row, before any query runs.
func checkID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return ErrProductIDRequired
	}
	if _, err := uuid.Parse(productID); err != nil {
		return ErrInvalidProductID
	}
	return nil
}

func (s *service) deleteImages(ctx context.Context, urls []string) {
	if s.images == nil || len(urls) == 0 {
		return
	}
	log := logger.FromCtx(ctx)
	for _, u := range urls {
		if !s.images.Delete(ctx, u, s.bucket) {
			log.Warn("failed to delete product image", zap.String("url", u))
		}
	}
}

func removedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}
	var removed []string
	for _, u := range before {
		if _, ok := keep[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}
