package cart

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// ProductLookup resolves the product a cart or wishlist entry is built from.
type ProductLookup interface {
	GetByID(ctx context.Context, productID string) (*product.Product, error)
}

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

type ToggleResult struct {
	Session    Session `json:"session"`
	InWishlist bool    `json:"inWishlist"`
}

type Service interface {
	GetSession(ctx context.Context) (Session, error)
	AddItem(ctx context.Context, input AddItemInput) (Session, error)
	RemoveItem(ctx context.Context, itemID string) (Session, error)
	ToggleWishlist(ctx context.Context, productID string) (ToggleResult, error)
	Clear(ctx context.Context) (Session, error)
}

type service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) Service {
	return &service{repo: repo, products: products}
}

func currentUser(ctx context.Context) (uint, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, ErrUserNotAuthenticated
	}
	return userID, nil
}

// storageErr keeps domain errors from fn intact and masks everything else.
func storageErr(err error, fallback error) error {
	for _, known := range []error{
		ErrInvalidQuantity, ErrInsufficientStock, ErrSessionConflict,
	} {
		if errors.Is(err, known) {
			return known
		}
	}
	return fallback
}

func (s *service) GetSession(ctx context.Context) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetSession"),
	)

	userID, err := currentUser(ctx)
	if err != nil {
		return Session{}, err
	}

	sess, err := s.repo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load session", zap.Uint("user_id", userID), zap.Error(err))
		return Session{}, ErrFailedGetSession
	}
	return sess, nil
}

// AddItem snapshots price, name, image and stock from the catalog; the client
// only names the product, variant and quantity.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", input.ProductID),
	)

	userID, err := currentUser(ctx)
	if err != nil {
		return Session{}, err
	}

	input.ProductID = strings.TrimSpace(input.ProductID)
	if input.ProductID == "" {
		return Session{}, ErrProductIDRequired
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		return Session{}, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return Session{}, err
	}
	if input.Variant != "" {
		if _, ok := p.Variant(input.Variant); !ok {
			return Session{}, ErrVariantNotFound
		}
	}

	item := Item{
		ID:        ItemID(p.ID, input.Variant),
		ProductID: p.ID,
		Variant:   input.Variant,
		Name:      p.Name,
		Price:     p.PriceFor(input.Variant),
		Image:     p.PrimaryImage(),
		Quantity:  input.Quantity,
		Stock:     p.StockFor(input.Variant),
		Category:  p.Category,
	}

	sess, err := s.repo.Update(ctx, userID, func(cur Session) (Session, error) {
		next, err := cur.Cart.AddItem(item)
		if err != nil {
			return cur, err
		}
		cur.Cart = next
		return cur, nil
	})
	if err != nil {
		log.Warn("add to cart failed", zap.Uint("user_id", userID), zap.Error(err))
		return Session{}, storageErr(err, ErrFailedSaveSession)
	}

	log.Info("item added to cart", zap.Uint("user_id", userID), zap.String("item_id", item.ID))
	return sess, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID string) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.String("item_id", itemID),
	)

	userID, err := currentUser(ctx)
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(itemID) == "" {
		return Session{}, ErrItemIDRequired
	}

	sess, err := s.repo.Update(ctx, userID, func(cur Session) (Session, error) {
		cur.Cart = cur.Cart.RemoveItem(itemID)
		return cur, nil
	})
	if err != nil {
		log.Error("remove from cart failed", zap.Uint("user_id", userID), zap.Error(err))
		return Session{}, storageErr(err, ErrFailedSaveSession)
	}
	return sess, nil
}

func (s *service) ToggleWishlist(ctx context.Context, productID string) (ToggleResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ToggleWishlist"),
		zap.String("product_id", productID),
	)

	userID, err := currentUser(ctx)
	if err != nil {
		return ToggleResult{}, err
	}

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ToggleResult{}, ErrProductIDRequired
	}

	current, err := s.repo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load session", zap.Error(err))
		return ToggleResult{}, ErrFailedGetSession
	}

	// Removing never needs the catalog, so a product deleted since it was
	// wishlisted can still be removed.
	var snapshot WishlistItem
	if !current.Wishlist.Contains(productID) {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return ToggleResult{}, err
		}
		snapshot = WishlistItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.PrimaryImage(),
			Category: p.Category,
		}
		if p.HasDiscount() {
			snapshot.OriginalPrice = p.OriginalPrice
		}
	}

	var in bool
	sess, err := s.repo.Update(ctx, userID, func(cur Session) (Session, error) {
		if snapshot.ID == "" && !cur.Wishlist.Contains(productID) {
			return cur, ErrSessionConflict
		}
		cur.Wishlist, in = cur.Wishlist.Toggle(productID, snapshot)
		return cur, nil
	})
	if err != nil {
		log.Error("toggle wishlist failed", zap.Uint("user_id", userID), zap.Error(err))
		return ToggleResult{}, storageErr(err, ErrFailedSaveSession)
	}

	log.Info("wishlist toggled", zap.Uint("user_id", userID), zap.Bool("in_wishlist", in))
	return ToggleResult{Session: sess, InWishlist: in}, nil
}

// Clear empties the cart and keeps the wishlist.
func (s *service) Clear(ctx context.Context) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Clear"),
	)

	userID, err := currentUser(ctx)
	if err != nil {
		return Session{}, err
	}

	sess, err := s.repo.Update(ctx, userID, func(cur Session) (Session, error) {
		cur.Cart = NewCart()
		return cur, nil
	})
	if err != nil {
		log.Error("clear cart failed", zap.Uint("user_id", userID), zap.Error(err))
		return Session{}, ErrFailedClearCart
	}
	return sess, nil
}
