package services

import (
	"context"
	"errors"

	"shop-api/models"
	"shop-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductFinder is the slice of the catalog the cart needs: resolving
// a product slug to the product row.
type ProductFinder interface {
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// CartState is a cart snapshot: its lines with embedded products plus
// the aggregate totals computed by the store.
type CartState struct {
	Cart   *models.Cart
	Items  []models.CartProduct
	Totals *repository.CartTotals
}

// CartService implements the cart operations, all scoped to the
// calling user's own cart.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartState, *ServiceError)
	AddToCart(ctx context.Context, userID uuid.UUID, productSlug string, quantity int) *ServiceError
	RemoveFromCart(ctx context.Context, userID uuid.UUID, productSlug string) *ServiceError
	// UpdateQuantity reports removed=true when a zero quantity deleted
	// the line instead of updating it.
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID uint, quantity int) (removed bool, svcErr *ServiceError)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID uint) *ServiceError
	ClearCart(ctx context.Context, userID uuid.UUID) *ServiceError
}

type cartServiceImpl struct {
	carts   repository.CartRepository
	catalog ProductFinder
	logger  *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartRepository, catalog ProductFinder, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, catalog: catalog, logger: logger}
}

func (s *cartServiceImpl) cart(ctx context.Context, userID uuid.UUID) (*models.Cart, *ServiceError) {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		s.logger.Error("cart lookup failed", zap.Error(err))
		return nil, internalError("Failed to load cart")
	}
	return cart, nil
}

// GetCart returns the cart's lines and totals. An empty cart is a
// normal result with zero totals, never an error.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID) (*CartState, *ServiceError) {
	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error("cart items lookup failed", zap.Error(err))
		return nil, internalError("Failed to load cart")
	}

	totals, err := s.carts.Totals(ctx, cart.ID)
	if err != nil {
		s.logger.Error("cart totals query failed", zap.Error(err))
		return nil, internalError("Failed to load cart")
	}

	return &CartState{Cart: cart, Items: items, Totals: totals}, nil
}

// AddToCart creates the line or increments its quantity. Repeated
// calls accumulate.
func (s *cartServiceImpl) AddToCart(ctx context.Context, userID uuid.UUID, productSlug string, quantity int) *ServiceError {
	if quantity < 1 {
		return validationError("quantity", "Quantity must be at least 1.")
	}

	product, err := s.catalog.FindProductBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return internalError("Failed to add product to cart")
	}

	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	if err := s.carts.AddProduct(ctx, cart.ID, product.ID, quantity); err != nil {
		s.logger.Error("cart line upsert failed", zap.Error(err))
		return internalError("Failed to add product to cart")
	}
	return nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID uuid.UUID, productSlug string) *ServiceError {
	product, err := s.catalog.FindProductBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return internalError("Failed to remove product from cart")
	}

	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	removed, err := s.carts.DeleteItemByProduct(ctx, cart.ID, product.ID)
	if err != nil {
		s.logger.Error("cart line delete failed", zap.Error(err))
		return internalError("Failed to remove product from cart")
	}
	if !removed {
		return notFoundError("Product is not in the cart")
	}
	return nil
}

// UpdateQuantity rejects negative quantities, removes the line when the
// quantity is exactly zero and sets it otherwise. A line outside the
// caller's cart reads as absent.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID uint, quantity int) (bool, *ServiceError) {
	if quantity < 0 {
		return false, validationError("quantity", "Quantity cannot be negative.")
	}

	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return false, svcErr
	}

	if quantity == 0 {
		removed, err := s.carts.DeleteItem(ctx, cart.ID, itemID)
		if err != nil {
			s.logger.Error("cart line delete failed", zap.Error(err))
			return false, internalError("Failed to update cart")
		}
		if !removed {
			return false, notFoundError("Cart item not found")
		}
		return true, nil
	}

	updated, err := s.carts.SetItemQuantity(ctx, cart.ID, itemID, quantity)
	if err != nil {
		s.logger.Error("cart line update failed", zap.Error(err))
		return false, internalError("Failed to update cart")
	}
	if !updated {
		return false, notFoundError("Cart item not found")
	}
	return false, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uint) *ServiceError {
	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	removed, err := s.carts.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		s.logger.Error("cart line delete failed", zap.Error(err))
		return internalError("Failed to remove cart item")
	}
	if !removed {
		return notFoundError("Cart item not found")
	}
	return nil
}

// ClearCart is a no-op on an already-empty cart.
func (s *cartServiceImpl) ClearCart(ctx context.Context, userID uuid.UUID) *ServiceError {
	cart, svcErr := s.cart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		s.logger.Error("cart clear failed", zap.Error(err))
		return internalError("Failed to clear cart")
	}
	return nil
}
