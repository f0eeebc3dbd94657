package repository

import (
	"context"
	"errors"

	"shop-api/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartTotals is the store-side aggregate over a cart's lines. Both
// fields are zero for an empty cart.
type CartTotals struct {
	TotalQuantity int64
	TotalPrice    decimal.Decimal
}

// CartRepository defines data-access operations for carts and their
// lines. Every line operation is scoped by cart id, so a caller can
// never reach another user's lines.
type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uint) ([]models.CartProduct, error)
	Totals(ctx context.Context, cartID uint) (*CartTotals, error)
	// AddProduct increments the line quantity atomically, creating the
	// line when it does not exist yet.
	AddProduct(ctx context.Context, cartID, productID uint, quantity int) error
	DeleteItemByProduct(ctx context.Context, cartID, productID uint) (bool, error)
	SetItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (bool, error)
	DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error)
	Clear(ctx context.Context, cartID uint) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) ListItems(ctx context.Context, cartID uint) ([]models.CartProduct, error) {
	var items []models.CartProduct
	if err := r.db.WithContext(ctx).
		Preload("Product.SubCategory.Category").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) Totals(ctx context.Context, cartID uint) (*CartTotals, error) {
	var totals CartTotals
	if err := r.db.WithContext(ctx).
		Model(&models.CartProduct{}).
		Select("COALESCE(SUM(cart_products.quantity), 0) AS total_quantity, COALESCE(SUM(cart_products.quantity * products.price), 0) AS total_price").
		Joins("JOIN products ON products.id = cart_products.product_id").
		Where("cart_products.cart_id = ?", cartID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// AddProduct runs the increment as a single UPDATE inside a transaction
// so concurrent adds for the same line cannot lose updates. When two
// callers both miss the UPDATE, the loser's INSERT trips the
// (cart_id, product_id) unique index; one retry turns that into the
// increment it was meant to be.
func (r *GormCartRepository) AddProduct(ctx context.Context, cartID, productID uint, quantity int) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.CartProduct{}).
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				Update("quantity", gorm.Expr("quantity + ?", quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return nil
			}
			return tx.Create(&models.CartProduct{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  quantity,
			}).Error
		})
		if !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *GormCartRepository) DeleteItemByProduct(ctx context.Context, cartID, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartProduct{})
	return res.RowsAffected > 0, res.Error
}

func (r *GormCartRepository) SetItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartProduct{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	return res.RowsAffected > 0, res.Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartProduct{})
	return res.RowsAffected > 0, res.Error
}

func (r *GormCartRepository) Clear(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartProduct{}).Error
}
