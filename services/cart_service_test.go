package services

import (
	"context"
	"net/http"
	"testing"

	"shop-api/models"
	"shop-api/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- in-memory cart repository ----
//
// Stateful so the tests can exercise the cart state machine end to end
// instead of asserting on single calls.

type memCartRepo struct {
	cartID uint
	nextID uint
	items  map[uint]*models.CartProduct // by line id
	prices map[uint]decimal.Decimal     // product id -> price
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{
		cartID: 1,
		nextID: 1,
		items:  map[uint]*models.CartProduct{},
		prices: map[uint]decimal.Decimal{},
	}
}

func (m *memCartRepo) GetOrCreateCart(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	return &models.Cart{ID: m.cartID, UserID: userID}, nil
}

func (m *memCartRepo) ListItems(_ context.Context, cartID uint) ([]models.CartProduct, error) {
	var items []models.CartProduct
	for _, item := range m.items {
		if item.CartID == cartID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *memCartRepo) Totals(_ context.Context, cartID uint) (*repository.CartTotals, error) {
	totals := &repository.CartTotals{TotalPrice: decimal.Zero}
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		totals.TotalQuantity += int64(item.Quantity)
		totals.TotalPrice = totals.TotalPrice.Add(
			m.prices[item.ProductID].Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return totals, nil
}

func (m *memCartRepo) AddProduct(_ context.Context, cartID, productID uint, quantity int) error {
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity += quantity
			return nil
		}
	}
	m.items[m.nextID] = &models.CartProduct{ID: m.nextID, CartID: cartID, ProductID: productID, Quantity: quantity}
	m.nextID++
	return nil
}

func (m *memCartRepo) DeleteItemByProduct(_ context.Context, cartID, productID uint) (bool, error) {
	for id, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			delete(m.items, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *memCartRepo) SetItemQuantity(_ context.Context, cartID, itemID uint, quantity int) (bool, error) {
	item, ok := m.items[itemID]
	if !ok || item.CartID != cartID {
		return false, nil
	}
	item.Quantity = quantity
	return true, nil
}

func (m *memCartRepo) DeleteItem(_ context.Context, cartID, itemID uint) (bool, error) {
	item, ok := m.items[itemID]
	if !ok || item.CartID != cartID {
		return false, nil
	}
	delete(m.items, itemID)
	return true, nil
}

func (m *memCartRepo) Clear(_ context.Context, cartID uint) error {
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}

// ---- product finder stub ----

type memCatalog struct {
	products map[string]*models.Product
}

func (m *memCatalog) FindProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	if p, ok := m.products[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ---- helpers ----

func newTestCartService(t *testing.T) (CartService, *memCartRepo, uuid.UUID) {
	t.Helper()
	repo := newMemCartRepo()
	repo.prices[10] = decimal.RequireFromString("100.00")
	repo.prices[20] = decimal.RequireFromString("49.90")

	catalog := &memCatalog{products: map[string]*models.Product{
		"milk":  {ID: 10, Name: "Milk", Slug: "milk", Price: repo.prices[10]},
		"bread": {ID: 20, Name: "Bread", Slug: "bread", Price: repo.prices[20]},
	}}

	logger := zap.NewNop()
	return NewCartService(repo, catalog, logger), repo, uuid.New()
}

// ---- tests ----

func TestGetCart_EmptyHasZeroTotals(t *testing.T) {
	svc, _, userID := newTestCartService(t)

	state, svcErr := svc.GetCart(context.Background(), userID)

	assert.Nil(t, svcErr)
	assert.Empty(t, state.Items)
	assert.EqualValues(t, 0, state.Totals.TotalQuantity)
	assert.Equal(t, "0.00", state.Totals.TotalPrice.StringFixed(2))
}

func TestAddToCart_IsAdditive(t *testing.T) {
	svc, repo, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))
	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 3))

	items, _ := repo.ListItems(ctx, repo.cartID)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	svc, _, userID := newTestCartService(t)

	svcErr := svc.AddToCart(context.Background(), userID, "no-such-product", 1)

	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestAddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	svc, repo, userID := newTestCartService(t)

	svcErr := svc.AddToCart(context.Background(), userID, "milk", 0)

	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "quantity", svcErr.Field)
	assert.Empty(t, repo.items)
}

func TestGetCart_TotalsMatchLines(t *testing.T) {
	svc, _, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))

	state, svcErr := svc.GetCart(ctx, userID)
	assert.Nil(t, svcErr)
	assert.EqualValues(t, 2, state.Totals.TotalQuantity)
	assert.Equal(t, "200.00", state.Totals.TotalPrice.StringFixed(2))
	assert.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestUpdateQuantity_NegativeFailsAndLeavesLine(t *testing.T) {
	svc, repo, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))
	items, _ := repo.ListItems(ctx, repo.cartID)
	lineID := items[0].ID

	removed, svcErr := svc.UpdateQuantity(ctx, userID, lineID, -1)

	assert.False(t, removed)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "quantity", svcErr.Field)

	items, _ = repo.ListItems(ctx, repo.cartID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	svc, repo, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))
	items, _ := repo.ListItems(ctx, repo.cartID)
	lineID := items[0].ID

	removed, svcErr := svc.UpdateQuantity(ctx, userID, lineID, 0)

	assert.Nil(t, svcErr)
	assert.True(t, removed)

	state, _ := svc.GetCart(ctx, userID)
	assert.Empty(t, state.Items)
	assert.EqualValues(t, 0, state.Totals.TotalQuantity)
	assert.Equal(t, "0.00", state.Totals.TotalPrice.StringFixed(2))
}

func TestUpdateQuantity_SetsNewValue(t *testing.T) {
	svc, repo, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))
	items, _ := repo.ListItems(ctx, repo.cartID)

	removed, svcErr := svc.UpdateQuantity(ctx, userID, items[0].ID, 7)

	assert.Nil(t, svcErr)
	assert.False(t, removed)
	items, _ = repo.ListItems(ctx, repo.cartID)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantity_ForeignLineNotFound(t *testing.T) {
	svc, _, userID := newTestCartService(t)

	removed, svcErr := svc.UpdateQuantity(context.Background(), userID, 999, 3)

	assert.False(t, removed)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestRemoveFromCart_MissingLineNotFound(t *testing.T) {
	svc, _, userID := newTestCartService(t)

	svcErr := svc.RemoveFromCart(context.Background(), userID, "milk")

	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestClearCart_ResetsToEmptyShape(t *testing.T) {
	svc, _, userID := newTestCartService(t)
	ctx := context.Background()

	assert.Nil(t, svc.AddToCart(ctx, userID, "milk", 2))
	assert.Nil(t, svc.AddToCart(ctx, userID, "bread", 3))

	assert.Nil(t, svc.ClearCart(ctx, userID))

	state, svcErr := svc.GetCart(ctx, userID)
	assert.Nil(t, svcErr)
	assert.Empty(t, state.Items)
	assert.EqualValues(t, 0, state.Totals.TotalQuantity)
	assert.Equal(t, "0.00", state.Totals.TotalPrice.StringFixed(2))
}

func TestClearCart_NoopWhenEmpty(t *testing.T) {
	svc, _, userID := newTestCartService(t)

	assert.Nil(t, svc.ClearCart(context.Background(), userID))
}
