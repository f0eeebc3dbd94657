package controllers

import (
	"strconv"

	"shop-api/models"
	"shop-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryResponse is the wire shape of a category or subcategory.
type CategoryResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// SubCategoryResponse embeds the parent category.
type SubCategoryResponse struct {
	CategoryResponse
	Category CategoryResponse `json:"category"`
}

// ProductResponse carries the product with its ancestors. Price is a
// fixed-point decimal string with exactly two fraction digits, never a
// float.
type ProductResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Price       string              `json:"price"`
	Category    string              `json:"category"`
	SubCategory SubCategoryResponse `json:"subcategory"`
	ImageSmall  string              `json:"image_small,omitempty"`
	ImageMedium string              `json:"image_medium,omitempty"`
	ImageLarge  string              `json:"image_large,omitempty"`
	ProductURL  string              `json:"product_url"`
}

// CartItemResponse is one cart line with its line total.
type CartItemResponse struct {
	ID         uint            `json:"id"`
	Product    ProductResponse `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice string          `json:"total_price"`
}

// CartResponse is the whole cart with aggregate totals.
type CartResponse struct {
	ID            uint               `json:"id"`
	Products      []CartItemResponse `json:"products"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalPrice    string             `json:"total_price"`
	UpdatedAt     string             `json:"updated_at"`
}

// ListResponse is the pagination envelope for list endpoints.
type ListResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Image: c.Image}
}

func toSubCategoryResponse(s models.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		CategoryResponse: CategoryResponse{ID: s.ID, Name: s.Name, Slug: s.Slug, Image: s.Image},
		Category:         toCategoryResponse(s.Category),
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price.StringFixed(2),
		Category:    p.SubCategory.Category.Name,
		SubCategory: toSubCategoryResponse(p.SubCategory),
		ImageSmall:  p.ImageSmall,
		ImageMedium: p.ImageMedium,
		ImageLarge:  p.ImageLarge,
		ProductURL:  p.ShortURL(),
	}
}

func toCartItemResponse(item models.CartProduct) CartItemResponse {
	lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return CartItemResponse{
		ID:         item.ID,
		Product:    toProductResponse(item.Product),
		Quantity:   item.Quantity,
		TotalPrice: lineTotal.StringFixed(2),
	}
}

func toCartResponse(state *services.CartState) CartResponse {
	items := make([]CartItemResponse, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, toCartItemResponse(item))
	}
	return CartResponse{
		ID:            state.Cart.ID,
		Products:      items,
		TotalQuantity: state.Totals.TotalQuantity,
		TotalPrice:    state.Totals.TotalPrice.StringFixed(2),
		UpdatedAt:     state.Cart.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// respondServiceError writes a typed service error. Validation errors
// come out field-keyed.
func respondServiceError(c *gin.Context, err *services.ServiceError) {
	if err.Field != "" {
		c.JSON(err.StatusCode, gin.H{"errors": gin.H{err.Field: err.Message}})
		return
	}
	c.JSON(err.StatusCode, gin.H{"error": err.Message})
}

// parsePagination extracts and caps page/limit query params.
func parsePagination(c *gin.Context) (int, int) {
	const maxLimit = 100
	page, limit := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limit = l
	}
	return page, limit
}
