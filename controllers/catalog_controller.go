package controllers

import (
	"net/http"

	"shop-api/repository"
	"shop-api/services"

	"github.com/gin-gonic/gin"
)

// CatalogController handles the read-only catalog browsing endpoints.
type CatalogController struct {
	catalogService services.CatalogService
	cache          *CatalogCache
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(svc services.CatalogService, cache *CatalogCache) *CatalogController {
	return &CatalogController{catalogService: svc, cache: cache}
}

// ListCategories handles GET /categories
func (cc *CatalogController) ListCategories(c *gin.Context) {
	page, limit := parsePagination(c)

	categories, total, svcErr := cc.catalogService.ListCategories(c.Request.Context(), page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	results := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		results = append(results, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: results})
}

// GetCategory handles GET /categories/:category_slug
func (cc *CatalogController) GetCategory(c *gin.Context) {
	page, limit := parsePagination(c)

	category, subcategories, total, svcErr := cc.catalogService.GetCategory(
		c.Request.Context(), c.Param("category_slug"), page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	results := make([]SubCategoryResponse, 0, len(subcategories))
	for _, subcategory := range subcategories {
		results = append(results, toSubCategoryResponse(subcategory))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":            category.ID,
		"name":          category.Name,
		"slug":          category.Slug,
		"image":         category.Image,
		"count":         total,
		"subcategories": results,
	})
}

// GetSubCategoryProducts handles GET /categories/:category_slug/:subcategory_slug
func (cc *CatalogController) GetSubCategoryProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	products, total, svcErr := cc.catalogService.GetSubCategoryProducts(
		c.Request.Context(), c.Param("category_slug"), c.Param("subcategory_slug"), page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	results := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		results = append(results, toProductResponse(product))
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: results})
}

// ProductRedirect handles GET /categories/:category_slug/:subcategory_slug/:product_slug,
// the legacy path that resolves to the canonical product location.
func (cc *CatalogController) ProductRedirect(c *gin.Context) {
	product, svcErr := cc.catalogService.ResolveProductPath(
		c.Request.Context(),
		c.Param("category_slug"),
		c.Param("subcategory_slug"),
		c.Param("product_slug"),
	)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	c.Redirect(http.StatusFound, "/"+product.ShortURL())
}

// ListProducts handles GET /products
func (cc *CatalogController) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.ProductFilter{
		Search:          c.Query("search"),
		CategorySlug:    c.Query("category"),
		SubCategorySlug: c.Query("subcategory"),
	}

	products, total, svcErr := cc.catalogService.ListProducts(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	results := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		results = append(results, toProductResponse(product))
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: results})
}

// GetProduct handles GET /products/:slug
func (cc *CatalogController) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	if cached, ok := cc.cache.GetProduct(c.Request.Context(), slug); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, svcErr := cc.catalogService.GetProduct(c.Request.Context(), slug)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	resp := toProductResponse(*product)
	cc.cache.SetProduct(c.Request.Context(), slug, &resp)
	c.JSON(http.StatusOK, resp)
}
