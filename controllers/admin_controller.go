package controllers

import (
	"net/http"

	"shop-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryRequest is the admin write payload for categories and
// subcategories. Category names the parent and is only read for
// subcategory creation.
type CategoryRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// ProductRequest is the admin write payload for products. Price is a
// pointer so PUT can leave it untouched while still allowing an
// explicit zero.
type ProductRequest struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Price       *decimal.Decimal `json:"price"`
	SubCategory string           `json:"subcategory"`
	ImageSmall  string           `json:"image_small"`
	ImageMedium string           `json:"image_medium"`
	ImageLarge  string           `json:"image_large"`
}

// AdminCatalogController handles the admin-only catalog write
// endpoints. Every write invalidates the catalog cache.
type AdminCatalogController struct {
	catalogService services.CatalogService
	cache          *CatalogCache
}

// NewAdminCatalogController creates a new AdminCatalogController.
func NewAdminCatalogController(svc services.CatalogService, cache *CatalogCache) *AdminCatalogController {
	return &AdminCatalogController{catalogService: svc, cache: cache}
}

// CreateCategory handles POST /admin/categories
func (ac *AdminCatalogController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required."}})
		return
	}

	category, svcErr := ac.catalogService.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name: req.Name, Slug: req.Slug, Image: req.Image,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// UpdateCategory handles PUT /admin/categories/:slug
func (ac *AdminCatalogController) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	category, svcErr := ac.catalogService.UpdateCategory(c.Request.Context(), c.Param("slug"), services.CategoryInput{
		Name: req.Name, Slug: req.Slug, Image: req.Image,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /admin/categories/:slug
func (ac *AdminCatalogController) DeleteCategory(c *gin.Context) {
	if svcErr := ac.catalogService.DeleteCategory(c.Request.Context(), c.Param("slug")); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	ac.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// CreateSubCategory handles POST /admin/subcategories
func (ac *AdminCatalogController) CreateSubCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required."}})
		return
	}
	if req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"category": "Category is required."}})
		return
	}

	subcategory, svcErr := ac.catalogService.CreateSubCategory(c.Request.Context(), req.Category, services.CategoryInput{
		Name: req.Name, Slug: req.Slug, Image: req.Image,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, toSubCategoryResponse(*subcategory))
}

// UpdateSubCategory handles PUT /admin/subcategories/:slug
func (ac *AdminCatalogController) UpdateSubCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	subcategory, svcErr := ac.catalogService.UpdateSubCategory(c.Request.Context(), c.Param("slug"), services.CategoryInput{
		Name: req.Name, Slug: req.Slug, Image: req.Image,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, toSubCategoryResponse(*subcategory))
}

// DeleteSubCategory handles DELETE /admin/subcategories/:slug
func (ac *AdminCatalogController) DeleteSubCategory(c *gin.Context) {
	if svcErr := ac.catalogService.DeleteSubCategory(c.Request.Context(), c.Param("slug")); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	ac.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// CreateProduct handles POST /admin/products
func (ac *AdminCatalogController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required."}})
		return
	}
	if req.SubCategory == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"subcategory": "Subcategory is required."}})
		return
	}
	if req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "Price is required."}})
		return
	}

	product, svcErr := ac.catalogService.CreateProduct(c.Request.Context(), services.ProductInput{
		Name:            req.Name,
		Slug:            req.Slug,
		Price:           req.Price,
		SubCategorySlug: req.SubCategory,
		ImageSmall:      req.ImageSmall,
		ImageMedium:     req.ImageMedium,
		ImageLarge:      req.ImageLarge,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /admin/products/:slug
func (ac *AdminCatalogController) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	product, svcErr := ac.catalogService.UpdateProduct(c.Request.Context(), c.Param("slug"), services.ProductInput{
		Name:            req.Name,
		Slug:            req.Slug,
		Price:           req.Price,
		SubCategorySlug: req.SubCategory,
		ImageSmall:      req.ImageSmall,
		ImageMedium:     req.ImageMedium,
		ImageLarge:      req.ImageLarge,
	})
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /admin/products/:slug
func (ac *AdminCatalogController) DeleteProduct(c *gin.Context) {
	if svcErr := ac.catalogService.DeleteProduct(c.Request.Context(), c.Param("slug")); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	ac.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
