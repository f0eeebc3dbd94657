package services

import (
	"context"
	"errors"

	"shop-api/models"
	"shop-api/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryInput carries the writable fields of a category or
// subcategory for the admin write path.
type CategoryInput struct {
	Name  string
	Slug  string
	Image string
}

// ProductInput carries the writable fields of a product for the admin
// write path. Price is a pointer so a partial update can tell an
// absent price apart from an explicit zero.
type ProductInput struct {
	Name            string
	Slug            string
	Price           *decimal.Decimal
	SubCategorySlug string
	ImageSmall      string
	ImageMedium     string
	ImageLarge      string
}

// CatalogService exposes read-only catalog browsing plus the
// admin-only write operations.
type CatalogService interface {
	ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, *ServiceError)
	GetCategory(ctx context.Context, slug string, page, limit int) (*models.Category, []models.SubCategory, int64, *ServiceError)
	GetSubCategoryProducts(ctx context.Context, categorySlug, subcategorySlug string, page, limit int) ([]models.Product, int64, *ServiceError)
	ListProducts(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]models.Product, int64, *ServiceError)
	GetProduct(ctx context.Context, slug string) (*models.Product, *ServiceError)
	ResolveProductPath(ctx context.Context, categorySlug, subcategorySlug, productSlug string) (*models.Product, *ServiceError)

	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, slug string, in CategoryInput) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, slug string) *ServiceError
	CreateSubCategory(ctx context.Context, categorySlug string, in CategoryInput) (*models.SubCategory, *ServiceError)
	UpdateSubCategory(ctx context.Context, slug string, in CategoryInput) (*models.SubCategory, *ServiceError)
	DeleteSubCategory(ctx context.Context, slug string) *ServiceError
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, slug string, in ProductInput) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, slug string) *ServiceError
}

type catalogServiceImpl struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{repo: repo, logger: logger}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, *ServiceError) {
	categories, total, err := s.repo.ListCategories(ctx, page, limit)
	if err != nil {
		s.logger.Error("category listing failed", zap.Error(err))
		return nil, 0, internalError("Failed to list categories")
	}
	return categories, total, nil
}

func (s *catalogServiceImpl) GetCategory(ctx context.Context, slug string, page, limit int) (*models.Category, []models.SubCategory, int64, *ServiceError) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, notFoundError("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return nil, nil, 0, internalError("Failed to load category")
	}

	subcategories, total, err := s.repo.ListSubCategories(ctx, category.ID, page, limit)
	if err != nil {
		s.logger.Error("subcategory listing failed", zap.Error(err))
		return nil, nil, 0, internalError("Failed to load category")
	}
	return category, subcategories, total, nil
}

// GetSubCategoryProducts requires both slugs to match the chain: a
// subcategory reached through the wrong category is not found.
func (s *catalogServiceImpl) GetSubCategoryProducts(ctx context.Context, categorySlug, subcategorySlug string, page, limit int) ([]models.Product, int64, *ServiceError) {
	category, err := s.repo.FindCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, notFoundError("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return nil, 0, internalError("Failed to load subcategory")
	}

	subcategory, err := s.repo.FindSubCategoryBySlug(ctx, category.ID, subcategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, notFoundError("Subcategory not found")
		}
		s.logger.Error("subcategory lookup failed", zap.Error(err))
		return nil, 0, internalError("Failed to load subcategory")
	}

	products, total, err := s.repo.ListProducts(ctx, repository.ProductFilter{SubCategorySlug: subcategory.Slug}, page, limit)
	if err != nil {
		s.logger.Error("product listing failed", zap.Error(err))
		return nil, 0, internalError("Failed to load subcategory")
	}
	return products, total, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]models.Product, int64, *ServiceError) {
	products, total, err := s.repo.ListProducts(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("product listing failed", zap.Error(err))
		return nil, 0, internalError("Failed to list products")
	}
	return products, total, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, slug string) (*models.Product, *ServiceError) {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to load product")
	}
	return product, nil
}

// ResolveProductPath maps the legacy three-segment path onto the
// canonical product location. Any segment that does not match the
// chain makes the whole path not found.
func (s *catalogServiceImpl) ResolveProductPath(ctx context.Context, categorySlug, subcategorySlug, productSlug string) (*models.Product, *ServiceError) {
	product, err := s.repo.FindProductByPath(ctx, categorySlug, subcategorySlug, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Product not found")
		}
		s.logger.Error("product path lookup failed", zap.Error(err))
		return nil, internalError("Failed to resolve product path")
	}
	return product, nil
}
