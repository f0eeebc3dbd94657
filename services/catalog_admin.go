package services

import (
	"context"
	"errors"

	"shop-api/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Admin write path for the catalog. Slugs are derived from names when
// absent, and name/slug uniqueness is checked up front so violations
// surface as field-keyed validation errors instead of raw database
// constraint failures.

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, *ServiceError) {
	category := &models.Category{CatalogFields: models.CatalogFields{
		Name:  in.Name,
		Slug:  in.Slug,
		Image: in.Image,
	}}
	category.EnsureSlug()

	if _, err := s.repo.FindCategoryByName(ctx, category.Name); err == nil {
		return nil, validationError("name", "A category with this name already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("category name lookup failed", zap.Error(err))
		return nil, internalError("Failed to create category")
	}
	if _, err := s.repo.FindCategoryBySlug(ctx, category.Slug); err == nil {
		return nil, validationError("slug", "A category with this slug already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("category slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to create category")
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("category insert failed", zap.Error(err))
		return nil, internalError("Failed to create category")
	}
	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, slug string, in CategoryInput) (*models.Category, *ServiceError) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return nil, internalError("Failed to update category")
	}

	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Slug != "" {
		category.Slug = in.Slug
	}
	if in.Image != "" {
		category.Image = in.Image
	}
	category.EnsureSlug()

	if existing, err := s.repo.FindCategoryByName(ctx, category.Name); err == nil {
		if existing.ID != category.ID {
			return nil, validationError("name", "A category with this name already exists.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("category name lookup failed", zap.Error(err))
		return nil, internalError("Failed to update category")
	}
	if existing, err := s.repo.FindCategoryBySlug(ctx, category.Slug); err == nil {
		if existing.ID != category.ID {
			return nil, validationError("slug", "A category with this slug already exists.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("category slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to update category")
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		s.logger.Error("category update failed", zap.Error(err))
		return nil, internalError("Failed to update category")
	}
	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, slug string) *ServiceError {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return internalError("Failed to delete category")
	}

	deleted, err := s.repo.DeleteCategory(ctx, category.ID)
	if err != nil {
		s.logger.Error("category delete failed", zap.Error(err))
		return internalError("Failed to delete category")
	}
	if !deleted {
		return notFoundError("Category not found")
	}
	return nil
}

func (s *catalogServiceImpl) CreateSubCategory(ctx context.Context, categorySlug string, in CategoryInput) (*models.SubCategory, *ServiceError) {
	category, err := s.repo.FindCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return nil, internalError("Failed to create subcategory")
	}

	subcategory := &models.SubCategory{
		CatalogFields: models.CatalogFields{
			Name:  in.Name,
			Slug:  in.Slug,
			Image: in.Image,
		},
		CategoryID: category.ID,
	}
	subcategory.EnsureSlug()

	if _, err := s.repo.FindSubCategoryByName(ctx, subcategory.Name); err == nil {
		return nil, validationError("name", "A subcategory with this name already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("subcategory name lookup failed", zap.Error(err))
		return nil, internalError("Failed to create subcategory")
	}
	if _, err := s.repo.FindAnySubCategoryBySlug(ctx, subcategory.Slug); err == nil {
		return nil, validationError("slug", "A subcategory with this slug already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("subcategory slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to create subcategory")
	}

	if err := s.repo.CreateSubCategory(ctx, subcategory); err != nil {
		s.logger.Error("subcategory insert failed", zap.Error(err))
		return nil, internalError("Failed to create subcategory")
	}
	return subcategory, nil
}

func (s *catalogServiceImpl) UpdateSubCategory(ctx context.Context, slug string, in CategoryInput) (*models.SubCategory, *ServiceError) {
	subcategory, err := s.repo.FindAnySubCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Subcategory not found")
		}
		s.logger.Error("subcategory lookup failed", zap.Error(err))
		return nil, internalError("Failed to update subcategory")
	}

	if in.Name != "" {
		subcategory.Name = in.Name
	}
	if in.Slug != "" {
		subcategory.Slug = in.Slug
	}
	if in.Image != "" {
		subcategory.Image = in.Image
	}
	subcategory.EnsureSlug()

	if existing, err := s.repo.FindSubCategoryByName(ctx, subcategory.Name); err == nil {
		if existing.ID != subcategory.ID {
			return nil, validationError("name", "A subcategory with this name already exists.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("subcategory name lookup failed", zap.Error(err))
		return nil, internalError("Failed to update subcategory")
	}
	if existing, err := s.repo.FindAnySubCategoryBySlug(ctx, subcategory.Slug); err == nil {
		if existing.ID != subcategory.ID {
			return nil, validationError("slug", "A subcategory with this slug already exists.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("subcategory slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to update subcategory")
	}

	if err := s.repo.UpdateSubCategory(ctx, subcategory); err != nil {
		s.logger.Error("subcategory update failed", zap.Error(err))
		return nil, internalError("Failed to update subcategory")
	}
	return subcategory, nil
}

func (s *catalogServiceImpl) DeleteSubCategory(ctx context.Context, slug string) *ServiceError {
	subcategory, err := s.repo.FindAnySubCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Subcategory not found")
		}
		s.logger.Error("subcategory lookup failed", zap.Error(err))
		return internalError("Failed to delete subcategory")
	}

	deleted, err := s.repo.DeleteSubCategory(ctx, subcategory.ID)
	if err != nil {
		s.logger.Error("subcategory delete failed", zap.Error(err))
		return internalError("Failed to delete subcategory")
	}
	if !deleted {
		return notFoundError("Subcategory not found")
	}
	return nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, *ServiceError) {
	subcategory, err := s.repo.FindAnySubCategoryBySlug(ctx, in.SubCategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Subcategory not found")
		}
		s.logger.Error("subcategory lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	price := decimal.Zero
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, validationError("price", "Price cannot be negative.")
		}
		price = *in.Price
	}

	product := &models.Product{
		Name:          in.Name,
		Slug:          in.Slug,
		Price:         price,
		SubCategoryID: subcategory.ID,
		ImageSmall:    in.ImageSmall,
		ImageMedium:   in.ImageMedium,
		ImageLarge:    in.ImageLarge,
	}
	product.EnsureSlug()

	if _, err := s.repo.FindProductBySlug(ctx, product.Slug); err == nil {
		return nil, validationError("slug", "A product with this slug already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("product slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.logger.Error("product insert failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}
	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, slug string, in ProductInput) (*models.Product, *ServiceError) {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to update product")
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Slug != "" {
		product.Slug = in.Slug
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, validationError("price", "Price cannot be negative.")
		}
		product.Price = *in.Price
	}
	if in.SubCategorySlug != "" {
		subcategory, err := s.repo.FindAnySubCategoryBySlug(ctx, in.SubCategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundError("Subcategory not found")
			}
			s.logger.Error("subcategory lookup failed", zap.Error(err))
			return nil, internalError("Failed to update product")
		}
		product.SubCategoryID = subcategory.ID
		product.SubCategory = *subcategory
	}
	if in.ImageSmall != "" {
		product.ImageSmall = in.ImageSmall
	}
	if in.ImageMedium != "" {
		product.ImageMedium = in.ImageMedium
	}
	if in.ImageLarge != "" {
		product.ImageLarge = in.ImageLarge
	}
	product.EnsureSlug()

	if existing, err := s.repo.FindProductBySlug(ctx, product.Slug); err == nil {
		if existing.ID != product.ID {
			return nil, validationError("slug", "A product with this slug already exists.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("product slug lookup failed", zap.Error(err))
		return nil, internalError("Failed to update product")
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		s.logger.Error("product update failed", zap.Error(err))
		return nil, internalError("Failed to update product")
	}
	return product, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, slug string) *ServiceError {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return internalError("Failed to delete product")
	}

	deleted, err := s.repo.DeleteProduct(ctx, product.ID)
	if err != nil {
		s.logger.Error("product delete failed", zap.Error(err))
		return internalError("Failed to delete product")
	}
	if !deleted {
		return notFoundError("Product not found")
	}
	return nil
}
