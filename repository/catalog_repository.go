package repository

import (
	"context"

	"shop-api/models"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Search matches the product
// name and the names of its ancestor subcategory and category; the slug
// fields filter by exact catalog position.
type ProductFilter struct {
	Search          string
	CategorySlug    string
	SubCategorySlug string
}

// CatalogRepository defines data-access operations for the catalog tree.
type CatalogRepository interface {
	ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListSubCategories(ctx context.Context, categoryID uint, page, limit int) ([]models.SubCategory, int64, error)
	FindSubCategoryBySlug(ctx context.Context, categoryID uint, slug string) (*models.SubCategory, error)
	FindAnySubCategoryBySlug(ctx context.Context, slug string) (*models.SubCategory, error)
	FindSubCategoryByName(ctx context.Context, name string) (*models.SubCategory, error)
	ListProducts(ctx context.Context, filter ProductFilter, page, limit int) ([]models.Product, int64, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindProductByPath(ctx context.Context, categorySlug, subcategorySlug, productSlug string) (*models.Product, error)

	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uint) (bool, error)
	CreateSubCategory(ctx context.Context, s *models.SubCategory) error
	UpdateSubCategory(ctx context.Context, s *models.SubCategory) error
	DeleteSubCategory(ctx context.Context, id uint) (bool, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) (bool, error)
}

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository.
func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Category{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("name").
		Offset(offset).Limit(limit).
		Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *GormCatalogRepository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCatalogRepository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCatalogRepository) ListSubCategories(ctx context.Context, categoryID uint, page, limit int) ([]models.SubCategory, int64, error) {
	var subcategories []models.SubCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SubCategory{}).Where("category_id = ?", categoryID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Category").
		Order("name").
		Offset(offset).Limit(limit).
		Find(&subcategories).Error; err != nil {
		return nil, 0, err
	}
	return subcategories, total, nil
}

func (r *GormCatalogRepository) FindSubCategoryBySlug(ctx context.Context, categoryID uint, slug string) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND slug = ?", categoryID, slug).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormCatalogRepository) FindAnySubCategoryBySlug(ctx context.Context, slug string) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormCatalogRepository) FindSubCategoryByName(ctx context.Context, name string) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormCatalogRepository) ListProducts(ctx context.Context, filter ProductFilter, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
		Joins("JOIN categories ON categories.id = sub_categories.category_id")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"products.name ILIKE ? OR sub_categories.name ILIKE ? OR categories.name ILIKE ?",
			like, like, like,
		)
	}
	if filter.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.SubCategorySlug != "" {
		query = query.Where("sub_categories.slug = ?", filter.SubCategorySlug)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("SubCategory.Category").
		Order("products.name").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormCatalogRepository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("SubCategory.Category").
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProductByPath resolves the legacy category/subcategory/product
// slug chain. All three segments must match for the product to be found.
func (r *GormCatalogRepository) FindProductByPath(ctx context.Context, categorySlug, subcategorySlug, productSlug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
		Joins("JOIN categories ON categories.id = sub_categories.category_id").
		Where("products.slug = ? AND sub_categories.slug = ? AND categories.slug = ?",
			productSlug, subcategorySlug, categorySlug).
		Preload("SubCategory.Category").
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormCatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCatalogRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *GormCatalogRepository) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *GormCatalogRepository) CreateSubCategory(ctx context.Context, s *models.SubCategory) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormCatalogRepository) UpdateSubCategory(ctx context.Context, s *models.SubCategory) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *GormCatalogRepository) DeleteSubCategory(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.SubCategory{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *GormCatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormCatalogRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormCatalogRepository) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	return res.RowsAffected > 0, res.Error
}
