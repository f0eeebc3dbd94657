package models

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// CatalogFields holds the columns shared by categories and subcategories.
type CatalogFields struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// EnsureSlug derives the slug from the name when none was provided.
// The derivation is deterministic: the same name always yields the
// same slug.
func (f *CatalogFields) EnsureSlug() {
	if f.Slug == "" {
		f.Slug = slug.Make(f.Name)
	}
}

// Category groups subcategories at the top of the catalog tree.
type Category struct {
	CatalogFields `gorm:"embedded"`

	Subcategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// SubCategory belongs to exactly one category and is deleted with it.
type SubCategory struct {
	CatalogFields `gorm:"embedded"`

	CategoryID uint      `gorm:"not null;index" json:"-"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"-"`
	Products   []Product `gorm:"foreignKey:SubCategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// Product is a sellable catalog item. Price is fixed-point with two
// decimal places; the three image fields hold pre-rendered size variants.
type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"size:150;not null" json:"name"`
	Slug          string          `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"-"`
	ImageSmall    string          `gorm:"size:255" json:"image_small,omitempty"`
	ImageMedium   string          `gorm:"size:255" json:"image_medium,omitempty"`
	ImageLarge    string          `gorm:"size:255" json:"image_large,omitempty"`
	SubCategoryID uint            `gorm:"not null;index" json:"-"`
	SubCategory   SubCategory     `gorm:"foreignKey:SubCategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

// EnsureSlug derives the slug from the name when none was provided.
func (p *Product) EnsureSlug() {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
}

// ShortURL is the canonical catalog path for the product.
func (p *Product) ShortURL() string {
	return "products/" + p.Slug + "/"
}
