package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VariantKind string

const (
	VariantRegular VariantKind = "regular"
	VariantOnSale  VariantKind = "on-sale"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string          `gorm:"size:255;not null"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Sku         string          `gorm:"size:100;uniqueIndex"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	StockOnHand int             `gorm:"not null"`

	Kind            VariantKind     `gorm:"size:20;not null;default:regular"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);default:0.00"`
	SalePrice       decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`

	ProductImages []ProductImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// OnSale reports whether the product carries a usable discounted price:
// the on-sale tag plus a positive current price no greater than list.
func (p *Product) OnSale() bool {
	return p.Kind == VariantOnSale &&
		p.SalePrice.IsPositive() &&
		p.SalePrice.LessThanOrEqual(p.ListPrice)
}

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;index"`
	AssetRef  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
