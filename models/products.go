package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the inventory.
// It belongs to exactly one category and one supplier; neither may be
// deleted while a product still references it.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID uint            `gorm:"not null;index"`
	Category   Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SupplierID uint            `gorm:"not null;index"`
	Supplier   Supplier        `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PriceScale and MaxPrice mirror the decimal(10,2) price column so every
// store accepts exactly the same prices.
const PriceScale = 2

var MaxPrice = decimal.RequireFromString("99999999.99")

// checkPrice rejects prices the price column cannot hold without rounding.
func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	case !price.Round(PriceScale).Equal(price):
		return &ValidationError{Field: "price", Reason: fmt.Sprintf("must have at most %d decimal places", PriceScale)}
	case price.GreaterThan(MaxPrice):
		return &ValidationError{Field: "price", Reason: "must not exceed " + MaxPrice.StringFixed(PriceScale)}
	}
	return nil
}

func (p *Product) TableName() string {
	return "products"
}

// ProductUpdate lists the product fields to overwrite. Nil fields keep
// their stored value, so a partially filled edit form never erases data.
type ProductUpdate struct {
	Name       *string
	Price      *decimal.Decimal
	CategoryID *uint
	SupplierID *uint
}

// IsEmpty reports whether the update would not change any column.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.CategoryID == nil && u.SupplierID == nil
}

func (u ProductUpdate) columns() (map[string]any, error) {
	cols := map[string]any{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, missing("name")
		}
		cols["name"] = *u.Name
	}
	if u.Price != nil {
		if err := checkPrice(*u.Price); err != nil {
			return nil, err
		}
		cols["price"] = *u.Price
	}
	if u.CategoryID != nil {
		cols["category_id"] = *u.CategoryID
	}
	if u.SupplierID != nil {
		cols["supplier_id"] = *u.SupplierID
	}
	return cols, nil
}
