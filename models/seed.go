package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedResult reports what Seed wrote.
type SeedResult struct {
	Skipped    bool
	Categories []Category
	Suppliers  []Supplier
	Products   []Product
}

// Seed writes the demonstration catalog: two categories, two suppliers and
// three products referencing them. Nothing is written when the store already
// holds at least one product. Categories and suppliers that already exist
// under a demonstration name are reused instead of duplicated.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return SeedResult{}, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return SeedResult{Skipped: true}, nil
	}

	products := NewProductsRepository(db)

	var res SeedResult

	for _, name := range []string{"Electronics", "Books"} {
		var c Category
		err := db.WithContext(ctx).Where("name = ?", name).Attrs(Category{Name: name}).FirstOrCreate(&c).Error
		if err != nil {
			return res, fmt.Errorf("seed category %q: %w", name, err)
		}
		res.Categories = append(res.Categories, c)
	}

	for _, s := range []struct{ name, contact string }{
		{"TechCorp", "techcorp@example.com"},
		{"BookStore", "contact@bookstore.com"},
	} {
		contact := s.contact
		var sup Supplier
		err := db.WithContext(ctx).Where("name = ?", s.name).Attrs(Supplier{Name: s.name, Contact: &contact}).FirstOrCreate(&sup).Error
		if err != nil {
			return res, fmt.Errorf("seed supplier %q: %w", s.name, err)
		}
		res.Suppliers = append(res.Suppliers, sup)
	}

	electronics, books := res.Categories[0].ID, res.Categories[1].ID
	techCorp, bookStore := res.Suppliers[0].ID, res.Suppliers[1].ID

	for _, p := range []Product{
		{Name: "Laptop", Price: decimal.RequireFromString("1200.99"), CategoryID: electronics, SupplierID: techCorp},
		{Name: "Smartphone", Price: decimal.RequireFromString("799.49"), CategoryID: electronics, SupplierID: techCorp},
		{Name: "Programming Book", Price: decimal.RequireFromString("29.99"), CategoryID: books, SupplierID: bookStore},
	} {
		if err := products.CreateProduct(ctx, &p); err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		res.Products = append(res.Products, p)
	}

	return res, nil
}
