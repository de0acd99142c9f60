package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// productsBy loads the products whose column matches one of ids, grouped by
// the owning id returned by key.
func productsBy(ctx context.Context, db *gorm.DB, column string, ids []uint, key func(Product) uint) (map[uint][]Product, error) {
	grouped := make(map[uint][]Product, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	var products []Product
	if err := db.WithContext(ctx).Where(column+" IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products by %s: %w", column, err)
	}
	for _, p := range products {
		grouped[key(p)] = append(grouped[key(p)], p)
	}
	return grouped, nil
}

func (r *CategoriesRepository) attachProducts(ctx context.Context, categories []Category) error {
	ids := make([]uint, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	grouped, err := productsBy(ctx, r.db, "category_id", ids, func(p Product) uint { return p.CategoryID })
	if err != nil {
		return err
	}
	for i := range categories {
		categories[i].Products = grouped[categories[i].ID]
	}
	return nil
}

func (r *SuppliersRepository) attachProducts(ctx context.Context, suppliers []Supplier) error {
	ids := make([]uint, len(suppliers))
	for i, s := range suppliers {
		ids[i] = s.ID
	}

	grouped, err := productsBy(ctx, r.db, "supplier_id", ids, func(p Product) uint { return p.SupplierID })
	if err != nil {
		return err
	}
	for i := range suppliers {
		suppliers[i].Products = grouped[suppliers[i].ID]
	}
	return nil
}
