package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) query(ctx context.Context, withRelations bool) *gorm.DB {
	q := r.db.WithContext(ctx)
	if withRelations {
		q = q.Preload("Category").Preload("Supplier")
	}
	return q
}

// GetAllProducts returns every product ordered by id. With relations the
// category and supplier of each product are populated.
func (r *ProductsRepository) GetAllProducts(ctx context.Context, withRelations bool) ([]Product, error) {
	var products []Product
	if err := r.query(ctx, withRelations).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetProductByID(ctx context.Context, id uint, withRelations bool) (*Product, error) {
	var product Product
	if err := r.query(ctx, withRelations).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &product, nil
}

// CreateProduct inserts p and sets its ID. Name, a price the price column can
// hold exactly and existing category and supplier references are required.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return missing("name")
	}
	if err := checkPrice(p.Price); err != nil {
		return err
	}

	switch {
	case p.CategoryID == 0:
		return missing("category_id")
	case p.SupplierID == 0:
		return missing("supplier_id")
	}

	if err := r.checkReferences(ctx, &p.CategoryID, &p.SupplierID); err != nil {
		return err
	}

	// Only the product row is written, never the associations.
	if err := r.db.WithContext(ctx).Omit("Category", "Supplier").Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct writes the non-nil fields of u to the product with the given
// id and returns the number of updated rows (0 when the id does not exist).
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, u ProductUpdate) (int64, error) {
	cols, err := u.columns()
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, nil
	}

	if err := r.checkReferences(ctx, u.CategoryID, u.SupplierID); err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, fmt.Errorf("update product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteProduct removes the product with the given id and returns the number
// of deleted rows (0 when the id does not exist).
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ProductsRepository) checkReferences(ctx context.Context, categoryID, supplierID *uint) error {
	if categoryID != nil {
		ok, err := exists(ctx, r.db, &Category{}, *categoryID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Field: "category_id", Reason: "unknown category"}
		}
	}
	if supplierID != nil {
		ok, err := exists(ctx, r.db, &Supplier{}, *supplierID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Field: "supplier_id", Reason: "unknown supplier"}
		}
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count %T %d: %w", model, id, err)
	}
	return n > 0, nil
}
