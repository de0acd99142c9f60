package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type SuppliersRepository struct {
	db *gorm.DB
}

func NewSuppliersRepository(db *gorm.DB) *SuppliersRepository {
	return &SuppliersRepository{db: db}
}

func (r *SuppliersRepository) GetAllSuppliers(ctx context.Context, withRelations bool) ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.WithContext(ctx).Order("id").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("find suppliers: %w", err)
	}
	if withRelations {
		if err := r.attachProducts(ctx, suppliers); err != nil {
			return nil, err
		}
	}
	return suppliers, nil
}

func (r *SuppliersRepository) GetSupplierByID(ctx context.Context, id uint, withRelations bool) (*Supplier, error) {
	var supplier Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("find supplier %d: %w", id, err)
	}
	if withRelations {
		one := []Supplier{supplier}
		if err := r.attachProducts(ctx, one); err != nil {
			return nil, err
		}
		supplier = one[0]
	}
	return &supplier, nil
}

func (r *SuppliersRepository) CreateSupplier(ctx context.Context, s *Supplier) error {
	if s.Name == "" {
		return missing("name")
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *SuppliersRepository) UpdateSupplier(ctx context.Context, id uint, u SupplierUpdate) (int64, error) {
	cols, err := u.columns()
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&Supplier{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, fmt.Errorf("update supplier %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteSupplier fails with the store's constraint error while products
// still reference the supplier.
func (r *SuppliersRepository) DeleteSupplier(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Supplier{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete supplier %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
