package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// GetAllCategories returns every category ordered by id, optionally with
// the products that reference it.
func (r *CategoriesRepository) GetAllCategories(ctx context.Context, withRelations bool) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	if withRelations {
		if err := r.attachProducts(ctx, categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id uint, withRelations bool) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	if withRelations {
		one := []Category{category}
		if err := r.attachProducts(ctx, one); err != nil {
			return nil, err
		}
		category = one[0]
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return missing("name")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, u CategoryUpdate) (int64, error) {
	cols, err := u.columns()
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, fmt.Errorf("update category %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteCategory fails with the store's constraint error while products
// still reference the category.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Category{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete category %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
