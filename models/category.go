package models

import "time"

// Category represents a product category.
// Products reference it through Product.CategoryID; the foreign key is
// declared on the product side only.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Products is filled by the repository when relations are requested.
	Products []Product `gorm:"-"`
}

func (c *Category) TableName() string {
	return "categories"
}

// CategoryUpdate lists the category fields to overwrite. Nil fields keep
// their stored value.
type CategoryUpdate struct {
	Name *string
}

func (u CategoryUpdate) columns() (map[string]any, error) {
	cols := map[string]any{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, missing("name")
		}
		cols["name"] = *u.Name
	}
	return cols, nil
}
