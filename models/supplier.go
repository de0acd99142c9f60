package models

import "time"

// Supplier represents a company products are bought from.
// Contact is optional free text (an email address in the demo data).
type Supplier struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	Contact   *string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Products is filled by the repository when relations are requested.
	Products []Product `gorm:"-"`
}

func (s *Supplier) TableName() string {
	return "suppliers"
}

// SupplierUpdate lists the supplier fields to overwrite. Nil fields keep
// their stored value.
type SupplierUpdate struct {
	Name    *string
	Contact *string
}

func (u SupplierUpdate) columns() (map[string]any, error) {
	cols := map[string]any{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, missing("name")
		}
		cols["name"] = *u.Name
	}
	if u.Contact != nil {
		cols["contact"] = *u.Contact
	}
	return cols, nil
}
