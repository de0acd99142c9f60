package models_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/go-inventory/app/database/databasetest"
	"github.com/mytheresa/go-inventory/models"
)

func TestSuppliersRepository(t *testing.T) {
	ctx := context.Background()
	db, seed := databasetest.NewSeeded(t)
	repo := models.NewSuppliersRepository(db)

	t.Run("Get with products", func(t *testing.T) {
		s, err := repo.GetSupplierByID(ctx, seed.Suppliers[0].ID, true)
		require.NoError(t, err)
		assert.Equal(t, "TechCorp", s.Name)
		require.NotNil(t, s.Contact)
		assert.Equal(t, "techcorp@example.com", *s.Contact)
		assert.Len(t, s.Products, 2)
	})

	t.Run("Create without contact", func(t *testing.T) {
		s := models.Supplier{Name: "Garden Supplies"}
		require.NoError(t, repo.CreateSupplier(ctx, &s))

		stored, err := repo.GetSupplierByID(ctx, s.ID, false)
		require.NoError(t, err)
		assert.Nil(t, stored.Contact)
	})

	t.Run("Create requires a name", func(t *testing.T) {
		err := repo.CreateSupplier(ctx, &models.Supplier{Contact: ptr("nobody@example.com")})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Update contact only", func(t *testing.T) {
		n, err := repo.UpdateSupplier(ctx, seed.Suppliers[1].ID, models.SupplierUpdate{Contact: ptr("orders@bookstore.com")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		stored, err := repo.GetSupplierByID(ctx, seed.Suppliers[1].ID, false)
		require.NoError(t, err)
		assert.Equal(t, "BookStore", stored.Name)
		assert.Equal(t, "orders@bookstore.com", *stored.Contact)
	})

	t.Run("Missing supplier", func(t *testing.T) {
		_, err := repo.GetSupplierByID(ctx, 9999, false)
		assert.ErrorIs(t, err, models.ErrSupplierNotFound)

		n, err := repo.DeleteSupplier(ctx, 9999)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Delete referenced supplier is refused", func(t *testing.T) {
		_, err := repo.DeleteSupplier(ctx, seed.Suppliers[0].ID)
		assert.Error(t, err)
	})
}
