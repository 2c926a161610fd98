package product_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, sku, name, description string) product.Item {
	t.Helper()
	item, err := product.NewItem(sku, name, description)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		item, err := product.NewItem("SKU-1", "Sneaker", "A shoe")
		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "SKU-1", item.SKU())
		assert.Equal(t, "Sneaker", item.Name())
		assert.Equal(t, "A shoe", item.Description())
	})

	t.Run("empty sku is rejected", func(t *testing.T) {
		_, err := product.NewItem("", "Sneaker", "A shoe")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item product.Item
		require.Error(t, item.Validate())
	})
}

func TestCatalog_Lookup(t *testing.T) {
	t.Run("known sku resolves", func(t *testing.T) {
		catalog, err := product.NewCatalog([]product.Item{
			mustItem(t, "A", "A", "first"),
			mustItem(t, "B", "B", "second"),
		})
		require.NoError(t, err)

		item, err := catalog.Lookup("B")
		require.NoError(t, err)
		assert.Equal(t, "second", item.Description())
	})

	t.Run("unknown sku reports not found", func(t *testing.T) {
		catalog, err := product.NewCatalog(nil)
		require.NoError(t, err)

		_, err = catalog.Lookup("missing")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("latest duplicate entry wins", func(t *testing.T) {
		catalog, err := product.NewCatalog([]product.Item{
			mustItem(t, "A", "A", "original"),
			mustItem(t, "A", "A", "revised"),
		})
		require.NoError(t, err)

		item, err := catalog.Lookup("A")
		require.NoError(t, err)
		assert.Equal(t, "revised", item.Description())

		// Both versions remain registered.
		assert.Len(t, catalog.Items(), 2)
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := product.DefaultCatalog()
	require.NoError(t, err)

	// The seed data carries 20 entries, some of which share a SKU.
	assert.Len(t, catalog.Items(), 20)

	// Duplicate SKUs resolve to the newest catalog version.
	item, err := catalog.Lookup("Nike Air Force Ones")
	require.NoError(t, err)
	assert.Contains(t, item.Description(), "Model 11")

	_, err = catalog.Lookup("nonexistent sneaker")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
