package services_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderItem(t *testing.T, sku string, quantity int) order.OrderItem {
	t.Helper()
	item, err := order.RestoreOrderItem(sku, "name "+sku, "", quantity)
	require.NoError(t, err)
	return item
}

func TestFulfillmentSplitter_Split(t *testing.T) {
	splitter := services.NewFulfillmentSplitter()

	t.Run("groups items by location in first appearance order", func(t *testing.T) {
		items := []order.OrderItem{
			orderItem(t, "A", 2),
			orderItem(t, "B", 1),
			orderItem(t, "C", 3),
		}
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
		require.NoError(t, err)

		locations := map[string]string{"A": "loc1", "B": "loc2", "C": "loc1"}
		require.NoError(t, splitter.Split(o, locations))

		fulfillments := o.Fulfillments()
		require.Len(t, fulfillments, 2)

		assert.Equal(t, "loc1", fulfillments[0].Location())
		assert.Equal(t, []string{"A", "C"}, skus(fulfillments[0]))
		assert.Equal(t, "loc2", fulfillments[1].Location())
		assert.Equal(t, []string{"B"}, skus(fulfillments[1]))

		for i, f := range fulfillments {
			assert.Equal(t, fmt.Sprintf("%s:%d", o.ID().String(), i+1), f.ID())
			assert.Equal(t, order.FulfillmentStatusPending, f.Status())
		}
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("unavailable items form a trailing fulfillment", func(t *testing.T) {
		items := []order.OrderItem{
			orderItem(t, "A", 2),
			orderItem(t, "B", 1),
		}
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
		require.NoError(t, err)

		require.NoError(t, splitter.Split(o, map[string]string{"A": "loc1"}))

		fulfillments := o.Fulfillments()
		require.Len(t, fulfillments, 2)
		assert.Equal(t, order.FulfillmentStatusPending, fulfillments[0].Status())
		assert.Equal(t, order.FulfillmentStatusUnavailable, fulfillments[1].Status())
		assert.Empty(t, fulfillments[1].Location())
		assert.Equal(t, []string{"B"}, skus(fulfillments[1]))
		assert.Equal(t, order.StatusCustomerActionRequired, o.Status())
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		items := []order.OrderItem{
			orderItem(t, "A", 1),
			orderItem(t, "B", 2),
			orderItem(t, "C", 1),
		}
		locations := map[string]string{"A": "loc2", "B": "loc1", "C": "loc2"}

		var first []string
		for i := 0; i < 3; i++ {
			o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
			require.NoError(t, err)
			require.NoError(t, splitter.Split(o, locations))

			var shape []string
			for _, f := range o.Fulfillments() {
				shape = append(shape, fmt.Sprintf("%s=%v", f.Location(), skus(f)))
			}
			if first == nil {
				first = shape
			} else {
				assert.Equal(t, first, shape)
			}
		}
	})

	t.Run("second split with unchanged availability is a no-op", func(t *testing.T) {
		items := []order.OrderItem{orderItem(t, "A", 1), orderItem(t, "B", 2)}
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
		require.NoError(t, err)
		locations := map[string]string{"A": "loc1", "B": "loc2"}
		require.NoError(t, splitter.Split(o, locations))
		before := o.Fulfillments()

		require.NoError(t, splitter.Split(o, locations))

		after := o.Fulfillments()
		require.Len(t, after, 2)
		for i := range before {
			assert.Same(t, before[i], after[i])
		}
	})

	t.Run("second split keeps progressed fulfillments untouched", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.OrderItem{orderItem(t, "A", 1)})
		require.NoError(t, err)
		locations := map[string]string{"A": "loc1"}
		require.NoError(t, splitter.Split(o, locations))
		require.NoError(t, o.Fulfillments()[0].BeginProcessing())

		require.NoError(t, splitter.Split(o, locations))
		assert.Equal(t, order.FulfillmentStatusProcessing, o.Fulfillments()[0].Status())
	})

	t.Run("second split with changed availability fails", func(t *testing.T) {
		items := []order.OrderItem{orderItem(t, "A", 1), orderItem(t, "B", 2)}
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
		require.NoError(t, err)
		require.NoError(t, splitter.Split(o, map[string]string{"A": "loc1", "B": "loc2"}))
		before := o.Fulfillments()

		err = splitter.Split(o, map[string]string{"A": "loc1", "B": "loc1"})
		require.ErrorIs(t, err, services.ErrAlreadySplit)

		after := o.Fulfillments()
		require.Len(t, after, 2)
		for i := range before {
			assert.Same(t, before[i], after[i])
		}
	})

	t.Run("item going unavailable changes the partition", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.OrderItem{orderItem(t, "A", 1)})
		require.NoError(t, err)
		require.NoError(t, splitter.Split(o, map[string]string{"A": "loc1"}))

		require.ErrorIs(t, splitter.Split(o, map[string]string{}), services.ErrAlreadySplit)
		assert.Equal(t, order.FulfillmentStatusPending, o.Fulfillments()[0].Status())
	})
}

func TestFulfillmentSplitter_Resplit(t *testing.T) {
	splitter := services.NewFulfillmentSplitter()

	t.Run("replaces the fulfillment set when availability changed", func(t *testing.T) {
		items := []order.OrderItem{orderItem(t, "A", 1), orderItem(t, "B", 2)}
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
		require.NoError(t, err)

		require.NoError(t, splitter.Split(o, map[string]string{"A": "loc1"}))
		require.Equal(t, order.StatusCustomerActionRequired, o.Status())

		require.NoError(t, splitter.Resplit(o, map[string]string{"A": "loc1", "B": "loc2"}))
		require.Len(t, o.Fulfillments(), 2)
		assert.Equal(t, order.FulfillmentStatusPending, o.Fulfillments()[1].Status())
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("illegal once processing started", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.OrderItem{orderItem(t, "A", 1)})
		require.NoError(t, err)
		locations := map[string]string{"A": "loc1"}
		require.NoError(t, splitter.Split(o, locations))
		require.NoError(t, o.Fulfillments()[0].BeginProcessing())

		require.ErrorIs(t, splitter.Resplit(o, locations), order.ErrInvalidTransition)
	})
}

func skus(f *order.Fulfillment) []string {
	var out []string
	for _, item := range f.Items() {
		out = append(out, item.SKU())
	}
	return out
}
