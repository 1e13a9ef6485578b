package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus_NormalizesCaseAndSpace(t *testing.T) {
	status, err := ParseStatus("  confirmed ")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, status)
}

func TestParseStatus_RejectsUnknownValue(t *testing.T) {
	_, err := ParseStatus("REFUNDED")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStockActionFor_FullTable(t *testing.T) {
	fulfilling := []Status{StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered}

	// Leaving PENDING or CANCELED into any fulfilling state deducts.
	for _, from := range []Status{StatusPending, StatusCanceled} {
		for _, to := range fulfilling {
			action, err := StockActionFor(from, to)
			require.NoError(t, err)
			require.Equal(t, ActionDeduct, action, "%s -> %s", from, to)
		}
	}

	// Canceling an order that already holds stock returns it.
	for _, from := range fulfilling {
		action, err := StockActionFor(from, StatusCanceled)
		require.NoError(t, err)
		require.Equal(t, ActionReturn, action, "%s -> CANCELED", from)
	}

	// Everything else leaves stock untouched.
	none := []struct{ from, to Status }{
		{StatusConfirmed, StatusPreparing},
		{StatusPreparing, StatusShipped},
		{StatusShipped, StatusDelivered},
		{StatusPending, StatusCanceled},
		{StatusCanceled, StatusPending},
		{StatusDelivered, StatusPending},
		{StatusConfirmed, StatusConfirmed},
		{StatusPending, StatusPending},
		{StatusCanceled, StatusCanceled},
	}
	for _, tc := range none {
		action, err := StockActionFor(tc.from, tc.to)
		require.NoError(t, err)
		require.Equal(t, ActionNone, action, "%s -> %s", tc.from, tc.to)
	}
}

func TestStockActionFor_InvalidStatus(t *testing.T) {
	_, err := StockActionFor(StatusPending, Status("SHIPPING"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = StockActionFor(Status("unknown"), StatusCanceled)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrder_DerivesTotalFromLines(t *testing.T) {
	order, err := NewOrder(7, "Ada Lovelace", "+44 20 7946 0018", "ada@example.com", "",
		[]Item{
			{VariationID: 1, Quantity: 2, UnitPrice: 1500},
			{VariationID: 2, Quantity: 1, UnitPrice: 900},
		})
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, int64(3900), order.Total)
	require.Equal(t, int64(3000), order.Items[0].Subtotal())
}

func TestNewOrder_Validation(t *testing.T) {
	line := []Item{{VariationID: 1, Quantity: 1, UnitPrice: 100}}

	_, err := NewOrder(0, "Ada", "123", "", "", line)
	require.ErrorIs(t, err, ErrInvalidStoreRef)

	_, err = NewOrder(1, "  ", "123", "", "", line)
	require.ErrorIs(t, err, ErrEmptyCustomerName)

	_, err = NewOrder(1, "Ada", "", "", "", line)
	require.ErrorIs(t, err, ErrEmptyCustomerPhone)

	_, err = NewOrder(1, "Ada", "123", "", "", nil)
	require.ErrorIs(t, err, ErrEmptyItems)

	_, err = NewOrder(1, "Ada", "123", "", "", []Item{{VariationID: 0, Quantity: 1}})
	require.ErrorIs(t, err, ErrInvalidVariationRef)

	_, err = NewOrder(1, "Ada", "123", "", "", []Item{{VariationID: 1, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
