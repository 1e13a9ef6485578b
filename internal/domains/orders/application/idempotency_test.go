package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
)

func TestFingerprintPlaceOrder_IgnoresLineOrder(t *testing.T) {
	a := placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: 2},
		types.PlaceOrderLine{VariationID: 2, Quantity: 1},
	)
	b := placement(
		types.PlaceOrderLine{VariationID: 2, Quantity: 1},
		types.PlaceOrderLine{VariationID: 1, Quantity: 2},
	)

	hashA, err := FingerprintPlaceOrder(a)
	require.NoError(t, err)
	hashB, err := FingerprintPlaceOrder(b)
	require.NoError(t, err)
	require.Equal(t, hashA, hashB)
}

func TestFingerprintPlaceOrder_DistinguishesCarts(t *testing.T) {
	a := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 2})
	b := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 3})

	hashA, err := FingerprintPlaceOrder(a)
	require.NoError(t, err)
	hashB, err := FingerprintPlaceOrder(b)
	require.NoError(t, err)
	require.NotEqual(t, hashA, hashB)
}
