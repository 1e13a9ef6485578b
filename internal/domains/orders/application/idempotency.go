package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrder struct {
	StoreID       int64            `json:"storeId"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	CustomerEmail string           `json:"customerEmail"`
	Notes         string           `json:"notes"`
	Lines         []normalizedLine `json:"lines"`
}

type normalizedLine struct {
	VariationID int64 `json:"variationId"`
	Quantity    int32 `json:"quantity"`
}

// FingerprintPlaceOrder builds a deterministic hash of the placement payload
// (excluding the idempotency key) so replays can be matched to the stored order.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	lines := make([]normalizedLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, normalizedLine{VariationID: line.VariationID, Quantity: line.Quantity})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].VariationID != lines[j].VariationID {
			return lines[i].VariationID < lines[j].VariationID
		}
		return lines[i].Quantity < lines[j].Quantity
	})
	payload, err := json.Marshal(normalizedPlaceOrder{
		StoreID:       input.StoreID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		Notes:         input.Notes,
		Lines:         lines,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
