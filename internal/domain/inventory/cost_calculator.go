package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost computes the new average cost after a receipt
// (domain service).
// newCost = ((onHand * currentCost) + (received * receivedCost)) / (onHand + received)
func WeightedAverageCost(onHand, currentCost, received, receivedCost decimal.Decimal) decimal.Decimal {
	sum := onHand.Add(received)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(received.Mul(receivedCost))
	return num.Div(sum)
}
