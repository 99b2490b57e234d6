package util

import "math"

// Round2 rounds a money amount to two decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// WholeVND rounds an amount to whole đồng, the unit the payment gateways
// transact in.
func WholeVND(amount float64) int64 {
	return int64(math.Round(amount))
}
