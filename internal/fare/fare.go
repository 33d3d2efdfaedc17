// Package fare computes reservation bills. Compute is pure: the lifecycle
// service calls it immediately before every persist, so a bill on disk is
// always derived from the fields stored next to it.
package fare

import (
	"strconv"
	"strings"

	"github.com/avelora/flightreserve/internal/domain"
)

const (
	PremiumSeatSurcharge = 30.0
	BaggageRatePerKg     = 5.0
	TaxRate              = 0.12
)

// Rows 1-4 carry the premium surcharge.
var premiumRows = map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}}

type Inputs struct {
	BaseFare    float64
	PremiumSeat bool
	MealPrice   float64
	BaggageKg   float64
}

func Compute(in Inputs) domain.Bill {
	bill := domain.Bill{
		BaseFare:   in.BaseFare,
		MealFee:    in.MealPrice,
		BaggageFee: in.BaggageKg * BaggageRatePerKg,
	}
	if in.PremiumSeat {
		bill.SeatFee = PremiumSeatSurcharge
	}

	bill.Subtotal = bill.BaseFare + bill.SeatFee + bill.MealFee + bill.BaggageFee
	bill.Tax = bill.Subtotal * TaxRate
	bill.Total = bill.Subtotal + bill.Tax
	return bill
}

// SeatRow extracts the leading row number from a seat code like "12C".
// Codes without a leading number map to row 0.
func SeatRow(code string) int {
	i := 0
	for i < len(code) && code[i] >= '0' && code[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	row, err := strconv.Atoi(code[:i])
	if err != nil {
		return 0
	}
	return row
}

func IsPremiumSeat(code string) bool {
	_, ok := premiumRows[SeatRow(strings.TrimSpace(code))]
	return ok
}

// ParseBaggageKg follows the booking form contract: absent or non-numeric
// baggage means zero kilograms.
func ParseBaggageKg(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil || kg < 0 {
		return 0
	}
	return kg
}
