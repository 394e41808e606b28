package pricing

import "micarta/internal/domain"

// Resolve computes the chargeable price for a pricing spec and an optional
// quantity. UNIT-mode items cost PricePerUnit no matter what quantity is
// supplied. The function is total: a nil spec prices at 0 and absent fields
// fall back to their documented defaults, so it never fails.
func Resolve(spec *domain.PricingSpec, quantity *float64) float64 {
	if spec == nil {
		return 0
	}
	if spec.Mode == domain.ModeUnit {
		return spec.PricePerUnit
	}
	base := spec.BaseUnit
	if base <= 0 {
		base = 1
	}
	q := base
	if quantity != nil {
		q = *quantity
	}
	return (q / base) * spec.PricePerUnit
}

// Limits bounds a quantity selector: minimum purchasable amount, a fixed
// ceiling and a fixed increment per mode/unit pair.
type Limits struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// QuantityLimits returns the selector bounds for a pricing spec. The ceilings
// and increments are domain constants, not derived from the spec.
func QuantityLimits(spec *domain.PricingSpec) Limits {
	if spec == nil {
		return Limits{Min: 0, Max: 1000, Step: 1}
	}
	min := spec.BaseUnit
	if min <= 0 {
		min = 1
	}
	switch {
	case spec.Mode == domain.ModeWeight && spec.Unit == domain.UnitGram:
		return Limits{Min: min, Max: 5000, Step: 10}
	case spec.Mode == domain.ModeWeight && spec.Unit == domain.UnitKilogram:
		return Limits{Min: min, Max: 10, Step: 0.1}
	case spec.Mode == domain.ModeVolume && spec.Unit == domain.UnitMilliliter:
		return Limits{Min: min, Max: 5000, Step: 50}
	case spec.Mode == domain.ModeVolume && spec.Unit == domain.UnitLiter:
		return Limits{Min: min, Max: 10, Step: 0.1}
	case spec.Mode == domain.ModeLength:
		return Limits{Min: min, Max: 100, Step: 0.1}
	case spec.Mode == domain.ModeArea:
		return Limits{Min: min, Max: 100, Step: 0.1}
	default:
		return Limits{Min: min, Max: 1000, Step: 1}
	}
}

// UnitAbbreviation maps a pricing unit to the short form shown next to a
// custom quantity in order messages.
func UnitAbbreviation(unit domain.PricingUnit) string {
	switch unit {
	case domain.UnitGram:
		return "g"
	case domain.UnitKilogram:
		return "kg"
	case domain.UnitMilliliter:
		return "ml"
	case domain.UnitLiter:
		return "L"
	case domain.UnitMeter:
		return "m"
	case domain.UnitSquareMeter:
		return "m²"
	default:
		return ""
	}
}
