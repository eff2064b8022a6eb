package enums

import "fmt"

// UnitMeasure is the sale unit for market products.
type UnitMeasure string

const (
	UnitMeasureKilogram UnitMeasure = "kg"
	UnitMeasureGram     UnitMeasure = "g"
	UnitMeasureUnit     UnitMeasure = "un"
	UnitMeasureLiter    UnitMeasure = "lt"
)

var validUnitMeasures = []UnitMeasure{
	UnitMeasureKilogram,
	UnitMeasureGram,
	UnitMeasureUnit,
	UnitMeasureLiter,
}

// String implements fmt.Stringer.
func (u UnitMeasure) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UnitMeasure.
func (u UnitMeasure) IsValid() bool {
	for _, candidate := range validUnitMeasures {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnitMeasure converts raw input into a UnitMeasure.
func ParseUnitMeasure(value string) (UnitMeasure, error) {
	for _, candidate := range validUnitMeasures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit measure %q", value)
}
