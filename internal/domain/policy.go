package domain

import "fmt"

// TemperaturePolicy decides what happens to a record whose temperature text
// is not numeric.
type TemperaturePolicy string

const (
	// PolicyPropagate keeps the record with a NaN temperature.
	PolicyPropagate TemperaturePolicy = "propagate"
	// PolicyZero keeps the record with the temperature coerced to 0.
	PolicyZero TemperaturePolicy = "zero"
	// PolicyReject drops the record.
	PolicyReject TemperaturePolicy = "reject"
)

// ParseTemperaturePolicy validates s as one of the known policies.
func ParseTemperaturePolicy(s string) (TemperaturePolicy, error) {
	switch p := TemperaturePolicy(s); p {
	case PolicyPropagate, PolicyZero, PolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("invalid temperature policy %q: want propagate, zero or reject", s)
	}
}

// UnmarshalText lets a TemperaturePolicy be decoded straight from configuration.
func (p *TemperaturePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseTemperaturePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
