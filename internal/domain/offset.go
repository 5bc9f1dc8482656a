package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Offset is a fixed UTC offset in "±hh:mm" form, appended verbatim to input
// timestamps before parsing.
type Offset string

// DefaultOffset is the offset readings are recorded in (UTC+9).
const DefaultOffset Offset = "+09:00"

var offsetRe = regexp.MustCompile(`^[+-](\d{2}):(\d{2})$`)

// ParseOffset validates s as a "±hh:mm" offset.
func ParseOffset(s string) (Offset, error) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid utc offset %q: want ±hh:mm", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return "", fmt.Errorf("invalid utc offset %q: out of range", s)
	}
	return Offset(s), nil
}

// UnmarshalText lets an Offset be decoded straight from configuration.
func (o *Offset) UnmarshalText(text []byte) error {
	parsed, err := ParseOffset(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o Offset) String() string {
	return string(o)
}
