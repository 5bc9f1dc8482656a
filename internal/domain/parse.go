package domain

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	readingLayout  = "01/02/2006 15:04:05 -07:00"
	midnightLayout = "2006-01-02 15:04:05 -07:00"
	dateKeyLayout  = "2006-01-02"
)

var (
	// time.Parse tolerates single-digit hours and trailing fractional seconds;
	// these patterns pin every component to the layout's exact width.
	readingRe  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2} [+-]\d{2}:\d{2}$`)
	midnightRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{2}:\d{2}$`)

	decimalRe  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	radixRe    = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
	infinityRe = regexp.MustCompile(`^[+-]?Infinity$`)
)

// Outcome classifies what the parser did with a line.
type Outcome int

const (
	// Accepted means the line produced a record with a numeric temperature.
	Accepted Outcome = iota
	// AcceptedNonNumeric means the line produced a record but its temperature
	// text was not numeric; the temperature is NaN or 0 depending on policy.
	AcceptedNonNumeric
	// RejectedFieldCount means the line did not split into exactly three fields.
	RejectedFieldCount
	// RejectedTimestamp means the date and time did not parse strictly.
	RejectedTimestamp
	// RejectedTemperature means the temperature was not numeric under PolicyReject.
	RejectedTemperature
)

// Kept reports whether the outcome produced a record.
func (o Outcome) Kept() bool {
	return o == Accepted || o == AcceptedNonNumeric
}

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case AcceptedNonNumeric:
		return "accepted_non_numeric"
	case RejectedFieldCount:
		return "field_count"
	case RejectedTimestamp:
		return "timestamp"
	case RejectedTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// Parser converts raw lines into records. It holds no mutable state and is
// safe for concurrent use.
type Parser struct {
	offset Offset
	policy TemperaturePolicy
}

// NewParser creates a Parser that reads timestamps in the given offset and
// treats non-numeric temperatures according to policy.
func NewParser(offset Offset, policy TemperaturePolicy) (*Parser, error) {
	if _, err := ParseOffset(string(offset)); err != nil {
		return nil, err
	}
	if _, err := ParseTemperaturePolicy(string(policy)); err != nil {
		return nil, err
	}
	return &Parser{offset: offset, policy: policy}, nil
}

// ParseLine returns the record for line, or false if the line is dropped.
func (p *Parser) ParseLine(line string) (Record, bool) {
	rec, outcome := p.Classify(line)
	return rec, outcome.Kept()
}

// Classify parses line and reports the outcome. The returned record is only
// meaningful when the outcome is Kept.
func (p *Parser) Classify(line string) (Record, Outcome) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Record{}, RejectedFieldCount
	}
	for i := range fields {
		fields[i] = trimField(fields[i])
	}

	reading, ok := parseReadingTime(fields[0], fields[1], p.offset)
	if !ok {
		return Record{}, RejectedTimestamp
	}

	dateKey := reading.Format(dateKeyLayout)
	canonical, err := CanonicalTimestamp(dateKey, p.offset)
	if err != nil {
		return Record{}, RejectedTimestamp
	}

	outcome := Accepted
	temperature := ParseTemperature(fields[2])
	if math.IsNaN(temperature) {
		switch p.policy {
		case PolicyReject:
			return Record{}, RejectedTemperature
		case PolicyZero:
			temperature = 0
		}
		outcome = AcceptedNonNumeric
	}

	return Record{
		DateKey:            dateKey,
		CanonicalTimestamp: canonical,
		Temperature:        temperature,
	}, outcome
}

// trimField strips surrounding whitespace, including a byte order mark left
// on the first line of a file.
func trimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

// parseReadingTime strictly parses "<MM/DD/YYYY> <HH:mm:ss> <offset>".
// "24:00:00" is accepted as midnight at the end of the day.
func parseReadingTime(date, clock string, offset Offset) (time.Time, bool) {
	endOfDay := clock == "24:00:00"
	if endOfDay {
		clock = "00:00:00"
	}
	composite := date + " " + clock + " " + string(offset)
	if !readingRe.MatchString(composite) {
		return time.Time{}, false
	}
	t, err := time.Parse(readingLayout, composite)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

// CanonicalTimestamp returns epoch milliseconds of midnight of dateKey
// (YYYY-MM-DD) in the given offset.
func CanonicalTimestamp(dateKey string, offset Offset) (int64, error) {
	composite := dateKey + " 00:00:00 " + string(offset)
	if !midnightRe.MatchString(composite) {
		return 0, fmt.Errorf("canonical timestamp: malformed %q", composite)
	}
	t, err := time.Parse(midnightLayout, composite)
	if err != nil {
		return 0, fmt.Errorf("canonical timestamp: %w", err)
	}
	return t.UnixMilli(), nil
}

// ParseTemperature converts temperature text to a number without validating
// its range. Text that is not numeric yields NaN; empty text yields 0.
func ParseTemperature(text string) float64 {
	text = trimField(text)
	switch {
	case text == "":
		return 0
	case infinityRe.MatchString(text):
		if text[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case radixRe.MatchString(text):
		n, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return math.NaN()
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	case decimalRe.MatchString(text):
		v, err := strconv.ParseFloat(text, 64)
		// Out-of-range values still carry ±Inf or 0.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}
		return v
	default:
		return math.NaN()
	}
}
