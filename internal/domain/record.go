package domain

import "time"

// Record is one accepted input line, reduced to its calendar day.
type Record struct {
	// DateKey is the reading's calendar day as YYYY-MM-DD.
	DateKey string
	// CanonicalTimestamp is epoch milliseconds of midnight of DateKey in the parser's offset.
	CanonicalTimestamp int64
	Temperature        float64
}

// DailySummary holds the temperature extrema of one calendar day.
type DailySummary struct {
	DateKey            string
	CanonicalTimestamp int64
	MinTemperature     float64
	MaxTemperature     float64
}

// Report is the result of aggregating one run's records.
type Report struct {
	// Summaries are ordered by first occurrence of each day in the input.
	Summaries []DailySummary
	// Records is the number of records that were aggregated.
	Records int
	// GeneratedAt is stamped by the pipeline; Aggregate leaves it zero.
	GeneratedAt time.Time
}

// Days returns the number of distinct days summarized.
func (r Report) Days() int {
	return len(r.Summaries)
}
