package domain

import "github.com/couchcryptid/temperature-summary/internal/orderedmap"

type dayExtrema struct {
	min       float64
	max       float64
	timestamp int64
}

// Aggregate folds records into one summary per distinct day, in the order
// each day first appears. It never fails and does not modify records.
//
// Min and max use the built-in min/max, so once a NaN temperature reaches a
// day its extrema stay NaN.
func Aggregate(records []Record) Report {
	days := orderedmap.New[string, dayExtrema]()

	for _, rec := range records {
		ext, seen := days.Get(rec.DateKey)
		if seen {
			ext.min = min(ext.min, rec.Temperature)
			ext.max = max(ext.max, rec.Temperature)
		} else {
			ext.min, ext.max = rec.Temperature, rec.Temperature
		}
		// Last write wins; the timestamp depends only on the day key.
		ext.timestamp = rec.CanonicalTimestamp
		days.Set(rec.DateKey, ext)
	}

	summaries := make([]DailySummary, 0, days.Len())
	for dateKey, ext := range days.All() {
		summaries = append(summaries, DailySummary{
			DateKey:            dateKey,
			CanonicalTimestamp: ext.timestamp,
			MinTemperature:     ext.min,
			MaxTemperature:     ext.max,
		})
	}

	return Report{Summaries: summaries, Records: len(records)}
}
