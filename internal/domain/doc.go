// Package domain turns raw temperature log lines into daily min/max summaries.
//
// # Input Format
//
// Each line carries three comma-separated fields, surrounding whitespace (and a
// byte order mark) ignored:
//
//	"<MM/DD/YYYY>, <HH:mm:ss>, <temperature>"  →  e.g. "01/15/2024, 08:00:00, 5.5"
//
// Date and time are parsed strictly: every component has a fixed width, the
// hour is 24-hour, and out-of-range values (month 13, February 30, 24:00:01)
// reject the line. "24:00:00" alone is accepted as midnight of the next day. Lines with any other field count are dropped. Dropping is
// routine, not an error; the parser reports a [Outcome] so callers can count
// why lines were skipped.
//
// # Time Zone
//
// Readings carry no zone of their own. A fixed [Offset] (default +09:00) is
// appended before parsing, so the calendar day of a reading is the day in that
// offset. The offset is configuration, never process-global state.
//
// # Canonical Timestamp
//
// A record's timestamp is not the reading's own time. The day key is
// formatted from the parsed reading, then "<dateKey> 00:00:00 <offset>" is
// parsed again and its epoch milliseconds become the canonical timestamp.
// All readings of one day therefore share one timestamp: midnight of that day
// in the configured offset.
//
// # Temperature Text
//
// Temperature conversion follows loose numeric-text rules: empty text is 0,
// decimal and exponent notation are accepted, as are 0x/0o/0b integer
// literals and Infinity/-Infinity. Anything else is NaN. What happens to NaN
// depends on [TemperaturePolicy]; the default keeps the record and lets NaN
// flow into aggregation, where it poisons that day's min and max.
//
// # Output Lines
//
// One line per day, in first-occurrence order of the day in the input:
//
//	"<dateKey>, <canonicalTimestampMs>, <min>, <max>"
//
// Numbers are rendered by [FormatNumber].
package domain
