// Command genreadings writes a synthetic temperature log for demos and
// fixtures, including a controlled share of malformed lines. It runs the
// generated lines through the real domain parser and aggregator and prints
// the summary tempsummary will produce, for updating test assertions.
//
// Usage:
//
//	go run ./cmd/genreadings \
//	  -start 2024-01-15 -days 7 -per-day 24 \
//	  -malformed 0.05 -seed 42 \
//	  -out testdata/readings.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/temperature-summary/internal/domain"
)

type options struct {
	start     time.Time
	days      int
	perDay    int
	malformed float64
	seed      uint64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "2024-01-15", "first day to generate (YYYY-MM-DD)")
	days := flag.Int("days", 7, "number of consecutive days")
	perDay := flag.Int("per-day", 24, "readings per day, evenly spaced")
	malformed := flag.Float64("malformed", 0.05, "share of lines to corrupt, 0..1")
	seed := flag.Uint64("seed", 42, "random seed for reproducible output")
	out := flag.String("out", "", "output path for the generated CSV")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	startDay, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	opts := options{start: startDay, days: *days, perDay: *perDay, malformed: *malformed, seed: *seed}
	if err := opts.validate(); err != nil {
		return err
	}

	lines := generate(opts)
	if err := writeLines(*out, lines); err != nil {
		return fmt.Errorf("writing readings: %w", err)
	}
	log.Printf("wrote %d lines: %s", len(lines), *out)

	report, err := summarize(lines)
	if err != nil {
		return err
	}
	printStats(len(lines), report)
	return nil
}

func (o options) validate() error {
	switch {
	case o.days < 1:
		return fmt.Errorf("-days must be at least 1")
	case o.perDay < 1 || o.perDay > 24*60*60:
		return fmt.Errorf("-per-day must be between 1 and 86400")
	case o.malformed < 0 || o.malformed > 1:
		return fmt.Errorf("-malformed must be between 0 and 1")
	}
	return nil
}

// generate produces readings that follow a daily sine curve with noise, in
// chronological order. The same options always produce the same lines.
func generate(o options) []string {
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	step := 24 * time.Hour / time.Duration(o.perDay)

	lines := make([]string, 0, o.days*o.perDay)
	for d := range o.days {
		day := o.start.AddDate(0, 0, d)
		base := 5 + 3*math.Sin(float64(d)/3)
		for i := range o.perDay {
			at := day.Add(time.Duration(i) * step)
			hour := float64(at.Hour()) + float64(at.Minute())/60
			temp := base + 6*math.Sin((hour-9)*math.Pi/12) + rng.NormFloat64()
			line := fmt.Sprintf("%s, %s, %.1f", at.Format("01/02/2006"), at.Format("15:04:05"), temp)
			if rng.Float64() < o.malformed {
				line = corrupt(line, at, rng)
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// corrupt rewrites a line into one of the shapes the parser must drop.
func corrupt(line string, at time.Time, rng *rand.Rand) string {
	switch rng.IntN(4) {
	case 0:
		// Missing temperature field.
		return line[:strings.LastIndex(line, ",")]
	case 1:
		// Month and day out of range.
		return "13/45/" + at.Format("2006") + line[len("01/02/2006"):]
	case 2:
		// Time without seconds.
		return at.Format("01/02/2006") + ", " + at.Format("15:04") + line[strings.LastIndex(line, ","):]
	default:
		return line + ", extra"
	}
}

func summarize(lines []string) (domain.Report, error) {
	parser, err := domain.NewParser(domain.DefaultOffset, domain.PolicyPropagate)
	if err != nil {
		return domain.Report{}, err
	}
	records := make([]domain.Record, 0, len(lines))
	for _, line := range lines {
		if rec, ok := parser.ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return domain.Aggregate(records), nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(data), 0o600)
}

func printStats(lines int, report domain.Report) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Lines: %d\n", lines)
	fmt.Printf("Records: %d (dropped %d)\n", report.Records, lines-report.Records)
	fmt.Printf("Days: %d\n", report.Days())
	fmt.Println("\nExpected output.csv:")
	fmt.Println(domain.FormatReport(report))
}
