package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/temperature-summary/internal/domain"
	"github.com/couchcryptid/temperature-summary/internal/observability"
	"github.com/jonboulle/clockwork"
)

// LineExtractor reads the complete input as ordered lines.
type LineExtractor interface {
	ExtractLines(ctx context.Context) ([]string, error)
}

// LineParser converts one line into a record and reports what it did.
type LineParser interface {
	Classify(line string) (domain.Record, domain.Outcome)
}

// ReportLoader writes a finished report to a destination.
type ReportLoader interface {
	LoadReport(ctx context.Context, report domain.Report) error
}

// Pipeline runs one batch: extract all lines, parse them in order, aggregate
// once, then hand the report to each loader in turn.
type Pipeline struct {
	extractor LineExtractor
	parser    LineParser
	loaders   []ReportLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source for run timing and the report timestamp.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// New creates a Pipeline with the given stages and observability.
func New(e LineExtractor, parser LineParser, loaders []ReportLoader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: e,
		parser:    parser,
		loaders:   loaders,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the batch. The returned report carries the record count even
// when a loader fails, so callers can still report what was collected.
func (p *Pipeline) Run(ctx context.Context) (domain.Report, error) {
	start := p.clock.Now()

	lines, err := p.extractor.ExtractLines(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("extract lines: %w", err)
	}
	p.metrics.LinesRead.Add(float64(len(lines)))

	records := p.parseAll(lines)
	p.logger.Info("records collected", "lines", len(lines), "records", len(records))

	report := domain.Aggregate(records)
	report.GeneratedAt = p.clock.Now()
	p.metrics.DaysSummarized.Set(float64(report.Days()))

	for _, loader := range p.loaders {
		if err := loader.LoadReport(ctx, report); err != nil {
			return report, fmt.Errorf("load report: %w", err)
		}
	}

	elapsed := p.clock.Since(start)
	p.metrics.RunDuration.Observe(elapsed.Seconds())
	p.logger.Info("summary complete", "records", report.Records, "days", report.Days(), "elapsed", elapsed)
	return report, nil
}

// parseAll parses lines in file order. Dropped lines are counted per reason
// and logged once in aggregate, never individually.
func (p *Pipeline) parseAll(lines []string) []domain.Record {
	records := make([]domain.Record, 0, len(lines))
	skipped := map[domain.Outcome]int{}
	nonNumeric := 0

	for _, line := range lines {
		rec, outcome := p.parser.Classify(line)
		if !outcome.Kept() {
			skipped[outcome]++
			p.metrics.LinesSkipped.WithLabelValues(outcome.String()).Inc()
			continue
		}
		if outcome == domain.AcceptedNonNumeric {
			nonNumeric++
			p.metrics.TemperaturesInvalid.Inc()
		}
		records = append(records, rec)
	}
	p.metrics.RecordsParsed.Add(float64(len(records)))

	if len(skipped) > 0 {
		p.logger.Debug("lines skipped",
			"field_count", skipped[domain.RejectedFieldCount],
			"timestamp", skipped[domain.RejectedTimestamp],
			"temperature", skipped[domain.RejectedTemperature],
		)
	}
	if nonNumeric > 0 {
		p.logger.Warn("non-numeric temperatures accepted", "count", nonNumeric)
	}
	return records
}
