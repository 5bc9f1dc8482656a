package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/temperature-summary/internal/domain"
	"github.com/couchcryptid/temperature-summary/internal/observability"
	"github.com/couchcryptid/temperature-summary/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	lines   []string
	err     error
	clock   interface{ Advance(time.Duration) }
	advance time.Duration
}

func (m *mockExtractor) ExtractLines(_ context.Context) ([]string, error) {
	if m.clock != nil {
		m.clock.Advance(m.advance)
	}
	return m.lines, m.err
}

type recordingLoader struct {
	reports []domain.Report
	err     error
}

func (m *recordingLoader) LoadReport(_ context.Context, report domain.Report) error {
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, report)
	return nil
}

func newParser(t *testing.T, policy domain.TemperaturePolicy) *domain.Parser {
	t.Helper()
	p, err := domain.NewParser(domain.DefaultOffset, policy)
	require.NoError(t, err)
	return p
}

var runStart = time.Date(2024, time.January, 17, 6, 0, 0, 0, time.UTC)

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{lines: []string{
		"01/15/2024, 08:00:00, 5",
		"01/15/2024, 20:00:00, 12",
		"01/16/2024, 08:00:00, -1",
	}}
	first, second := &recordingLoader{}, &recordingLoader{}
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(runStart)

	p := pipeline.New(ext, newParser(t, domain.PolicyPropagate), []pipeline.ReportLoader{first, second},
		slog.Default(), metrics, pipeline.WithClock(clock))

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	expected := []domain.DailySummary{
		{DateKey: "2024-01-15", CanonicalTimestamp: 1705244400000, MinTemperature: 5, MaxTemperature: 12},
		{DateKey: "2024-01-16", CanonicalTimestamp: 1705330800000, MinTemperature: -1, MaxTemperature: -1},
	}
	if diff := cmp.Diff(expected, report.Summaries); diff != "" {
		t.Fatalf("summaries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, report.Records)
	assert.Equal(t, runStart, report.GeneratedAt)

	require.Len(t, first.reports, 1)
	require.Len(t, second.reports, 1)
	assert.Equal(t, report, first.reports[0])
	assert.Equal(t, report, second.reports[0])

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.LinesRead), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.RecordsParsed), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.DaysSummarized), 0)
}

func TestPipeline_Run_SkipsMalformedLines(t *testing.T) {
	ext := &mockExtractor{lines: []string{
		"01/15/2024, 10:00:00",
		"13/45/2024, 10:00:00, 5.0",
		"01/15/2024, 08:00:00, 5",
		"",
		"01/15/2024, 09:00:00, 7, extra",
	}}
	ldr := &recordingLoader{}
	metrics := observability.NewMetricsForTesting()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := pipeline.New(ext, newParser(t, domain.PolicyPropagate), []pipeline.ReportLoader{ldr}, logger, metrics)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Records)
	assert.Equal(t, 1, report.Days())

	assert.InDelta(t, 5, testutil.ToFloat64(metrics.LinesRead), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RecordsParsed), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.LinesSkipped.WithLabelValues("field_count")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LinesSkipped.WithLabelValues("timestamp")), 0)

	// Skips are summarized once, not logged per line.
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("lines skipped")))
	assert.Contains(t, logs.String(), "field_count=3")
	assert.NotContains(t, logs.String(), "13/45/2024")
}

func TestPipeline_Run_NonNumericTemperature(t *testing.T) {
	lines := []string{
		"01/15/2024, 08:00:00, 5",
		"01/15/2024, 09:00:00, n/a",
		"01/15/2024, 10:00:00, 12",
	}

	t.Run("propagate", func(t *testing.T) {
		metrics := observability.NewMetricsForTesting()
		p := pipeline.New(&mockExtractor{lines: lines}, newParser(t, domain.PolicyPropagate), nil, slog.Default(), metrics)

		report, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, report.Records)
		require.Len(t, report.Summaries, 1)
		assert.True(t, math.IsNaN(report.Summaries[0].MinTemperature))
		assert.True(t, math.IsNaN(report.Summaries[0].MaxTemperature))
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.TemperaturesInvalid), 0)
	})

	t.Run("reject", func(t *testing.T) {
		metrics := observability.NewMetricsForTesting()
		p := pipeline.New(&mockExtractor{lines: lines}, newParser(t, domain.PolicyReject), nil, slog.Default(), metrics)

		report, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Records)
		require.Len(t, report.Summaries, 1)
		assert.Equal(t, 5.0, report.Summaries[0].MinTemperature)
		assert.Equal(t, 12.0, report.Summaries[0].MaxTemperature)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.LinesSkipped.WithLabelValues("temperature")), 0)
	})
}

func TestPipeline_Run_ExtractError(t *testing.T) {
	ldr := &recordingLoader{}
	p := pipeline.New(&mockExtractor{err: errors.New("disk gone")}, newParser(t, domain.PolicyPropagate),
		[]pipeline.ReportLoader{ldr}, slog.Default(), observability.NewMetricsForTesting())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract lines")
	assert.Contains(t, err.Error(), "disk gone")
	assert.Empty(t, ldr.reports, "nothing should be loaded when extraction fails")
}

func TestPipeline_Run_LoadErrorStopsLaterLoaders(t *testing.T) {
	failing := &recordingLoader{err: errors.New("read-only filesystem")}
	later := &recordingLoader{}
	ext := &mockExtractor{lines: []string{"01/15/2024, 08:00:00, 5"}}

	p := pipeline.New(ext, newParser(t, domain.PolicyPropagate), []pipeline.ReportLoader{failing, later},
		slog.Default(), observability.NewMetricsForTesting())

	report, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load report")
	assert.Equal(t, 1, report.Records)
	assert.Empty(t, later.reports)
}

func TestPipeline_Run_Empty(t *testing.T) {
	ldr := &recordingLoader{}
	p := pipeline.New(&mockExtractor{}, newParser(t, domain.PolicyPropagate), []pipeline.ReportLoader{ldr},
		slog.Default(), observability.NewMetricsForTesting())

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Records)
	assert.Empty(t, report.Summaries)
	require.Len(t, ldr.reports, 1, "an empty report is still written")
}

func TestPipeline_Run_LogsElapsedFromClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(runStart)
	ext := &mockExtractor{lines: []string{"01/15/2024, 08:00:00, 5"}, clock: clock, advance: 2 * time.Second}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	p := pipeline.New(ext, newParser(t, domain.PolicyPropagate), nil, logger,
		observability.NewMetricsForTesting(), pipeline.WithClock(clock))

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runStart.Add(2*time.Second), report.GeneratedAt)
	assert.Contains(t, logs.String(), "elapsed=2s")
}
