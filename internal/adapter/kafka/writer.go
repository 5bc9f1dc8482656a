package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/temperature-summary/internal/config"
	"github.com/couchcryptid/temperature-summary/internal/domain"
	"github.com/couchcryptid/temperature-summary/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes daily summaries to a Kafka topic, one message per day.
// It implements pipeline.ReportLoader.
type Writer struct {
	writer    messageWriter
	timeout   time.Duration
	logger    *slog.Logger
	published prometheus.Counter
}

// NewWriter creates a Kafka producer for the configured summary topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: cfg.KafkaTimeout,
	}
	return &Writer{writer: w, timeout: cfg.KafkaTimeout, logger: logger, published: metrics.SummariesPublished}
}

// LoadReport publishes every summary in output order in a single
// WriteMessages call, keyed by day so one day always lands on one partition.
func (w *Writer) LoadReport(ctx context.Context, report domain.Report) error {
	if len(report.Summaries) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(report.Summaries))
	for i, s := range report.Summaries {
		msg, err := serializeToMessage(s, report.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish summaries: %w", err)
	}
	w.published.Add(float64(len(msgs)))
	w.logger.Info("summaries published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// summaryMessage is the JSON value of a published summary.
type summaryMessage struct {
	Date        string      `json:"date"`
	TimestampMS int64       `json:"timestamp_ms"`
	Min         temperature `json:"min"`
	Max         temperature `json:"max"`
}

// temperature encodes finite values as JSON numbers and NaN/±Inf as the
// strings used in the summary file, since JSON has no literal for them.
type temperature float64

func (t temperature) MarshalJSON() ([]byte, error) {
	v := float64(t)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(domain.FormatNumber(v))
	}
	return []byte(domain.FormatNumber(v)), nil
}

// serializeToMessage marshals a DailySummary into a Kafka message.
func serializeToMessage(s domain.DailySummary, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(summaryMessage{
		Date:        s.DateKey,
		TimestampMS: s.CanonicalTimestamp,
		Min:         temperature(s.MinTemperature),
		Max:         temperature(s.MaxTemperature),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize daily summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.DateKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "date_key", Value: []byte(s.DateKey)},
			{Key: "generated_at", Value: []byte(generatedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
