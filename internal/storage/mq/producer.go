package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
)

// ProduceMsg is one outbound event. Messages sharing a PartitionKey keep their relative order.
type ProduceMsg struct {
	Topic        string
	Headers      map[string]string
	Payload      []byte
	PartitionKey *string
}

type Producer interface {
	Produce(ctx context.Context, msg ProduceMsg) error
}

var _ Producer = (*KafkaProducer)(nil)

type KafkaProducer struct {
	cl *kgo.Client
}

func NewKafkaProducer(ctx context.Context, cfg config.Kafka) (*KafkaProducer, error) {
	cl, err := newClient(ctx, cfg,
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaProducer{cl: cl}, nil
}

// Produce blocks until the broker acknowledges msg.
func (p *KafkaProducer) Produce(ctx context.Context, msg ProduceMsg) error {
	ctx, span := tracer.Start(ctx, "produce "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("topic", msg.Topic)),
	)
	defer span.End()

	res := p.cl.ProduceSync(ctx, buildProduceRecord(msg))
	if err := res.FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce failed")
		return fmt.Errorf("produce to %s: %w", msg.Topic, err)
	}

	rec, _ := res.First()
	span.SetAttributes(
		attribute.Int("partition", int(rec.Partition)),
		attribute.Int64("offset", rec.Offset),
	)
	return nil
}

// Close flushes buffered records and closes the client.
func (p *KafkaProducer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	//nolint:errcheck
	p.cl.Flush(ctx)
	p.cl.Close()
}

func buildProduceRecord(msg ProduceMsg) *kgo.Record {
	rec := &kgo.Record{Topic: msg.Topic, Value: msg.Payload}
	if msg.PartitionKey != nil {
		rec.Key = []byte(*msg.PartitionKey)
	}
	for k, v := range msg.Headers {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return rec
}
