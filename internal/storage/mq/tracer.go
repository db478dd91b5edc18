package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer  = otel.Tracer("internal/storage/mq")
	kTracer = kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
)

// hooks returns the franz-go hooks shared by producers and consumers.
func hooks() kgo.Opt {
	return kgo.WithHooks(kotel.NewKotel(kotel.WithTracer(kTracer)).Hooks()...)
}
