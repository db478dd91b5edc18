package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/outbox"
)

func TestHeadersRoundTrip(t *testing.T) {
	ctx := correlationid.NewContext(context.Background(), "req-42")

	headers := outbox.BuildHeaders(ctx)
	assert.Equal(t, "req-42", headers[correlationid.Header])

	restored := outbox.ExtractContextFromHeaders(context.Background(), headers)
	id, ok := correlationid.FromContext(restored)
	assert.True(t, ok)
	assert.Equal(t, "req-42", id)
}

func TestRecordHeaders(t *testing.T) {
	rec := &kgo.Record{Headers: []kgo.RecordHeader{
		{Key: correlationid.Header, Value: []byte("a")},
		{Key: "traceparent", Value: []byte("tp")},
		{Key: correlationid.Header, Value: []byte("b")},
	}}

	assert.Equal(t, map[string]string{
		correlationid.Header: "b",
		"traceparent":        "tp",
	}, outbox.RecordHeaders(rec))
}
