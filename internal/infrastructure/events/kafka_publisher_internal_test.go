package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/internal/application/sales"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "ventas")
	ev := sales.Event{
		ID: "e-1", Type: sales.EventSaleCreated, SaleID: 42, ClientID: 3, EmployeeID: 1,
		Total: decimal.RequireFromString("25.00"), Lines: 2,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, ev.OccurredAt, msg.Time)
	assert.Equal(t, kafka.Header{Key: "type", Value: []byte("venta.creada")}, msg.Headers[0])

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "venta.creada", got["type"])
	assert.Equal(t, float64(42), got["sale_id"])
	assert.Equal(t, "25", got["total"])
}

func TestKafkaPublisher_ErrorDelBroker(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{err: errors.New("leader not available")}, "ventas")
	err := p.Publish(context.Background(), sales.Event{Type: sales.EventSaleDeleted, SaleID: 1})
	assert.ErrorContains(t, err, "leader not available")
}

func TestKafkaPublisher_Cerrado(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "ventas")
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.Error(t, p.Publish(context.Background(), sales.Event{SaleID: 1}))
}

func TestNewKafkaPublisher_SinReintentos(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "ventas", nil)
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 1, w.MaxAttempts)
	assert.Equal(t, "ventas", w.Topic)
	require.NoError(t, p.Close())
}
