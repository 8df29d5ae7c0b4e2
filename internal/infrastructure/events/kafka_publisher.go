// Package events publica los eventos de venta en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

var (
	_ sales.EventPublisher = (*KafkaPublisher)(nil)
	_ sales.EventPublisher = NopPublisher{}
)

// messageWriter lo que se usa de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher escribe cada evento como un mensaje JSON con clave = id de venta,
// así los eventos de una misma venta caen en la misma partición.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	closed  atomic.Bool
}

// NewKafkaPublisher crea el writer síncrono contra los brokers dados.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1, // sin reintentos: el evento es best effort
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Transport: &kafka.Transport{
			Dial: (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Warn().Str("component", "kafka").Msgf(msg, args...)
		}),
	}
	return newKafkaPublisher(w, topic)
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, timeout: 5 * time.Second}
}

// Publish envía el evento y espera el ack del broker (con timeout).
func (p *KafkaPublisher) Publish(ctx context.Context, ev sales.Event) error {
	if p.closed.Load() {
		return fmt.Errorf("kafka: publisher cerrado")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.SaleID, 10)),
		Value: payload,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
			{Key: "event_id", Value: []byte(ev.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar en %s: %w", p.topic, err)
	}
	return nil
}

// Close cierra el writer; llamadas posteriores a Publish fallan.
func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NopPublisher descarta los eventos (Kafka deshabilitado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, sales.Event) error { return nil }
