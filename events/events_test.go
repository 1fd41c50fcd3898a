package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func sampleEvent() OrderEvent {
	return OrderEvent{
		Type:       TypeOrderPlaced,
		OrderID:    12,
		UserID:     3,
		Status:     "pending",
		Total:      models.Price("169.97"),
		ItemCount:  2,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestKafkaPublisher_KeysByOrder(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "orders"}

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "12", string(msg.Key))
	assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 169.97, decoded["total"])
}

func TestKafkaPublisher_WrapsWriteErrors(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "orders"}
	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "broker down")
}

type fakeSNS struct {
	topic string
	attrs map[string]string
	body  []byte
}

func (f *fakeSNS) Publish(_ context.Context, topicArn string, message []byte, attributes map[string]string) error {
	f.topic, f.body, f.attrs = topicArn, message, attributes
	return nil
}

func TestSNSPublisher_SetsEventType(t *testing.T) {
	client := &fakeSNS{}
	p := NewSNSPublisher(client, "arn:aws:sns:us-east-1:000000000000:orders")

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:orders", client.topic)
	assert.Equal(t, "order.placed", client.attrs["event_type"])
	assert.Contains(t, string(client.body), `"orderId":12`)
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, OrderEvent) error { return f.err }

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	w := &fakeWriter{}
	first := errors.New("first")
	m := Multi{failingPublisher{err: first}, &KafkaPublisher{writer: w, topic: "orders"}, Nop{}}

	err := m.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, first)
	assert.Len(t, w.msgs, 1)
	assert.NoError(t, Multi{}.Publish(context.Background(), sampleEvent()))
}
