package kafka

import (
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewWriter(t *testing.T) {
	transport := &kafkaGo.Transport{}

	w := newWriter([]string{"localhost:9092"}, "shareit.bookings", transport)

	assert.Equal(t, "shareit.bookings", w.Topic)
	assert.Same(t, transport, w.Transport)
	assert.Equal(t, kafkaGo.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)
	assert.IsType(t, &kafkaGo.Hash{}, w.Balancer)

	// kafka-go waits a full second per synchronous write when BatchTimeout is left at zero.
	assert.Positive(t, w.BatchTimeout)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
}

func TestClient_WriterIsReusedPerTopic(t *testing.T) {
	k := &kafkaClientImpl{
		brokers:   []string{"localhost:9092"},
		transport: &kafkaGo.Transport{},
		writers:   map[string]*kafkaGo.Writer{},
	}

	first := k.writer("shareit.bookings")

	assert.Same(t, first, k.writer("shareit.bookings"))
	assert.NotSame(t, first, k.writer("shareit.audit"))
	assert.NoError(t, k.Close())
	assert.Empty(t, k.writers)
}
