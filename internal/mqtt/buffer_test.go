package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
}

func payloadBytes(msgs []bufferedMsg) []byte {
	out := make([]byte, len(msgs))
	for i, m := range msgs {
		out[i] = m.payload[0]
	}
	return out
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(10, nil)
	assert.Nil(t, rb.drainAll())
}

func TestRingBufferPushAndDrain(t *testing.T) {
	rb := newRingBuffer(10, nil)
	pushN(rb, 0, 5)

	got := rb.drainAll()
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, payloadBytes(got))
	assert.Nil(t, rb.drainAll(), "second drain should be empty")
}

func TestRingBufferOverflowKeepsNewest(t *testing.T) {
	rb := newRingBuffer(5, nil)
	pushN(rb, 0, 8)

	assert.Equal(t, 5, rb.len())
	assert.True(t, rb.overflow)

	got := rb.drainAll()
	assert.Equal(t, []byte{3, 4, 5, 6, 7}, payloadBytes(got))
	assert.False(t, rb.overflow, "drain clears the overflow flag")
}

func TestRingBufferMultipleCycles(t *testing.T) {
	rb := newRingBuffer(5, nil)

	pushN(rb, 0, 3)
	require.Len(t, rb.drainAll(), 3)

	pushN(rb, 10, 14)
	assert.Equal(t, []byte{10, 11, 12, 13}, payloadBytes(rb.drainAll()))
	assert.Equal(t, 0, rb.len())
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10, nil)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	got := rb.drainAll()
	require.Len(t, got, 1)
	assert.Equal(t, TopicSystem, got[0].topic)
	assert.Equal(t, `{"test":true}`, string(got[0].payload))
	assert.Equal(t, byte(1), got[0].qos)
	assert.True(t, got[0].retained)
}
