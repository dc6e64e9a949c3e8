package dispatch

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Envelope is one tagged item crossing from the DSP context to the
// dispatch context. ID is an internal correlation handle for tracing
// a frame's events through logs; it never reaches the wire protocol.
type Envelope struct {
	ID      uuid.UUID
	Tag     Tag
	Seq     uint64
	Payload any
}

// Queue is the single-producer / single-consumer bounded channel
// connecting the two execution contexts (spec.md §5). The DSP context
// pushes decode results and the engine's command handler pushes TX
// echoes; the dispatch context is the sole consumer.
// Preserving the "SFTMESSAGE before MESSAGE for the same frame"
// ordering guarantee is the producer's responsibility: as long as a
// single goroutine pushes both in sequence, the channel's FIFO
// ordering carries that guarantee through.
type Queue struct {
	ch  chan Envelope
	seq atomic.Uint64
}

// NewQueue creates a queue with the given buffer capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Envelope, capacity)}
}

// Push enqueues tag/payload, blocking until there is room or ctx is
// done.
func (q *Queue) Push(ctx context.Context, tag Tag, payload any) error {
	env := Envelope{
		ID:      uuid.New(),
		Tag:     tag,
		Seq:     q.seq.Add(1),
		Payload: payload,
	}
	select {
	case q.ch <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop dequeues the next envelope, blocking until one is available or
// ctx is done.
func (q *Queue) Pop(ctx context.Context) (Envelope, error) {
	select {
	case env := <-q.ch:
		return env, nil
	case <-ctx.Done():
		return Envelope{}, ctx.Err()
	}
}
