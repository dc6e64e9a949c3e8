package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePreservesFIFOOrderForSameFrame(t *testing.T) {
	q := NewQueue(4)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, TagSFTMessage, []float64{1, 2}))
	require.NoError(t, q.Push(ctx, TagMessage, byte('A')))

	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, TagSFTMessage, first.Tag)

	second, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, TagMessage, second.Tag)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestQueuePopRespectsContextCancellation(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueuePushBlocksWhenFull(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, TagError, "first"))

	full, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	err := q.Push(full, TagError, "second")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
