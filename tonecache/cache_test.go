package tonecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteColumnAdvancesAndStopsAtFull(t *testing.T) {
	c := NewCache(2, 3)
	c.WriteColumn([]float64{1, 2})
	c.WriteColumn([]float64{3, 4})
	assert.False(t, c.Full())
	c.WriteColumn([]float64{5, 6})
	assert.True(t, c.Full())

	// A write past capacity is a no-op.
	c.WriteColumn([]float64{7, 8})
	assert.Equal(t, []float64{5, 6}, c.Column(2))
}

func TestResetRewindsToGivenStart(t *testing.T) {
	c := NewCache(2, 4)
	c.WriteColumn([]float64{1, 1})
	c.WriteColumn([]float64{2, 2})

	c.Reset(1)
	assert.Equal(t, 1, c.WriteIndex())
	assert.Equal(t, []float64{0, 0}, c.Column(0))
}

func TestAtIndexesByBinAndSlot(t *testing.T) {
	c := NewCache(3, 2)
	c.WriteColumn([]float64{10, 20, 30})
	assert.Equal(t, 20.0, c.At(1, 0))
}
