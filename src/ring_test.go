package dsdneo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputRingWriteReadRoundTrip(t *testing.T) {
	r := NewInputRing(16, OverflowBlock)
	written := r.Write([]int16{1, 2, 3, 4})
	assert.Equal(t, 4, written)

	buf := make([]int16, 4)
	n := r.ReadBlock(buf)
	require.Equal(t, 4, n)
	assert.Equal(t, []int16{1, 2, 3, 4}, buf[:n])
}

func TestInputRingDropPolicy(t *testing.T) {
	r := NewInputRing(4, OverflowDrop)
	r.Write([]int16{1, 2, 3})
	r.Write([]int16{4, 5, 6}) // exceeds capacity-1, should drop under OverflowDrop
	assert.Positive(t, r.DropCount())
}

func TestInputRingShutdownUnblocksReader(t *testing.T) {
	r := NewInputRing(8, OverflowBlock)
	done := make(chan int, 1)
	go func() {
		buf := make([]int16, 4)
		done <- r.ReadBlock(buf)
	}()
	time.Sleep(10 * time.Millisecond)
	r.Shutdown()
	select {
	case n := <-done:
		assert.Equal(t, -1, n)
	case <-time.After(time.Second):
		t.Fatal("ReadBlock did not unblock after Shutdown")
	}
}

func TestInputRingReserveCommit(t *testing.T) {
	r := NewInputRing(16, OverflowBlock)
	a, b := r.ReserveSpans(4)
	total := len(a) + len(b)
	require.Equal(t, 4, total)
	for i := range a {
		a[i] = int16(i + 1)
	}
	r.Commit(4)

	buf := make([]int16, 4)
	n := r.ReadBlock(buf)
	assert.Equal(t, 4, n)
}
