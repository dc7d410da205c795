package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 50; i++ {
		require.True(t, p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 50, count)
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := NewPool(1)
	var done atomic.Int32
	p.Submit(func() { panic("boom") })
	p.Submit(nil)
	p.Submit(func() { done.Add(1) })
	p.Stop()
	require.Equal(t, int32(1), done.Load())
}

func TestSubmitAfterStop(t *testing.T) {
	p := NewPool(0)
	p.Stop()
	p.Stop()
	require.False(t, p.Submit(func() { t.Fatal("must not run") }))
}
