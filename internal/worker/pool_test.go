package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_RunsJobsAndDrainsOnStop(t *testing.T) {
	p := NewPool(4)

	var n int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { atomic.AddInt64(&n, 1) })
	}
	p.Stop()

	require.EqualValues(t, 100, atomic.LoadInt64(&n))
}
