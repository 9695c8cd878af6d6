package ingestion

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryStateLifecycle(t *testing.T) {
	rs := NewRetryState()

	assert.Equal(t, 0, rs.Attempts("src-1"))

	assert.Equal(t, 1, rs.Increment("src-1"))
	assert.Equal(t, 2, rs.Increment("src-1"))
	assert.Equal(t, 2, rs.Attempts("src-1"))

	// Independent counters per source
	assert.Equal(t, 1, rs.Increment("src-2"))
	assert.Equal(t, 2, rs.Attempts("src-1"))

	rs.Clear("src-1")
	assert.Equal(t, 0, rs.Attempts("src-1"))
	assert.Equal(t, 1, rs.Attempts("src-2"))
}

func TestRetryStateConcurrent(t *testing.T) {
	rs := NewRetryState()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("src-%d", n%2)
			for j := 0; j < 100; j++ {
				rs.Increment(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 500, rs.Attempts("src-0"))
	assert.Equal(t, 500, rs.Attempts("src-1"))
}
