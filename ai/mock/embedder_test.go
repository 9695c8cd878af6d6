package mock

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedderConcurrentCallCount(t *testing.T) {
	m := NewEmbedder()
	ctx := context.Background()

	const goroutines = 10
	const callsPer = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < callsPer; i++ {
				_, err := m.EmbedText(ctx, fmt.Sprintf("text-%d-%d", g, i))
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*callsPer, m.CallCount())
}

func TestEmbedderDeterministicAndNormalized(t *testing.T) {
	m := NewEmbedder()
	ctx := context.Background()

	first, err := m.EmbedText(ctx, "stable input")
	require.NoError(t, err)
	second, err := m.EmbedText(ctx, "stable input")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var sumSquares float64
	for _, v := range first {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 0.001)
}

func TestEmbedderReset(t *testing.T) {
	m := NewEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	}

	_, err := m.EmbedText(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, 1, m.CallCount())

	m.Reset()
	assert.Zero(t, m.CallCount())
	assert.Nil(t, m.EmbedTextFunc)
}
