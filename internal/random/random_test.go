package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_BetweenStaysInRange(t *testing.T) {
	src := NewSource(42)

	for i := 0; i < 10000; i++ {
		v := src.Between(1, 10000)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 10000)
	}
}

func TestSource_SameSeedSameSequence(t *testing.T) {
	a := NewSource(7)
	b := NewSource(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Between(1, 100), b.Between(1, 100))
	}
}

func TestSource_DegenerateRange(t *testing.T) {
	src := NewSource(1)

	assert.Equal(t, 2, src.Between(2, 2))
	assert.Equal(t, 5, src.Between(5, 3))
}

func TestSource_ConcurrentUse(t *testing.T) {
	src := NewSource(99)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := src.Between(1, 6)
				assert.True(t, v >= 1 && v <= 6)
			}
		}()
	}
	wg.Wait()
}

func TestNewSourceFromConfig(t *testing.T) {
	src, err := NewSourceFromConfig(123)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), src.Seed())

	src, err = NewSourceFromConfig(0)
	require.NoError(t, err)
	assert.NotNil(t, src)
}

func TestScripted(t *testing.T) {
	s := NewScripted(5, 50, 0)

	assert.Equal(t, 5, s.Between(1, 10))
	assert.Equal(t, 10, s.Between(1, 10), "draws above max are clamped")
	assert.Equal(t, 3, s.Between(3, 4), "draws below min are clamped")
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, [][2]int{{1, 10}, {1, 10}, {3, 4}}, s.Calls())

	assert.Panics(t, func() { s.Between(1, 2) })
}
