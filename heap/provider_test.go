package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSliceProviderRejectsNonPositive(t *testing.T) {
	_, err := NewSliceProvider(0)
	assert.Error(t, err)
	_, err = NewSliceProvider(-1)
	assert.Error(t, err)
}

func TestSliceProviderExtendGrows(t *testing.T) {
	p, err := NewSliceProvider(1 << 20)
	require.NoError(t, err)

	old1, ok := p.Extend(64)
	require.True(t, ok)
	assert.Equal(t, Addr(0), old1)
	assert.Equal(t, Addr(64), p.Hi())

	old2, ok := p.Extend(128)
	require.True(t, ok)
	assert.Equal(t, Addr(64), old2)
	assert.Equal(t, Addr(192), p.Hi())
	assert.Len(t, p.Bytes(), 192)
}

func TestSliceProviderRefusesBeyondMax(t *testing.T) {
	p, err := NewSliceProvider(128)
	require.NoError(t, err)

	_, ok := p.Extend(64)
	require.True(t, ok)

	_, ok = p.Extend(128)
	assert.False(t, ok)
}

func TestSliceProviderRejectsNonPositiveExtend(t *testing.T) {
	p, err := NewSliceProvider(1024)
	require.NoError(t, err)

	_, ok := p.Extend(0)
	assert.False(t, ok)
	_, ok = p.Extend(-10)
	assert.False(t, ok)
}

func TestSliceProviderPreservesContentAcrossGrowth(t *testing.T) {
	p, err := NewSliceProvider(1 << 20)
	require.NoError(t, err)

	old, ok := p.Extend(8)
	require.True(t, ok)
	buf := p.Bytes()
	buf[old] = 0x42

	// force reallocation past initial capacity doubling
	for i := 0; i < 10; i++ {
		_, ok := p.Extend(8)
		require.True(t, ok)
	}

	assert.Equal(t, byte(0x42), p.Bytes()[old])
}
