package sdvector

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_Queries(t *testing.T) {
	v := New(10, 0, 2, 3, 7)

	assert.Equal(t, uint64(10), v.Size())
	assert.Equal(t, uint64(4), v.Count())
	assert.True(t, v.Contains(3))
	assert.False(t, v.Contains(4))

	t.Run("select", func(t *testing.T) {
		assert.Equal(t, uint64(0), v.Select(0))
		assert.Equal(t, uint64(7), v.Select(3))
		assert.Equal(t, uint64(10), v.Select(4), "rank == count yields size")
	})

	t.Run("predecessor", func(t *testing.T) {
		rank, pos, ok := v.Predecessor(5)
		require.True(t, ok)
		assert.Equal(t, uint64(2), rank)
		assert.Equal(t, uint64(3), pos)

		rank, pos, ok = v.Predecessor(2)
		require.True(t, ok)
		assert.Equal(t, uint64(1), rank)
		assert.Equal(t, uint64(2), pos)

		rank, pos, ok = v.Predecessor(9)
		require.True(t, ok)
		assert.Equal(t, uint64(3), rank)
		assert.Equal(t, uint64(7), pos)
	})

	t.Run("successor", func(t *testing.T) {
		rank, pos := v.Successor(4)
		assert.Equal(t, uint64(3), rank)
		assert.Equal(t, uint64(7), pos)

		rank, pos = v.Successor(0)
		assert.Equal(t, uint64(0), rank)
		assert.Equal(t, uint64(0), pos)

		rank, pos = v.Successor(8)
		assert.Equal(t, uint64(4), rank)
		assert.Equal(t, uint64(10), pos)

		rank, pos = v.Successor(100)
		assert.Equal(t, uint64(4), rank)
		assert.Equal(t, uint64(10), pos)
	})

	t.Run("rank", func(t *testing.T) {
		assert.Equal(t, uint64(0), v.Rank(0))
		assert.Equal(t, uint64(1), v.Rank(1))
		assert.Equal(t, uint64(3), v.Rank(4))
		assert.Equal(t, uint64(4), v.Rank(10))
	})
}

func TestVector_PredecessorMissing(t *testing.T) {
	v := New(10, 4)
	_, _, ok := v.Predecessor(3)
	assert.False(t, ok)

	var empty Vector
	_, _, ok = empty.Predecessor(0)
	assert.False(t, ok)
	rank, pos := empty.Successor(0)
	assert.Equal(t, uint64(0), rank)
	assert.Equal(t, uint64(0), pos)
}

func TestVector_LargeUniverse(t *testing.T) {
	// firstByAlphabet vectors can exceed the 32-bit range.
	big := uint64(1) << 40
	v := New(big+10, 5, big, big+9)

	rank, pos := v.Successor(6)
	assert.Equal(t, uint64(1), rank)
	assert.Equal(t, big, pos)

	rank, pos, ok := v.Predecessor(big + 3)
	require.True(t, ok)
	assert.Equal(t, uint64(1), rank)
	assert.Equal(t, big, pos)
}

func TestBuilder_Panics(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		b := NewBuilder(4, 1)
		assert.Panics(t, func() { b.Set(4) })
	})
	t.Run("not increasing", func(t *testing.T) {
		b := NewBuilder(4, 2)
		b.Set(2)
		assert.Panics(t, func() { b.Set(2) })
	})
}

func TestVector_Serialization(t *testing.T) {
	vectors := []Vector{
		{},
		New(0),
		New(7),
		New(12, 1, 5, 11),
	}

	var buf bytes.Buffer
	for _, v := range vectors {
		_, err := v.WriteTo(&buf)
		require.NoError(t, err)
	}

	r := bufio.NewReader(&buf)
	for _, want := range vectors {
		got, err := ReadFrom(r)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
		assert.Equal(t, want.Positions(), got.Positions())
	}
}

func TestVector_ReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(12, 1, 5, 11).WriteTo(&buf)
	require.NoError(t, err)

	data := buf.Bytes()
	_, err = ReadFrom(bufio.NewReader(bytes.NewReader(data[:len(data)-3])))
	assert.Error(t, err)
}
