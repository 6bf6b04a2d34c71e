package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Valid(first))
	assert.False(t, Valid("team-1"))
}

func TestSequence_NewID(t *testing.T) {
	seq := &Sequence{Prefix: "t"}

	a, _ := seq.NewID()
	b, _ := seq.NewID()

	assert.Equal(t, "t1", a)
	assert.Equal(t, "t2", b)
}
