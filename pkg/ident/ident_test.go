package ident

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	seq := NewSequence("m")
	assert.Equal(t, "m-1", seq.NewID())
	assert.Equal(t, "m-2", seq.NewID())
	assert.Equal(t, "m-3", seq.NewID())
}

func TestUUID(t *testing.T) {
	gen := UUID()
	a, b := gen.NewID(), gen.NewID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
