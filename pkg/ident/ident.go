package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces opaque unique identifiers
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string {
	return f()
}

// UUID returns a Generator of random UUIDs
func UUID() Generator {
	return GeneratorFunc(func() string {
		return uuid.New().String()
	})
}

// Sequence generates "<prefix>-1", "<prefix>-2", ... so tests can assert exact ids
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

// NewSequence creates a Sequence with the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
