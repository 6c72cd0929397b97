package generator

import (
	"io"
	"math/rand/v2"
)

// Generator produces text corpora for word counting
type Generator interface {
	// Init initializes the generator with a per-instance random source
	Init(r *rand.Rand)

	// WriteLine writes a single line of text to the writer
	WriteLine(w io.Writer) error

	// Description returns a human-readable description of the text
	Description() string

	// DefaultCount returns the suggested default number of lines to generate
	DefaultCount() int64
}
