package generator

import (
	"io"
	"math/rand/v2"
	"strings"
)

// ProseGenerator writes English-looking sentences, contractions included.
type ProseGenerator struct {
	rand *rand.Rand
	line strings.Builder
}

var vocabulary = []string{
	"the", "of", "and", "to", "a", "in", "he", "she", "was", "that",
	"his", "her", "with", "had", "it", "at", "not", "him", "prince", "said",
	"Pierre", "Natasha", "Moscow", "army", "war", "peace", "emperor", "countess",
	"don't", "wasn't", "it's", "couldn't", "o'clock", "I'm", "they'd", "we'll",
}

var punctuation = []string{".", ",", ";", "!", "?", " -", ":"}

func (g *ProseGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *ProseGenerator) WriteLine(w io.Writer) error {
	g.line.Reset()

	words := 4 + g.rand.IntN(12)
	for i := range words {
		if i > 0 {
			g.line.WriteByte(' ')
		}
		g.line.WriteString(vocabulary[g.rand.IntN(len(vocabulary))])
		if g.rand.IntN(6) == 0 {
			g.line.WriteString(punctuation[g.rand.IntN(len(punctuation))])
		}
	}
	g.line.WriteByte('\n')

	_, err := io.WriteString(w, g.line.String())
	return err
}

func (g *ProseGenerator) Description() string {
	return "Prose: sentences with contractions and punctuation"
}

func (g *ProseGenerator) DefaultCount() int64 {
	return 1e5 // 100,000 lines
}
