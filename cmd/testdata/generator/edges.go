package generator

import (
	"io"
	"math/rand/v2"
	"strings"
)

// EdgeGenerator writes the inputs word boundaries get wrong: trailing and
// leading apostrophes, separator runs, very long words and lines that do not
// end with a newline.
type EdgeGenerator struct {
	rand *rand.Rand
}

var edgeFragments = []string{
	"dogs'",
	"'tis",
	"rock 'n' roll",
	"''",
	"'",
	"    ",
	"\t\t",
	"abc123def",
	"x",
	"!!!",
	"\r\n",
}

func (g *EdgeGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *EdgeGenerator) WriteLine(w io.Writer) error {
	var b strings.Builder

	for range 1 + g.rand.IntN(8) {
		if g.rand.IntN(10) == 0 {
			b.WriteString(strings.Repeat("long", 64+g.rand.IntN(256)))
		} else {
			b.WriteString(edgeFragments[g.rand.IntN(len(edgeFragments))])
		}
		if g.rand.IntN(3) > 0 {
			b.WriteByte(' ')
		}
	}
	if g.rand.IntN(4) > 0 {
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (g *EdgeGenerator) Description() string {
	return "Edge cases: apostrophes, separator runs, long words"
}

func (g *EdgeGenerator) DefaultCount() int64 {
	return 2e4 // 20,000 lines
}
