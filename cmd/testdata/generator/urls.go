package generator

import (
	"io"
	"math/rand/v2"
)

// URLGenerator writes URLs: short words between many separators
type URLGenerator struct {
	rand *rand.Rand
}

var domains = []string{
	"google.com",
	"github.com",
	"stackoverflow.com",
	"wikipedia.org",
	"gutenberg.org",
}

var paths = []string{
	"",
	"/home",
	"/about",
	"/api/v1",
	"/docs",
	"/ebooks/2600",
	"/user/profile",
}

var params = []string{
	"",
	"?page=1",
	"?id=123",
	"?ref=homepage",
	"?q=war+and+peace",
}

func (g *URLGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *URLGenerator) WriteLine(w io.Writer) error {
	line := "https://" +
		domains[g.rand.IntN(len(domains))] +
		paths[g.rand.IntN(len(paths))] +
		params[g.rand.IntN(len(params))] + "\n"

	_, err := io.WriteString(w, line)
	return err
}

func (g *URLGenerator) Description() string {
	return "URLs: https://domain/path?params"
}

func (g *URLGenerator) DefaultCount() int64 {
	return 5e4 // 50,000 lines
}
