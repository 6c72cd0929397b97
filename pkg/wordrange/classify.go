package wordrange

import "fmt"

// CharClass classifies a single byte.
type CharClass uint8

const (
	Separator CharClass = iota
	Letter
	Skip
)

func (c CharClass) String() string {
	switch c {
	case Letter:
		return "letter"
	case Skip:
		return "skip"
	default:
		return "separator"
	}
}

// DefaultSkip holds the bytes that neither end nor separate words.
const DefaultSkip = "'"

// Classifier maps every byte value to its CharClass.
type Classifier struct {
	table [256]CharClass
}

// NewClassifier builds a classifier for ASCII letters and the given skip set.
// A skip set containing a letter is rejected.
func NewClassifier(skip []byte) (*Classifier, error) {
	c := &Classifier{}

	for b := 'A'; b <= 'Z'; b++ {
		c.table[b] = Letter
	}
	for b := 'a'; b <= 'z'; b++ {
		c.table[b] = Letter
	}

	for _, b := range skip {
		if c.table[b] == Letter {
			return nil, fmt.Errorf("%w: skip byte %q is a letter", ErrInvalidConfig, b)
		}
		c.table[b] = Skip
	}

	return c, nil
}

var defaultClassifier = func() *Classifier {
	c, err := NewClassifier([]byte(DefaultSkip))
	if err != nil {
		panic(err)
	}
	return c
}()

// DefaultClassifier returns the classifier with DefaultSkip as its skip set.
func DefaultClassifier() *Classifier {
	return defaultClassifier
}

// Class returns the class of b.
func (c *Classifier) Class(b byte) CharClass {
	return c.table[b]
}

// IsWordEnd reports whether cur closes a word that prev belongs to.
// Skip bytes are never word ends, and only a Letter counts as the tail of a word.
func (c *Classifier) IsWordEnd(prev, cur byte) bool {
	return c.table[cur] == Separator && c.table[prev] == Letter
}
