package generator

import (
	"io"
	"math/rand/v2"
	"strconv"
)

// LogGenerator writes user action logs in format: "{user_id} did {action}"
type LogGenerator struct {
	UserCount int
	rand      *rand.Rand
	linePool  [][]byte // Pre-generated complete lines
}

var actions = []string{
	"login",
	"logout",
	"viewed product",
	"added to cart",
	"removed from cart",
	"purchased",
	"reviewed product",
	"didn't finish checkout",
	"changed password",
	"subscribed to newsletter",
}

const linePoolSize = 10000 // Pre-generate this many unique lines

func (g *LogGenerator) Init(r *rand.Rand) {
	g.rand = r

	userCount := max(g.UserCount, 1)

	g.linePool = make([][]byte, linePoolSize)
	for i := range linePoolSize {
		userID := "user_" + strconv.Itoa(r.IntN(userCount))
		action := actions[r.IntN(len(actions))]
		g.linePool[i] = []byte(userID + " did " + action + "\n")
	}
}

func (g *LogGenerator) WriteLine(w io.Writer) error {
	_, err := w.Write(g.linePool[g.rand.IntN(linePoolSize)])
	return err
}

func (g *LogGenerator) Description() string {
	return "User action logs: {user_id} did {action}"
}

func (g *LogGenerator) DefaultCount() int64 {
	return 1e5 // 100,000 lines
}
