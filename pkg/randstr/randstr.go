package randstr

import (
	"math/rand"
	"sync"
	"time"
)

type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	alphabet []byte
}

func New(alphabet []byte) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		alphabet: alphabet,
	}
}

func (g *Generator) GenerateRandomString(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = g.alphabet[g.rnd.Intn(len(g.alphabet))]
	}

	return string(b)
}
