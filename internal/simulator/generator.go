package simulator

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// NewEvent is the body posted to the create endpoint.
type NewEvent struct {
	TagID  string `json:"tagId"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Generator draws random events from a fixed tag pool.
type Generator struct {
	tags    []string
	sources []string
	types   []string
	rng     *rand.Rand
}

// NewGenerator builds the tag pool for p. rng may be shared by tests for
// deterministic output.
func NewGenerator(p Profile, rng *rand.Rand) *Generator {
	tags := make([]string, p.TagCount)
	for i := range tags {
		id := strings.ReplaceAll(uuid.New().String(), "-", "")
		tags[i] = p.TagPrefix + strings.ToUpper(id[:8])
	}
	return &Generator{
		tags:    tags,
		sources: p.Sources,
		types:   p.Types,
		rng:     rng,
	}
}

// Tags returns the tag pool.
func (g *Generator) Tags() []string {
	out := make([]string, len(g.tags))
	copy(out, g.tags)
	return out
}

// Next returns a random event.
func (g *Generator) Next() NewEvent {
	return NewEvent{
		TagID:  g.tags[g.rng.Intn(len(g.tags))],
		Source: g.sources[g.rng.Intn(len(g.sources))],
		Type:   g.types[g.rng.Intn(len(g.types))],
	}
}
