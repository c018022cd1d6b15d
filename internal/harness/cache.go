package harness

import (
	"sync"

	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"

	"github.com/katalvlaran/wavecollapse/pattern"
	"github.com/katalvlaran/wavecollapse/sample"
	"github.com/katalvlaran/wavecollapse/wfc"
)

// rulesetKey is everything a compiled Ruleset depends on.
type rulesetKey struct {
	Width, Height int
	Cells         []int
	Palette       []sample.Color
	Options       pattern.Options
}

// Cache memoizes compiled rulesets. Rulesets are immutable, so one entry
// can back any number of concurrent models.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*wfc.Ruleset
	hits    int
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*wfc.Ruleset)}
}

// Get returns the ruleset for (s, opts), compiling it on first use.
func (c *Cache) Get(s *sample.Sample, opts pattern.Options) (*wfc.Ruleset, error) {
	key, err := hashstructure.Hash(rulesetKey{
		Width: s.Width, Height: s.Height, Cells: s.Cells, Palette: s.Palette, Options: opts,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "hashing ruleset key")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if rs, ok := c.entries[key]; ok {
		c.hits++
		return rs, nil
	}
	rs, err := wfc.Compile(s, opts)
	if err != nil {
		return nil, err
	}
	c.entries[key] = rs

	return rs, nil
}

// Len reports the number of compiled rulesets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Hits reports how many lookups were served without compiling.
func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits
}
