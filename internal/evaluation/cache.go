package evaluation

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// ResultCache memoizes stack evaluations keyed by a canonical input
// signature. Eviction is FIFO once the bound is hit; entries are
// invalidated implicitly by key mismatch, never by expiry. A mutex guards
// the maps since HTTP handlers evaluate concurrently.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*StackResult
	order   []string
}

// NewResultCache creates a cache bounded to maxSize entries. A size of
// zero or less disables caching entirely.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]*StackResult),
	}
}

// Get returns the cached result for the signature, if present.
func (c *ResultCache) Get(signature string) (*StackResult, bool) {
	if c.maxSize <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[signature]
	return result, ok
}

// Put stores a result under the signature, evicting the oldest entry when
// the cache is full.
func (c *ResultCache) Put(signature string, result *StackResult) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[signature]; exists {
		c.entries[signature] = result
		return
	}
	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[signature] = result
	c.order = append(c.order, signature)
}

// Len reports the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Signature builds the canonical cache key for a stack evaluation. It
// covers every input the result depends on: each entry's compound, dose,
// frequency and ester (entries sorted by compound id so stack order never
// changes the key) plus the full profile including lab-mode overrides.
func Signature(entries []domain.StackEntry, profile domain.Profile) string {
	sorted := make([]domain.StackEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompoundID < sorted[j].CompoundID
	})

	var b strings.Builder
	for _, entry := range sorted {
		b.WriteString(entry.CompoundID)
		b.WriteByte(':')
		b.WriteString(formatFloat(entry.Dose))
		b.WriteByte(':')
		b.WriteString(formatFloat(entry.FrequencyPerWeek))
		b.WriteByte(':')
		b.WriteString(entry.Ester)
		b.WriteByte('|')
	}

	b.WriteString("p:")
	b.WriteString(formatFloat(profile.Age))
	b.WriteByte(',')
	b.WriteString(formatFloat(profile.BodyweightKg))
	b.WriteByte(',')
	b.WriteString(formatFloat(profile.YearsTraining))
	b.WriteByte(',')
	if profile.SHBG != nil {
		b.WriteString(formatFloat(*profile.SHBG))
	}
	b.WriteByte(',')
	b.WriteString(string(profile.Aromatase))
	b.WriteByte(',')
	b.WriteString(string(profile.Anxiety))
	b.WriteByte(',')
	b.WriteString(string(profile.Experience))

	if profile.LabMode.Enabled {
		b.WriteString("|lab:")
		for _, factor := range domain.ScaleFactors {
			b.WriteString(formatFloat(profile.LabMode.Scale(factor)))
			b.WriteByte(',')
		}
	}

	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
