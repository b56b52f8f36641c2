package sampling

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	RandomID  = "random"
	InOrderID = "in-order"
)

// ErrUnknownStrategy is returned when no strategy is registered under an id.
var ErrUnknownStrategy = errors.New("unknown sampling strategy")

// Descriptor names a registered strategy.
type Descriptor struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Strategy Strategy `json:"-"`
}

var (
	mu       sync.RWMutex
	registry = []Descriptor{
		{ID: RandomID, Label: "Random", Strategy: Random{}},
		{ID: InOrderID, Label: "Descending Priority", Strategy: InOrder{}},
	}
)

// aliasMap provides user-friendly synonyms for strategy ids.
var aliasMap = map[string]string{
	"priority": InOrderID,
	"in_order": InOrderID,
	"inorder":  InOrderID,
	"fifo":     InOrderID,
	"lottery":  RandomID,
}

// NormalizeID lowers and resolves aliases.
func NormalizeID(id string) string {
	n := strings.ToLower(strings.TrimSpace(id))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// Register adds a strategy under a new id.
func Register(id, label string, s Strategy) error {
	if id == "" || s == nil {
		return fmt.Errorf("strategy id and implementation are required")
	}
	mu.Lock()
	defer mu.Unlock()
	for _, d := range registry {
		if d.ID == id {
			return fmt.Errorf("sampling strategy %q already registered", id)
		}
	}
	registry = append(registry, Descriptor{ID: id, Label: label, Strategy: s})
	return nil
}

// Lookup returns the descriptor registered under id (or one of its aliases).
func Lookup(id string) (Descriptor, error) {
	n := NormalizeID(id)
	mu.RLock()
	defer mu.RUnlock()
	for _, d := range registry {
		if d.ID == id || d.ID == n {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q. Try one of: %s", ErrUnknownStrategy, id, strings.Join(idsLocked(), ", "))
}

// Get returns the strategy registered under id.
func Get(id string) (Strategy, error) {
	d, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return d.Strategy, nil
}

// Available returns every registered strategy in registration order.
func Available() []Descriptor {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Descriptor(nil), registry...)
}

func idsLocked() []string {
	ids := make([]string, 0, len(registry))
	for _, d := range registry {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}
