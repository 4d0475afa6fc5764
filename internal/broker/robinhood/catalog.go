package robinhood

import (
	"slices"
	"sync"
)

// catalog хранит активы по символу. Записи не вытесняются и не обновляются:
// каталог растет до конца жизни клиента.
type catalog[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCatalog[T any]() *catalog[T] {
	return &catalog[T]{items: make(map[string]T)}
}

func (c *catalog[T]) get(symbol string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[symbol]
	return v, ok
}

// put добавляет актив, если символа еще нет в каталоге.
func (c *catalog[T]) put(symbol string, v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[symbol]; ok {
		return existing
	}
	c.items[symbol] = v
	return v
}

func (c *catalog[T]) symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	symbols := make([]string, 0, len(c.items))
	for s := range c.items {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

func (c *catalog[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
