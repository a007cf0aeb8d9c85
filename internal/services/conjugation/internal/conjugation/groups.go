package conjugation

import "iter"

// orderedGroups collects values under keys and iterates them in the order
// the keys were first added.
type orderedGroups[K comparable, V any] struct {
	keys   []K
	values map[K][]V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{values: make(map[K][]V)}
}

func (g *orderedGroups[K, V]) add(key K, v V) {
	if _, ok := g.values[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.values[key] = append(g.values[key], v)
}

func (g *orderedGroups[K, V]) len() int {
	return len(g.keys)
}

func (g *orderedGroups[K, V]) each() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, k := range g.keys {
			if !yield(k, g.values[k]) {
				return
			}
		}
	}
}
