package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedGroups(t *testing.T) {
	g := newOrderedGroups[string, int]()
	g.add("Subjonctif", 1)
	g.add("Indicatif", 2)
	g.add("Subjonctif", 3)

	var keys []string
	var values [][]int
	for k, v := range g.each() {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal(t, 2, g.len())
	assert.Equal(t, []string{"Subjonctif", "Indicatif"}, keys)
	assert.Equal(t, [][]int{{1, 3}, {2}}, values)
}

func TestOrderedGroups_StopEarly(t *testing.T) {
	g := newOrderedGroups[string, int]()
	g.add("a", 1)
	g.add("b", 2)

	n := 0
	for range g.each() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
