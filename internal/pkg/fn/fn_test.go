package fn

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, func(i int) string { return strconv.Itoa(i * 2) })
	assert.Equal(t, []string{"2", "4", "6"}, out)
}

func TestMap_Empty(t *testing.T) {
	out := Map([]int(nil), func(i int) int { return i })
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMapIndex(t *testing.T) {
	out := MapIndex([]string{"je", "tu"}, func(i int, s string) string { return strconv.Itoa(i) + ":" + s })
	assert.Equal(t, []string{"0:je", "1:tu"}, out)
}
