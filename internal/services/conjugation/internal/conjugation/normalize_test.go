package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tbl := []struct {
		in   string
		want string
	}{
		{"allée", "allé"},
		{"partie ", "parti "},
		{"content", "content"},
		{"suis allée", "suis allé"},
		{"sont allées", "sont allés"},
		{"allée ", "allé "},
		{"créée", "créé"},
		{"parle", "parle"},
		{"", ""},
		{"e ", " "},
	}

	for _, c := range tbl {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, Normalize(c.in))
		})
	}
}
