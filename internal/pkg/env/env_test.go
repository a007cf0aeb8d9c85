package env_test

import (
	"testing"
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/env"
	"github.com/stretchr/testify/assert"
)

func TestRequireString(t *testing.T) {
	t.Setenv("TEST_REQUIRED_STRING", "required_value")
	assert.Equal(t, "required_value", env.RequireString("TEST_REQUIRED_STRING"))
}

func TestRequireString_Panic(t *testing.T) {
	assert.Panics(t, func() {
		env.RequireString("NON_EXISTENT_REQUIRED_STRING")
	})
}

func TestString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", env.String("TEST_STRING", "default"))
	assert.Equal(t, "default", env.String("NON_EXISTENT_STRING", "default"))
}

func TestInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")
	assert.Equal(t, 42, env.Int("TEST_INT", 100))
	assert.Equal(t, 100, env.Int("TEST_INT_BAD", 100))
	assert.Equal(t, 100, env.Int("NON_EXISTENT_INT", 100))
}

func TestBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_1", "1")
	t.Setenv("TEST_BOOL_NO", "NO")
	assert.True(t, env.Bool("TEST_BOOL", false))
	assert.True(t, env.Bool("TEST_BOOL_1", false))
	assert.False(t, env.Bool("TEST_BOOL_NO", true))
	assert.False(t, env.Bool("NON_EXISTENT_BOOL", false))
}

func TestDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h45m")
	assert.Equal(t, 2*time.Hour+45*time.Minute, env.Duration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, env.Duration("NON_EXISTENT_DURATION", time.Minute))
}

func TestStrings(t *testing.T) {
	t.Setenv("TEST_STRINGS", "http://a.example, ,http://b.example")
	t.Setenv("TEST_STRINGS_BLANK", "  ")
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, env.Strings("TEST_STRINGS", nil))
	assert.Equal(t, []string{"*"}, env.Strings("TEST_STRINGS_BLANK", []string{"*"}))
	assert.Equal(t, []string{"*"}, env.Strings("NON_EXISTENT_STRINGS", []string{"*"}))
}
