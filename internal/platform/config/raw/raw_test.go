package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("DASHKIT_NAME", " dashkit ")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_BLANK", "   ")

	assert.Equal(t, "dashkit", New().Get("DASHKIT_NAME", "x"))
	log := New().Prefix("LOG_")
	assert.Equal(t, "json", log.Get("FORMAT", "console"))
	assert.Equal(t, "console", log.Get("BLANK", "console"))
	assert.Equal(t, "debug", log.Get("LEVEL_UNSET", "debug"))
	assert.Equal(t, "json", New().Prefix("LO").Prefix("G_").Get("FORMAT", ""), "prefixes nest")
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RAWB_")
	for v, want := range map[string]bool{
		"1": true, "true": true, "YES": true, " on ": true,
		"0": false, "false": false, "no": false, "maybe": false,
	} {
		t.Setenv("RAWB_FLAG", v)
		assert.Equal(t, want, c.GetBool("FLAG", !want), v)
	}
	assert.True(t, c.GetBool("UNSET", true))
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RAWI_")
	t.Setenv("RAWI_N", " 42 ")
	t.Setenv("RAWI_NEG", "-3")
	t.Setenv("RAWI_BAD", "4x")

	assert.Equal(t, 42, c.GetInt("N", 7))
	assert.Equal(t, 7, c.GetInt("NEG", 7))
	assert.Equal(t, 7, c.GetInt("BAD", 7))
	assert.Equal(t, 7, c.GetInt("UNSET", 7))
}
