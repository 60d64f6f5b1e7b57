package binding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Kaz"},"song":{"key":"Am","capo":3},"chords":["C","G",{"symbol":"F"}]}`)

	assert.Equal(t, "Chords for Kaz", Interpolate("Chords for ${user.name}", data))
	assert.Equal(t, "Am capo 3", Interpolate("${song.key} capo ${ song.capo }", data))
	assert.Equal(t, "G then F", Interpolate("${chords[1]} then ${chords[2].symbol}", data))
	assert.Equal(t, "${song.tempo}", Interpolate("${song.tempo}", data))
	assert.Equal(t, "no capo", Interpolate("${song.none|no capo}", data))
	assert.Equal(t, "${chords[9]}", Interpolate("${chords[9]}", data))
	assert.Equal(t, "${chords[x]}", Interpolate("${chords[x]}", data))
}

func TestInterpolateWithoutData(t *testing.T) {
	assert.Equal(t, "Hello ${user}", Interpolate("Hello ${user}", nil))
	assert.Equal(t, "Hello guest", Interpolate("Hello ${user|guest}", nil))
	assert.Equal(t, "plain", Interpolate("plain", nil))
}

func TestLookup(t *testing.T) {
	data := decode(t, `{"a":[[1,2],[3,4]]}`)
	v, ok := Lookup(data, "a[1][0]")
	require.True(t, ok)
	assert.Equal(t, float64(3), v)

	_, ok = Lookup(data, "a.b")
	assert.False(t, ok)
}
