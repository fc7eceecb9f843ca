package parsemode

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	cases := map[string]Mode{
		"":         Combined,
		"both":     Combined,
		"Combined": Combined,
		"md":       Markdown,
		"markdown": Markdown,
		"HTML":     HTML,
		"none":     Disabled,
		"disabled": Disabled,
	}
	for in, want := range cases {
		got, err := FromString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := FromString("markdownv2")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestOptionResolve(t *testing.T) {
	assert.Equal(t, HTML, Unset().Resolve(HTML))
	assert.Equal(t, Combined, Unset().Resolve(""))
	assert.Equal(t, Markdown, Explicit(Markdown).Resolve(HTML))
	assert.Equal(t, Disabled, None().Resolve(HTML))

	var zero Option
	assert.True(t, zero.IsUnset())
	assert.False(t, None().IsUnset())
	assert.Equal(t, "unset", zero.String())
	assert.Equal(t, "md", string(Explicit("md").mode))
}
