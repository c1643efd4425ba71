package chroma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert := require.New(t)

	assert.NoError(Version.Validate())
	assert.NotEqual("0.0.0", Version.String())
}

func TestSchemes(t *testing.T) {
	assert := require.New(t)

	schemes := Schemes()
	assert.NotEmpty(schemes)
	for _, id := range schemes {
		s, err := id.New()
		assert.NoError(err)
		assert.Equal(id, s.ID())
		assert.Positive(s.KeySize())
		assert.Positive(s.Size())
	}
}
