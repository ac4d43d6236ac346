package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mode string

const (
	modeProduction  mode = "production"
	modeDevelopment mode = "development"
)

func modes() *Normalizer[mode] {
	return NewNormalizer(map[string]mode{
		"production":  modeProduction,
		"prod":        modeProduction,
		"development": modeDevelopment,
	}, modeProduction)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := modes()
	tests := []struct {
		name  string
		input string
		want  mode
	}{
		{"exact", "development", modeDevelopment},
		{"case insensitive", "DEVELOPMENT", modeDevelopment},
		{"spaces", "  prod ", modeProduction},
		{"unknown falls back to default", "staging", modeProduction},
		{"empty falls back to default", "", modeProduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Lookup(t *testing.T) {
	n := modes()
	v, ok := n.Lookup(" Prod")
	assert.True(t, ok)
	assert.Equal(t, modeProduction, v)

	_, ok = n.Lookup("staging")
	assert.False(t, ok)
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := modes()

	v, err := n.NormalizeWithError("Development")
	require.NoError(t, err)
	assert.Equal(t, modeDevelopment, v)

	_, err = n.NormalizeWithError("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"staging"`)
	assert.Contains(t, err.Error(), "development, prod, production")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := modes()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"development", "prod", "production"}, n.ValidKeys())
}
