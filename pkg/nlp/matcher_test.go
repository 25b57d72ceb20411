package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherExact(t *testing.T) {
	m := NewMatcher()

	res, ok := m.BestMatch("agregar 5 manzanas", []string{"Manzanas", "Peras", "Leche Entera"})
	assert.True(t, ok)
	assert.Equal(t, "Manzanas", res.Name)
	assert.Equal(t, "exact", res.Type)
}

func TestMatcherAccentInsensitive(t *testing.T) {
	m := NewMatcher()

	res, ok := m.BestMatch("buscar platanos", []string{"Plátanos", "Manzanas"})
	assert.True(t, ok)
	assert.Equal(t, "Plátanos", res.Name)
}

func TestMatcherFuzzy(t *testing.T) {
	m := NewMatcher()

	// One recognition slip still lands on the product.
	res, ok := m.BestMatch("agregar mansanas", []string{"Manzanas", "Peras"})
	assert.True(t, ok)
	assert.Equal(t, "Manzanas", res.Name)
	assert.Equal(t, "fuzzy", res.Type)
}

func TestMatcherNoMatch(t *testing.T) {
	m := NewMatcher()

	_, ok := m.BestMatch("agregar bicicleta", []string{"Manzanas", "Peras"})
	assert.False(t, ok)
}
