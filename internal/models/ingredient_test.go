package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUnit(t *testing.T) {
	t.Parallel()

	for _, u := range Units {
		assert.True(t, ValidUnit(u), "unit %q", u)
	}
	assert.False(t, ValidUnit("bunch"))
	assert.False(t, ValidUnit(""))
	assert.False(t, ValidUnit("Grams"))
}

func TestCoerceUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, UnitGrams, CoerceUnit("grams"))
	assert.Equal(t, UnitPieces, CoerceUnit("bunch"))
	assert.Equal(t, UnitPieces, CoerceUnit(""))
	assert.Equal(t, UnitPieces, CoerceUnit("handful"))
}

func TestValidCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		assert.True(t, ValidCategory(c), "category %q", c)
	}
	assert.False(t, ValidCategory("greenery"))
	assert.False(t, ValidCategory(""))
}
