package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snapkitchen/pantry-api/internal/models"
)

func TestConvertAmountSameUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 500.0, ConvertAmount(500, models.UnitGrams, models.UnitGrams, 1000))
	assert.Equal(t, 2.0, ConvertAmount(2, models.UnitCups, models.UnitCups, 5))
}

func TestConvertAmountBulkInterchangeable(t *testing.T) {
	t.Parallel()

	// grams and ml are treated as the same magnitude
	assert.Equal(t, 250.0, ConvertAmount(250, models.UnitML, models.UnitGrams, 1000))
	assert.Equal(t, 250.0, ConvertAmount(250, models.UnitGrams, models.UnitML, 1000))
}

func TestConvertAmountMetricScaling(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.5, ConvertAmount(500, models.UnitGrams, models.UnitKg, 2))
	assert.Equal(t, 1500.0, ConvertAmount(1.5, models.UnitKg, models.UnitGrams, 2000))
	assert.Equal(t, 0.25, ConvertAmount(250, models.UnitML, models.UnitLiters, 1))
	assert.Equal(t, 2000.0, ConvertAmount(2, models.UnitLiters, models.UnitML, 3000))
}

func TestConvertAmountMetricRoundTrip(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{1, 250, 500, 1337.5} {
		assert.InDelta(t, x, ConvertAmount(ConvertAmount(x, models.UnitGrams, models.UnitKg, 0), models.UnitKg, models.UnitGrams, 0), 1e-9)
		assert.InDelta(t, x, ConvertAmount(ConvertAmount(x, models.UnitML, models.UnitLiters, 0), models.UnitLiters, models.UnitML, 0), 1e-9)
	}
}

func TestConvertAmountPiecesTarget(t *testing.T) {
	t.Parallel()

	// whole units, at least one
	assert.Equal(t, 2.0, ConvertAmount(2.7, models.UnitCups, models.UnitPieces, 10))
	assert.Equal(t, 1.0, ConvertAmount(0.3, models.UnitCups, models.UnitPieces, 10))
	assert.Equal(t, 3.0, ConvertAmount(3, models.UnitTbsp, models.UnitPieces, 10))
}

func TestConvertAmountIncompatibleFallback(t *testing.T) {
	t.Parallel()

	// against bulk stock: 10% of current, capped at 100
	assert.Equal(t, 50.0, ConvertAmount(2, models.UnitCups, models.UnitGrams, 500))
	assert.Equal(t, 100.0, ConvertAmount(2, models.UnitCups, models.UnitGrams, 5000))
	assert.Equal(t, 30.0, ConvertAmount(1, models.UnitTbsp, models.UnitML, 300))

	// against anything else: one unit
	assert.Equal(t, 1.0, ConvertAmount(200, models.UnitGrams, models.UnitCups, 4))
	assert.Equal(t, 1.0, ConvertAmount(2, models.UnitOz, models.UnitTbsp, 8))
}
