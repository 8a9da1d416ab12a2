package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmSymmetry(t *testing.T) {
	// Miraflores <-> San Isidro
	d1 := DistanceKm(-12.1211, -77.0297, -12.0977, -77.0365)
	d2 := DistanceKm(-12.0977, -77.0365, -12.1211, -77.0297)

	assert.Equal(t, d1, d2)
	assert.Greater(t, d1, 0.0)
	assert.Less(t, d1, 5.0)
}

func TestDistanceKmIdentity(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(-12.1211, -77.0297, -12.1211, -77.0297))
}

func TestDistanceKmMissingCoordinate(t *testing.T) {
	cases := [][4]float64{
		{0, -77.0297, -12.0977, -77.0365},
		{-12.1211, 0, -12.0977, -77.0365},
		{-12.1211, -77.0297, 0, -77.0365},
		{-12.1211, -77.0297, -12.0977, 0},
	}
	for _, c := range cases {
		assert.True(t, math.IsInf(DistanceKm(c[0], c[1], c[2], c[3]), 1))
	}
}

func TestDistanceKmRounding(t *testing.T) {
	d := DistanceKm(-12.1211, -77.0297, -11.9775, -77.0094)
	assert.Equal(t, d, math.Round(d*100)/100)
}

func TestResolveDistrict(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		p := ResolveDistrict("Miraflores")
		assert.NotNil(t, p)
		assert.InDelta(t, -12.1211, p.Lat, 0.001)
	})

	t.Run("accented input", func(t *testing.T) {
		p := ResolveDistrict("Jesús María")
		assert.NotNil(t, p)
		assert.InDelta(t, -12.0781, p.Lat, 0.001)
	})

	t.Run("substring containment, input contains district", func(t *testing.T) {
		p := ResolveDistrict("vivo en san borja cerca al pentagonito")
		assert.NotNil(t, p)
		assert.InDelta(t, -12.1089, p.Lat, 0.001)
	})

	t.Run("substring containment, district contains input", func(t *testing.T) {
		p := ResolveDistrict("surco")
		assert.NotNil(t, p)
	})

	t.Run("unknown district", func(t *testing.T) {
		assert.Nil(t, ResolveDistrict("narnia"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, ResolveDistrict("   "))
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jesus maria", Normalize("  Jesús María "))
	assert.Equal(t, "brena", Normalize("Breña"))
}
