package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_ShortID(t *testing.T) {
	r := Round{RoundID: "a1b2c3d4e5f6"}

	assert.Equal(t, "a1b2c3d4", r.ShortID(8))
	assert.Equal(t, "a1b2c3d4e5f6", r.ShortID(64))
	assert.Equal(t, "a1b2c3d4e5f6", r.ShortID(0))
}

func TestZone_Contains(t *testing.T) {
	z := Zone{Name: "Orbit", MinInclusive: 2, MaxExclusive: 5}

	assert.True(t, z.Contains(2), "lower bound is inclusive")
	assert.True(t, z.Contains(4.99))
	assert.False(t, z.Contains(5), "upper bound is exclusive")
	assert.False(t, z.Contains(1.99))
	assert.False(t, z.Contains(math.NaN()))
}

func TestZone_MarshalJSON(t *testing.T) {
	t.Run("bounded", func(t *testing.T) {
		data, err := json.Marshal(Zone{Name: "Orbit", Icon: "o", ColorKey: "blue", MinInclusive: 2, MaxExclusive: 5})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Orbit","icon":"o","color_key":"blue","min":2,"max":5}`, string(data))
	})

	t.Run("unbounded", func(t *testing.T) {
		z := Zone{Name: "Moon Shot", MinInclusive: 10, MaxExclusive: math.Inf(1)}
		require.True(t, z.Unbounded())

		data, err := json.Marshal(z)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Moon Shot","icon":"","color_key":"","min":10,"max":null}`, string(data))
	})
}

func TestPeriod_Valid(t *testing.T) {
	for _, p := range []Period{Period1h, Period6h, Period24h, Period7d, Period30d} {
		assert.True(t, p.Valid(), "period %q", p)
	}
	assert.False(t, Period("2h").Valid())
	assert.False(t, Period("").Valid())
}

func TestHealth_Healthy(t *testing.T) {
	assert.True(t, Health{Status: "healthy"}.Healthy())
	assert.False(t, Health{Status: "unhealthy"}.Healthy())
}
