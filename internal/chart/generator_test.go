package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)

	t.Run("returns 31 consecutive days ending today", func(t *testing.T) {
		gen := NewGeneratorWith(func() float64 { return 0.5 }, func() time.Time { return now })

		points := gen.Generate(1000)
		require.Len(t, points, 31)

		last := points[len(points)-1]
		assert.Equal(t, "2026-03-10", last.DateString())
		assert.Equal(t, "10 Mar", last.Label)
		assert.Equal(t, "2026-02-08", points[0].DateString())

		for i := 1; i < len(points); i++ {
			assert.Equal(t, points[i-1].Date.AddDate(0, 0, 1), points[i].Date, "point %d", i)
		}
	})

	t.Run("midpoint random value yields the base price", func(t *testing.T) {
		gen := NewGeneratorWith(func() float64 { return 0.5 }, func() time.Time { return now })
		for _, p := range gen.Generate(1000) {
			assert.InDelta(t, 1000, p.Close, 1e-9)
		}
	})

	t.Run("extremes stay within five percent", func(t *testing.T) {
		values := []float64{0, 0.999999}
		i := 0
		gen := NewGeneratorWith(func() float64 {
			v := values[i%len(values)]
			i++
			return v
		}, func() time.Time { return now })

		points := gen.Generate(1000)
		assert.InDelta(t, 950, points[0].Close, 1e-6)
		assert.InDelta(t, 1050, points[1].Close, 0.01)
	})

	t.Run("real random source stays in range", func(t *testing.T) {
		points := NewGenerator().Generate(1000)
		require.Len(t, points, 31)

		today := time.Now()
		assert.Equal(t, today.Format("2006-01-02"), points[30].DateString())
		for _, p := range points {
			assert.GreaterOrEqual(t, p.Close, 950.0)
			assert.LessOrEqual(t, p.Close, 1050.0)
		}
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		jan := time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC)
		gen := NewGeneratorWith(func() float64 { return 0.5 }, func() time.Time { return jan })

		points := gen.Generate(10)
		assert.Equal(t, "2026-12-06", points[0].DateString())
		assert.Equal(t, "2027-01-05", points[30].DateString())
	})
}

func TestParseBasePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{"1,234.50", 1234.5},
		{"₹980", 980},
		{" 42.1 ", 42.1},
		{"", DefaultBasePrice},
		{"n/a", DefaultBasePrice},
		{"-5", DefaultBasePrice},
		{"0", DefaultBasePrice},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseBasePrice(tt.in), 1e-9, tt.in)
	}
}
