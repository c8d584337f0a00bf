package chart

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kritikayadav/screener-backend/internal/model"
)

// Summary describes the range of a series' closing prices.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summarize returns min, max and mean close. An empty series yields a zero Summary.
func Summarize(points []model.ChartPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}

	return Summary{
		Min:  floats.Min(closes),
		Max:  floats.Max(closes),
		Mean: stat.Mean(closes, nil),
	}
}
