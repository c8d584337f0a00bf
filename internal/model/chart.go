package model

import "time"

// ChartPoint is a single daily close of a price chart.
type ChartPoint struct {
	Date  time.Time `json:"-"`
	Label string    `json:"label"`
	Close float64   `json:"close"`
}

// DateString returns the point's calendar date as YYYY-MM-DD.
func (p ChartPoint) DateString() string {
	return p.Date.Format("2006-01-02")
}

// ChartState is the lifecycle state of a viewer's chart.
type ChartState string

const (
	ChartIdle    ChartState = "idle"
	ChartLoading ChartState = "loading"
	ChartLoaded  ChartState = "loaded"
	ChartErrored ChartState = "errored"
)
