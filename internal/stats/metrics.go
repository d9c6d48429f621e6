package stats

import (
	"time"

	"github.com/verte-zerg/typedrill/internal/model"
)

// WPMEpsilon is the elapsed time at or below which WPM is reported as zero.
const WPMEpsilon = 2 * time.Millisecond

// ErrorMarkerHeight is the default y value of error markers on a WPM chart.
const ErrorMarkerHeight = 1.0

// Point is one sample of a time series; X is seconds since session start.
type Point struct {
	X float64
	Y float64
}

// WPM converts correct characters over elapsed time to words per minute,
// counting five characters as one word.
func WPM(correct int, elapsed time.Duration) float64 {
	if elapsed <= WPMEpsilon {
		return 0
	}
	return (float64(correct) / 5.0) / elapsed.Minutes()
}

// Accuracy is the percentage of typed characters that were not errors.
func Accuracy(typed, errors int) float64 {
	if typed <= 0 {
		return 100
	}
	return float64(typed-errors) / float64(typed) * 100
}

// WPMCurve returns the running WPM after each event, preceded by a point at
// t=0 carrying the first sample's value.
func WPMCurve(events []model.TypingEvent) []Point {
	if len(events) == 0 {
		return nil
	}
	points := make([]Point, 0, len(events)+1)
	correct := 0
	for _, ev := range events {
		if !ev.WasError {
			correct++
		}
		points = append(points, Point{X: ev.SinceStart.Seconds(), Y: WPM(correct, ev.SinceStart)})
	}
	return append([]Point{{X: 0, Y: points[0].Y}}, points...)
}

// ErrorMarkers returns one point per error event at the given height.
func ErrorMarkers(events []model.TypingEvent, height float64) []Point {
	var points []Point
	for _, ev := range events {
		if ev.WasError {
			points = append(points, Point{X: ev.SinceStart.Seconds(), Y: height})
		}
	}
	return points
}
