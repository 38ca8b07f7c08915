package pipeline

import (
	"time"

	"github.com/tauraamui/shotdetect/pkg/navigator"
	"github.com/tauraamui/shotdetect/pkg/peaks"
)

// ReportRow describes one boundary for tabular output.
type ReportRow struct {
	Position   int
	Frame      int
	Timestamp  time.Duration
	Value      float64
	Prominence float64
}

// Report lists every boundary with its value and prominence in sig.
func Report(sig []float64, boundaries peaks.BoundarySet, fps float64) []ReportRow {
	rows := make([]ReportRow, 0, boundaries.Len())
	for i, b := range boundaries {
		row := ReportRow{
			Position:  i + 1,
			Frame:     b,
			Timestamp: navigator.Timestamp(b, fps),
		}
		if b >= 0 && b < len(sig) {
			row.Value = sig[b]
			row.Prominence = peaks.Prominence(sig, b)
		}
		rows = append(rows, row)
	}
	return rows
}
