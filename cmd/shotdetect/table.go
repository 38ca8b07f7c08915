package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/shotdetect/pkg/navigator"
	"github.com/tauraamui/shotdetect/pkg/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderBoundaryReport(rows []pipeline.ReportRow) string {
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		body = append(body, []string{
			strconv.Itoa(r.Position),
			strconv.Itoa(r.Frame),
			navigator.Clock(r.Timestamp),
			fmt.Sprintf("%.4f", r.Value),
			fmt.Sprintf("%.4f", r.Prominence),
		})
	}
	return renderTable(
		[]string{"#", "Frame", "Time", "Value", "Prominence"},
		body,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func renderExtractionHistory(extractions []models.Extraction) string {
	body := make([][]string, 0, len(extractions))
	for _, e := range extractions {
		body = append(body, []string{
			shortID(e.UUID),
			e.CreatedAt.Format(time.RFC3339),
			e.Mode,
			e.VideoPath,
			e.SignalPath,
			strconv.Itoa(e.SignalLength),
		})
	}
	return renderTable(
		[]string{"ID", "When", "Mode", "Video", "Signal", "Values"},
		body,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func renderDetectionHistory(detections []models.Detection) string {
	body := make([][]string, 0, len(detections))
	for _, d := range detections {
		body = append(body, []string{
			shortID(d.UUID),
			d.CreatedAt.Format(time.RFC3339),
			d.Mode,
			d.SignalPath,
			strconv.FormatFloat(d.Prominence, 'g', -1, 64),
			strconv.Itoa(d.Count),
			boundaryFrames(d),
		})
	}
	return renderTable(
		[]string{"ID", "When", "Mode", "Signal", "Prominence", "Transitions", "Frames"},
		body,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

const maxListedFrames = 5

// boundaryFrames lists the first few transition frames of d.
func boundaryFrames(d models.Detection) string {
	indices, err := d.BoundaryIndices()
	if err != nil {
		return "corrupt"
	}
	frames := make([]string, 0, maxListedFrames+1)
	for i, b := range indices {
		if i == maxListedFrames {
			frames = append(frames, "...")
			break
		}
		frames = append(frames, strconv.Itoa(b))
	}
	return strings.Join(frames, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
