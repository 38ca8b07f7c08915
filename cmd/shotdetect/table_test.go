package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/shotdetect/pkg/pipeline"
)

func TestRenderTableWithoutHeadersIsEmpty(t *testing.T) {
	is := is.New(t)
	is.Equal(renderTable(nil, [][]string{{"a"}}, nil), "")
}

func TestRenderTablePadsShortRows(t *testing.T) {
	is := is.New(t)
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	is.True(strings.Contains(out, "only"))
	is.Equal(strings.Count(out, "\n"), 4)
}

func TestRenderBoundaryReport(t *testing.T) {
	is := is.New(t)
	out := renderBoundaryReport([]pipeline.ReportRow{
		{Position: 1, Frame: 29, Timestamp: 966 * time.Millisecond, Value: 1, Prominence: 1},
		{Position: 2, Frame: 3000, Timestamp: 100 * time.Second, Value: 0.75, Prominence: 0.5},
	})
	is.True(strings.Contains(out, "Prominence"))
	is.True(strings.Contains(out, "3000"))
	is.True(strings.Contains(out, "1:40"))
	is.True(strings.Contains(out, "0.7500"))
}

func TestRenderHistoryTables(t *testing.T) {
	is := is.New(t)
	extractions := renderExtractionHistory([]models.Extraction{
		{UUID: "0f8fad5b-d9cb-469f-a165-70867728950e", Mode: "entropy", VideoPath: "clip.mp4", SignalPath: "clip.npy", SignalLength: 120},
	})
	is.True(strings.Contains(extractions, "0f8fad5b"))
	is.True(!strings.Contains(extractions, "d9cb"))
	is.True(strings.Contains(extractions, "120"))

	detections := renderDetectionHistory([]models.Detection{
		{UUID: "short", Mode: "histogram", SignalPath: "clip.npy", Prominence: 0.25, Count: 3},
	})
	is.True(strings.Contains(detections, "0.25"))
	is.True(strings.Contains(detections, "short"))
}

func TestBoundaryFramesListsFirstFewTransitions(t *testing.T) {
	is := is.New(t)

	detection := models.Detection{}
	detection.SetBoundaries([]int{29, 45})
	is.Equal(boundaryFrames(detection), "29 45")

	detection.SetBoundaries([]int{1, 2, 3, 4, 5, 6, 7})
	is.Equal(boundaryFrames(detection), "1 2 3 4 5 ...")

	is.Equal(boundaryFrames(models.Detection{}), "")
	is.Equal(boundaryFrames(models.Detection{Boundaries: "29,x"}), "corrupt")

	out := renderDetectionHistory([]models.Detection{detection})
	is.True(strings.Contains(out, "Frames"))
	is.True(strings.Contains(out, "1 2 3 4 5 ..."))
}

func TestLockOutputIsExclusive(t *testing.T) {
	is := is.New(t)
	path := t.TempDir() + "/signals/clip.npy"

	unlock, err := lockOutput(path)
	is.NoErr(err)

	_, err = lockOutput(path)
	is.True(err != nil)

	unlock()
	unlockAgain, err := lockOutput(path)
	is.NoErr(err)
	unlockAgain()
}

type recordingFs struct {
	afero.Fs
	created []string
	removed []string
}

func (r *recordingFs) MkdirAll(path string, perm os.FileMode) error {
	r.created = append(r.created, path)
	return r.Fs.MkdirAll(path, perm)
}

func (r *recordingFs) Remove(name string) error {
	r.removed = append(r.removed, name)
	return r.Fs.Remove(name)
}

func TestLockOutputGoesThroughFS(t *testing.T) {
	is := is.New(t)
	recording := &recordingFs{Fs: afero.NewOsFs()}
	defer overloadFS(recording)()

	dir := filepath.Join(t.TempDir(), "signals")
	path := filepath.Join(dir, "clip.npy")

	unlock, err := lockOutput(path)
	is.NoErr(err)
	unlock()

	is.Equal(recording.created, []string{dir})
	is.Equal(recording.removed, []string{path + ".lock"})
	_, err = os.Stat(path + ".lock")
	is.True(os.IsNotExist(err))
}
