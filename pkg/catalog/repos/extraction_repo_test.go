package repos_test

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/shotdetect/pkg/catalog/repos"
)

func TestExtractionRepoCreateNoErr(t *testing.T) {
	is := is.New(t)

	gorm := repos.Mock()
	repo := repos.ExtractionRepository{DB: gorm}

	extraction := models.Extraction{
		VideoPath: "clip.mp4",
		Mode:      "histogram",
	}
	is.NoErr(repo.Create(&extraction))
	is.Equal(gorm.Created(), []interface{}{&extraction})
}

func TestExtractionRepoCreateWithErr(t *testing.T) {
	is := is.New(t)

	err := errors.New("unable to create data")
	gorm := repos.Mock().SetError(err)
	repo := repos.ExtractionRepository{DB: gorm}

	extraction := models.Extraction{
		VideoPath: "clip.mp4",
	}
	is.Equal(repo.Create(&extraction).Error(), err.Error())
	is.Equal(len(gorm.Created()), 0)
}

type extractionRepoFindBySignalPathTest struct {
	title              string
	error              error
	findWith           string
	expectedResultUUID string
	expectedWhereQuery string
	expectedOrder      string
}

func TestExtractionRepoFindBySignalPath(t *testing.T) {
	existing := models.Extraction{
		UUID:       "existing-extraction",
		SignalPath: "clip.npy",
	}

	tests := []extractionRepoFindBySignalPathTest{
		{
			title:              "find extraction by signal path",
			findWith:           "clip.npy",
			expectedResultUUID: "existing-extraction",
			expectedWhereQuery: "signal_path = ?",
			expectedOrder:      "created_at desc",
		},
		{
			title:    "find extraction by signal path returns error",
			findWith: "missing.npy",
			error:    errors.New("extraction of signal missing.npy not found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			is := is.New(t)

			gorm := repos.Mock().SetResult(existing).SetError(tt.error)
			repo := repos.ExtractionRepository{DB: gorm}
			e, err := repo.FindBySignalPath(tt.findWith)
			if tt.error != nil {
				is.True(err != nil)
				is.Equal(err.Error(), tt.error.Error())
				return
			}

			is.NoErr(err)
			is.Equal(e.UUID, tt.expectedResultUUID)
			is.Equal(gorm.Chain().Where.Query, tt.expectedWhereQuery)
			is.Equal(gorm.Chain().Where.Args, []interface{}{tt.findWith})
			is.Equal(gorm.Chain().Order, tt.expectedOrder)
		})
	}
}

func TestExtractionRepoLatest(t *testing.T) {
	is := is.New(t)

	existing := []models.Extraction{{UUID: "b"}, {UUID: "a"}}
	gorm := repos.Mock().SetResult(existing)
	repo := repos.ExtractionRepository{DB: gorm}

	extractions, err := repo.Latest(2)
	is.NoErr(err)
	is.Equal(len(extractions), 2)
	is.Equal(extractions[0].UUID, "b")
	is.Equal(gorm.Chain().Order, "created_at desc")
	is.Equal(gorm.Chain().Limit, 2)
}

func TestDetectionRepoCreateAndLatest(t *testing.T) {
	is := is.New(t)

	gorm := repos.Mock()
	repo := repos.DetectionRepository{DB: gorm}

	detection := models.Detection{SignalPath: "clip.npy", Prominence: 0.5}
	detection.SetBoundaries([]int{29})
	is.NoErr(repo.Create(&detection))
	is.Equal(gorm.Created(), []interface{}{&detection})

	gorm.SetResult([]models.Detection{detection})
	detections, err := repo.Latest(10)
	is.NoErr(err)
	is.Equal(len(detections), 1)
	is.Equal(detections[0].Boundaries, "29")
	is.Equal(gorm.Chain().Limit, 10)
}

func TestDetectionRepoLatestWithErr(t *testing.T) {
	is := is.New(t)

	gorm := repos.Mock().SetError(errors.New("database is locked"))
	repo := repos.DetectionRepository{DB: gorm}

	_, err := repo.Latest(10)
	is.True(err != nil)
	is.Equal(err.Error(), "unable to list detections: database is locked")
}

func TestReplaceRejectsMismatchedTypes(t *testing.T) {
	is := is.New(t)

	var dest models.Extraction
	is.True(repos.Replace(&dest, models.Detection{}) != nil)
	is.True(repos.Replace(dest, models.Extraction{}) != nil)
	is.NoErr(repos.Replace(&dest, models.Extraction{UUID: "x"}))
	is.Equal(dest.UUID, "x")
}
