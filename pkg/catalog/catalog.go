// Package catalog keeps a sqlite record of signal extractions and the
// boundary searches run over them.
package catalog

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/shotdetect/pkg/catalog/repos"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/xerror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	vendorName       = "tacusci"
	appName          = "shotdetect"
	databaseFileName = "catalog.db"
)

var ErrCatalogUnavailable = xerror.New("run catalog unavailable")

var uc = os.UserCacheDir
var fs = afero.NewOsFs()

var openDBConnection = func(path string) (repos.GormWrapper, error) {
	logger := logger.New(nil, logger.Config{LogLevel: logger.Silent})
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger})
	if err != nil {
		return nil, err
	}
	return repos.Wrap(db), nil
}

type Catalog struct {
	db          repos.GormWrapper
	extractions repos.ExtractionRepository
	detections  repos.DetectionRepository
}

// Connect opens the catalog at path, creating and migrating it when
// needed. An empty path resolves to the user's cache directory.
func Connect(path string) (*Catalog, error) {
	dbPath, err := resolveDBPath(path, uc)
	if err != nil {
		return nil, err
	}

	if err := fs.MkdirAll(filepath.Dir(dbPath), os.ModeDir|os.ModePerm); err != nil {
		return nil, xerror.Errorf("%w: unable to create %s: %v", ErrCatalogUnavailable, filepath.Dir(dbPath), err)
	}

	log.Debug("Connecting to catalog: %s", dbPath) //nolint
	db, err := openDBConnection(dbPath)
	if err != nil {
		return nil, xerror.Errorf("%w: unable to open db connection: %v", ErrCatalogUnavailable, err)
	}

	if err := models.AutoMigrate(db); err != nil {
		db.Close()
		return nil, xerror.Errorf("%w: unable to run automigrations: %v", ErrCatalogUnavailable, err)
	}

	return &Catalog{
		db:          db,
		extractions: repos.ExtractionRepository{DB: db},
		detections:  repos.DetectionRepository{DB: db},
	}, nil
}

// Destroy deletes the catalog file at path.
func Destroy(path string) error {
	dbPath, err := resolveDBPath(path, uc)
	if err != nil {
		return xerror.Errorf("unable to delete catalog file: %w", err)
	}
	return fs.Remove(dbPath)
}

// Path reports where the catalog at path would be opened from.
func Path(path string) (string, error) {
	return resolveDBPath(path, uc)
}

func resolveDBPath(path string, uc func() (string, error)) (string, error) {
	if len(path) > 0 {
		return path, nil
	}

	databasePath := os.Getenv("SHOTDETECT_DB")
	if len(databasePath) > 0 {
		return databasePath, nil
	}

	databaseParentDir, err := uc()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s database file location: %w", databaseFileName, err)
	}

	return filepath.Join(
		databaseParentDir,
		vendorName,
		appName,
		databaseFileName), nil
}

func (c *Catalog) RecordExtraction(extraction *models.Extraction) error {
	if err := c.extractions.Create(extraction); err != nil {
		return xerror.Errorf("unable to record extraction of %s: %w", extraction.VideoPath, err)
	}
	log.Debug("Recorded extraction %s", extraction.UUID) //nolint
	return nil
}

func (c *Catalog) RecordDetection(detection *models.Detection) error {
	if err := c.detections.Create(detection); err != nil {
		return xerror.Errorf("unable to record detection over %s: %w", detection.SignalPath, err)
	}
	log.Debug("Recorded detection %s", detection.UUID) //nolint
	return nil
}

// ExtractionFor finds the latest extraction which produced signalPath.
func (c *Catalog) ExtractionFor(signalPath string) (models.Extraction, error) {
	return c.extractions.FindBySignalPath(signalPath)
}

func (c *Catalog) Extractions(limit int) ([]models.Extraction, error) {
	return c.extractions.Latest(limit)
}

func (c *Catalog) Detections(limit int) ([]models.Detection, error) {
	return c.detections.Latest(limit)
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
