package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tauraamui/xerror"
	"gorm.io/gorm"
)

func init() {
	registerForAutomigration(&Detection{})
}

// Detection records one boundary search over a stored signal.
type Detection struct {
	gorm.Model
	UUID       string
	SignalPath string
	VideoPath  string
	Mode       string
	Prominence float64
	Count      int
	// Boundaries is the comma separated list of frame indices found.
	Boundaries string
}

func (d *Detection) BeforeCreate(tx *gorm.DB) error {
	if len(d.UUID) == 0 {
		d.UUID = uuid.NewString()
	}
	return nil
}

func (d *Detection) SetBoundaries(indices []int) {
	parts := make([]string, len(indices))
	for i, b := range indices {
		parts[i] = strconv.Itoa(b)
	}
	d.Boundaries = strings.Join(parts, ",")
	d.Count = len(indices)
}

func (d *Detection) BoundaryIndices() ([]int, error) {
	if len(d.Boundaries) == 0 {
		return []int{}, nil
	}
	parts := strings.Split(d.Boundaries, ",")
	indices := make([]int, len(parts))
	for i, p := range parts {
		b, err := strconv.Atoi(p)
		if err != nil {
			return nil, xerror.Errorf("detection %s has corrupt boundary list: %w", d.UUID, err)
		}
		indices[i] = b
	}
	return indices, nil
}
