package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	registerForAutomigration(&Extraction{})
}

// Extraction records one signal built from a video.
type Extraction struct {
	gorm.Model
	UUID         string
	VideoPath    string
	Mode         string
	SignalPath   string
	FrameCount   int
	SignalLength int
	FPS          float64
}

func (e *Extraction) BeforeCreate(tx *gorm.DB) error {
	if len(e.UUID) == 0 {
		e.UUID = uuid.NewString()
	}
	return nil
}
