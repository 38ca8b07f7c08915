package config

import (
	"github.com/tauraamui/shotdetect/internal/config"
	"github.com/tauraamui/shotdetect/pkg/configdef"
)

type Destroyer interface {
	configdef.Destroyer
}

func DefaultDestroyer() Destroyer {
	return config.DefaultDestroyer()
}
