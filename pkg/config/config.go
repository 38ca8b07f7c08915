package config

import (
	"github.com/tauraamui/shotdetect/internal/config"
)

// Path is where the config file is read from and created at.
func Path() (string, error) {
	return config.Path()
}
