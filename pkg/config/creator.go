package config

import (
	"github.com/tauraamui/shotdetect/internal/config"
	"github.com/tauraamui/shotdetect/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}
