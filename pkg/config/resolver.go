package config

import (
	"github.com/tauraamui/shotdetect/internal/config"
	"github.com/tauraamui/shotdetect/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}
