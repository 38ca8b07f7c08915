package config

import "github.com/tauraamui/shotdetect/pkg/configdef"

func DefaultCreator() configdef.Creator {
	return defaultCreator{}
}

type defaultCreator struct{}

func (d defaultCreator) Create() (string, error) {
	return create()
}
