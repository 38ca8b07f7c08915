package main

import (
	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
)

func overloadResolveBackend(overload func(string) videobackend.Backend) func() {
	resolveBackendRef := resolveBackend
	resolveBackend = overload
	return func() { resolveBackend = resolveBackendRef }
}

func overloadFS(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}
