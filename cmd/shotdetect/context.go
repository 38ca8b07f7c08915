package main

import (
	"os"
	"strings"

	"github.com/tauraamui/shotdetect/pkg/catalog"
	"github.com/tauraamui/shotdetect/pkg/config"
	"github.com/tauraamui/shotdetect/pkg/configdef"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/shotdetect/pkg/pipeline"
	"github.com/tauraamui/shotdetect/pkg/signal"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
)

var resolveBackend = videobackend.Resolve

type commandContext struct {
	backendFlag *string
	resolver    config.Resolver
	values      *configdef.Values
}

func newCommandContext(backendFlag *string) *commandContext {
	return &commandContext{backendFlag: backendFlag, resolver: config.DefaultResolver()}
}

func (c *commandContext) ensureConfig() (configdef.Values, error) {
	if c.values != nil {
		return *c.values, nil
	}
	values, err := c.resolver.Resolve()
	if err != nil {
		return configdef.Values{}, err
	}
	c.values = &values
	return values, nil
}

// backendName prefers the --backend flag, then SHOTDETECT_VIDEO_BACKEND,
// then the config file.
func (c *commandContext) backendName() string {
	if c.backendFlag != nil && len(*c.backendFlag) > 0 {
		return *c.backendFlag
	}
	if env := os.Getenv("SHOTDETECT_VIDEO_BACKEND"); len(env) > 0 {
		return env
	}
	if c.values != nil {
		return c.values.VideoBackend
	}
	return ""
}

func (c *commandContext) backend() videobackend.Backend {
	name := c.backendName()
	log.Debug("Using video backend: %s", strings.ToLower(name))
	return resolveBackend(name)
}

func (c *commandContext) store() signal.Store {
	if c.values == nil {
		return signal.NewStore("")
	}
	return signal.NewStore(c.values.SignalDir)
}

// openCatalog returns nil when the catalog is disabled or cannot be
// opened. Neither stops a run.
func (c *commandContext) openCatalog() *catalog.Catalog {
	if c.values == nil || !c.values.Catalog.Enabled {
		return nil
	}
	cat, err := catalog.Connect(c.values.Catalog.Path)
	if err != nil {
		log.Warn("Run catalog unavailable: %v", err)
		return nil
	}
	return cat
}

// newPipeline builds a pipeline and returns a func releasing what it opened.
func (c *commandContext) newPipeline(progress signal.Progress) (*pipeline.Pipeline, func()) {
	settings := pipeline.Settings{
		Backend:  c.backend(),
		Store:    c.store(),
		Progress: progress,
	}
	if c.values != nil {
		settings.FeatureOptions = c.values.FeatureOptions()
	}

	cat := c.openCatalog()
	if cat == nil {
		return pipeline.New(settings), func() {}
	}
	settings.Recorder = cat
	return pipeline.New(settings), func() {
		if err := cat.Close(); err != nil {
			log.Warn("Unable to close run catalog: %v", err)
		}
	}
}
