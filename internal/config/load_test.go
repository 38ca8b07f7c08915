package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/shotdetect/pkg/configdef"
	"github.com/tauraamui/shotdetect/pkg/log"
)

type LoadConfigTestSuite struct {
	suite.Suite
	configResolver configdef.Resolver
	fs             afero.Fs
	path           string
	resetLogging   func()
	fsRef          afero.Fs
	userConfigRef  func() (string, error)
}

func (suite *LoadConfigTestSuite) SetupSuite() {
	suite.resetLogging = log.Silence()
	suite.configResolver = DefaultResolver()
	suite.fsRef = fs
	suite.userConfigRef = userConfigDir
	userConfigDir = func() (string, error) { return "/testroot/.config", nil }
}

func (suite *LoadConfigTestSuite) TearDownSuite() {
	fs = suite.fsRef
	userConfigDir = suite.userConfigRef
	suite.resetLogging()
}

func (suite *LoadConfigTestSuite) SetupTest() {
	// use in memory FS in implementation for tests
	suite.fs = afero.NewMemMapFs()
	fs = suite.fs

	path, err := resolveConfigPath()
	require.NoError(suite.T(), err)
	suite.path = path
}

func (suite *LoadConfigTestSuite) writeTestConfig(config string) {
	require.NoError(suite.T(), suite.fs.MkdirAll(filepath.Dir(suite.path), os.ModeDir|os.ModePerm))
	require.NoError(suite.T(), afero.WriteFile(suite.fs, suite.path, []byte(config), 0666))
}

func (suite *LoadConfigTestSuite) TestResolvesPathUnderUserConfigDir() {
	assert.Equal(suite.T(), "/testroot/.config/tacusci/shotdetect/config.json", suite.path)
}

func (suite *LoadConfigTestSuite) TestResolvesPathFromEnv() {
	suite.T().Setenv("SHOTDETECT_CONFIG", "/elsewhere/shotdetect.json")
	path, err := Path()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/elsewhere/shotdetect.json", path)
}

func (suite *LoadConfigTestSuite) TestResolvePathFailsWithoutUserConfigDir() {
	userConfigDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
	defer func() { userConfigDir = func() (string, error) { return "/testroot/.config", nil } }()

	_, err := suite.configResolver.Resolve()
	assert.EqualError(suite.T(), err, "unable to resolve config.json location: $HOME is not defined")
}

func (suite *LoadConfigTestSuite) TestLoadMissingConfigGivesDefaults() {
	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 0.5, config.Prominence.Histogram)
	assert.Equal(suite.T(), 6.0, config.Prominence.Entropy)
	assert.Equal(suite.T(), 0.5, config.Prominence.OpticalFlow)
	assert.Equal(suite.T(), 50, config.OpticalFlowScalePercent)
	assert.Equal(suite.T(), "opencv", config.VideoBackend)
	assert.True(suite.T(), config.Catalog.Enabled)
}

func (suite *LoadConfigTestSuite) TestLoadConfigOverridesDefaults() {
	suite.writeTestConfig(`{
		"prominence": {"entropy": 3.5},
		"video_backend": "synthetic",
		"signal_dir": "/signals",
		"catalog": {"enabled": false}
	}`)

	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 3.5, config.Prominence.Entropy)
	assert.Equal(suite.T(), 0.5, config.Prominence.Histogram)
	assert.Equal(suite.T(), 50, config.OpticalFlowScalePercent)
	assert.Equal(suite.T(), "synthetic", config.VideoBackend)
	assert.Equal(suite.T(), "/signals", config.SignalDir)
	assert.False(suite.T(), config.Catalog.Enabled)
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsOnInvalidJSON() {
	suite.writeTestConfig(`{"video_backend" "opencv"}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "parsing configuration error")
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsValidationOnScalePercent() {
	suite.writeTestConfig(`{"optical_flow_scale_percent": 0}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)

	assert.EqualError(suite.T(), err, `Validation error in field "OpticalFlowScalePercent" of type "int" using validator "gte=1"`)
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsValidationOnBackend() {
	suite.writeTestConfig(`{"video_backend": "v4l2"}`)

	_, err := suite.configResolver.Resolve()
	assert.EqualError(suite.T(), err, `validation failed: unknown video backend "v4l2"`)
}

func TestLoadConfigTestSuite(t *testing.T) {
	suite.Run(t, &LoadConfigTestSuite{})
}
