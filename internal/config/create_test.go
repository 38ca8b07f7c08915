package config

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/shotdetect/pkg/configdef"
	"github.com/tauraamui/shotdetect/pkg/log"
)

type CreateConfigTestSuite struct {
	suite.Suite
	is            *is.I
	creator       configdef.Creator
	resolver      configdef.Resolver
	destroyer     configdef.Destroyer
	fs            afero.Fs
	fsRef         afero.Fs
	userConfigRef func() (string, error)
	resetLogging  func()
}

func (suite *CreateConfigTestSuite) SetupSuite() {
	suite.is = is.New(suite.T())
	suite.resetLogging = log.Silence()
	suite.creator = DefaultCreator()
	suite.resolver = DefaultResolver()
	suite.destroyer = DefaultDestroyer()

	suite.fsRef = fs
	suite.userConfigRef = userConfigDir
	userConfigDir = func() (string, error) { return "/testroot/.config", nil }
}

func (suite *CreateConfigTestSuite) SetupTest() {
	// use in memory FS in implementation for tests
	suite.fs = afero.NewMemMapFs()
	fs = suite.fs
}

func (suite *CreateConfigTestSuite) TearDownSuite() {
	fs = suite.fsRef
	userConfigDir = suite.userConfigRef
	suite.resetLogging()
}

func (suite *CreateConfigTestSuite) TestConfigCreate() {
	path, err := suite.creator.Create()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/testroot/.config/tacusci/shotdetect/config.json", path)

	loadedConfig, err := suite.resolver.Resolve()
	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), defaultValues(), loadedConfig)
}

func (suite *CreateConfigTestSuite) TestConfigCreateFailsDueToAlreadyExisting() {
	_, err := suite.creator.Create()
	suite.is.NoErr(err)
	_, err = suite.creator.Create()
	suite.is.Equal(err.Error(), "config file already exists")
	suite.is.True(errors.Is(err, configdef.ErrConfigAlreadyExists))
}

func (suite *CreateConfigTestSuite) TestConfigDestroyRemovesFile() {
	path, err := suite.creator.Create()
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.destroyer.Destroy())
	exists, err := afero.Exists(suite.fs, path)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

func (suite *CreateConfigTestSuite) TestConfigCreateFailsOnReadOnlyFS() {
	fs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := suite.creator.Create()
	require.Error(suite.T(), err)
	assert.False(suite.T(), errors.Is(err, configdef.ErrConfigAlreadyExists))
}

func TestCreateConfigTestSuite(t *testing.T) {
	suite.Run(t, &CreateConfigTestSuite{})
}
