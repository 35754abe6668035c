package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vincit.fi/image-picker/api/apitype"
)

func writeConfig(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParams_Defaults(t *testing.T) {
	a := assert.New(t)

	params, err := LoadParams("")
	a.Nil(err)
	a.Equal(DefaultLogLevel, params.LogLevel())
	a.Equal(apitype.HandleMode, params.Mode())
	a.Equal(DefaultHost, params.Host())
	a.Equal(DefaultEventQueueSize, params.EventQueueSize())
	a.Equal(time.Duration(0), params.Timeout())
	a.Equal("", params.Journal())
	a.True(params.ApplyExifOrientation())
	a.False(params.SilentFailures())
}

func TestLoadParams_Toml(t *testing.T) {
	a := assert.New(t)

	path := writeConfig(t, "picker.toml", `
logLevel = "DEBUG"
mode = "data"
host = "watch"
watchDir = "/tmp/drop"
timeout = "30s"
journal = "/tmp/journal.db"
eventQueueSize = 4
applyExifOrientation = false
silentFailures = true
`)

	params, err := LoadParams(path)
	a.Nil(err)
	a.Equal("DEBUG", params.LogLevel())
	a.Equal(apitype.DataMode, params.Mode())
	a.Equal("watch", params.Host())
	a.Equal("/tmp/drop", params.WatchDir())
	a.Equal(30*time.Second, params.Timeout())
	a.Equal("/tmp/journal.db", params.Journal())
	a.Equal(4, params.EventQueueSize())
	a.False(params.ApplyExifOrientation())
	a.True(params.SilentFailures())
}

func TestLoadParams_Yaml(t *testing.T) {
	a := assert.New(t)

	path := writeConfig(t, "picker.yaml", `
mode: handle
host: static
file: /tmp/photo.jpg
`)

	params, err := LoadParams(path)
	a.Nil(err)
	a.Equal(apitype.HandleMode, params.Mode())
	a.Equal("static", params.Host())
	a.Equal("/tmp/photo.jpg", params.File())
	a.True(params.ApplyExifOrientation())
	a.Equal(DefaultEventQueueSize, params.EventQueueSize())
}

func TestLoadParams_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadParams(filepath.Join(t.TempDir(), "nope.toml"))
		assert.NotNil(t, err)
	})
	t.Run("Unknown extension", func(t *testing.T) {
		_, err := LoadParams(writeConfig(t, "picker.ini", "mode=data"))
		assert.NotNil(t, err)
	})
	t.Run("Invalid mode", func(t *testing.T) {
		_, err := LoadParams(writeConfig(t, "picker.toml", `mode = "bitmap"`))
		assert.NotNil(t, err)
	})
	t.Run("Invalid timeout", func(t *testing.T) {
		_, err := LoadParams(writeConfig(t, "picker.yml", "timeout: soon"))
		assert.NotNil(t, err)
	})
}

func TestParams_Setters(t *testing.T) {
	a := assert.New(t)

	params := NewEmptyParams()
	a.Nil(params.SetMode("data"))
	a.Equal(apitype.DataMode, params.Mode())
	a.NotNil(params.SetMode("raw"))
	a.Equal(apitype.DataMode, params.Mode())

	params.SetEventQueueSize(0)
	a.Equal(DefaultEventQueueSize, params.EventQueueSize())
	params.SetEventQueueSize(2)
	a.Equal(2, params.EventQueueSize())
}
