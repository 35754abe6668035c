package backend

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common"
)

func writePng(t *testing.T, width int, height int) string {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(t.TempDir(), "picked.png")
	file, err := os.Create(path)
	require.Nil(t, err)
	defer file.Close()
	require.Nil(t, png.Encode(file, img))
	return path
}

func newStaticBackend(t *testing.T, file string, mode string) *Backend {
	params := common.NewEmptyParams()
	params.SetHost("static")
	params.SetFile(file)
	require.Nil(t, params.SetMode(mode))

	b, err := New(params)
	require.Nil(t, err)
	t.Cleanup(b.Close)
	return b
}

func nextEvent(t *testing.T, b *Backend) *apitype.PickerEvent {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tuple, err := b.Brokers.Queue.Next(ctx)
	require.Nil(t, err)
	event, err := apitype.EventFromTuple(tuple)
	require.Nil(t, err)
	return event
}

func TestBackend_PickHandle(t *testing.T) {
	a := require.New(t)
	b := newStaticBackend(t, writePng(t, 64, 32), "handle")

	a.Nil(b.Services.Picker.LaunchPicker(context.Background()))
	event := nextEvent(t, b)

	a.Equal(apitype.PickerReady, event.Kind())
	a.Equal(apitype.EncodingPNG, event.Encoding())
	entry, found := b.Services.ResourceTable.Image(event.Handle())
	a.True(found)
	a.Equal(apitype.SizeOf(64, 32), apitype.SizeFromRectangle(entry.Image().Bounds()))

	entries, err := b.Stores.JournalStore.Latest(10)
	a.Nil(err)
	a.Equal(1, len(entries))
	a.Equal(event.Handle(), entries[0].Handle)
}

func TestBackend_PickData(t *testing.T) {
	a := require.New(t)
	path := writePng(t, 16, 16)
	b := newStaticBackend(t, path, "data")

	a.Nil(b.Services.Picker.LaunchPicker(context.Background()))
	event := nextEvent(t, b)

	a.Equal(apitype.PickerReady, event.Kind())
	data, found := b.Services.ResourceTable.Data(event.Handle())
	a.True(found)
	expected, err := os.ReadFile(path)
	a.Nil(err)
	a.Equal(expected, data)
}

func TestBackend_PickCanceled(t *testing.T) {
	a := require.New(t)
	b := newStaticBackend(t, "", "handle")

	a.Nil(b.Services.Picker.LaunchPicker(context.Background()))
	event := nextEvent(t, b)

	a.Equal(apitype.PickerCanceled, event.Kind())
	a.Equal(apitype.NoHandle, event.Handle())
}

func TestBackend_UnknownHost(t *testing.T) {
	params := common.NewEmptyParams()
	params.SetHost("carrier-pigeon")

	_, err := New(params)
	require.NotNil(t, err)
}
