package host

import (
	"context"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vincit.fi/image-picker/api/apitype"
)

type channelReceiver struct {
	results chan *apitype.PickResult
}

func newChannelReceiver() *channelReceiver {
	return &channelReceiver{results: make(chan *apitype.PickResult, 4)}
}

func (s *channelReceiver) Deliver(result *apitype.PickResult) {
	s.results <- result
}

func (s *channelReceiver) await(t *testing.T) *apitype.PickResult {
	select {
	case result := <-s.results:
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("no result delivered")
		return nil
	}
}

func TestNew(t *testing.T) {
	a := require.New(t)

	for _, name := range []string{Dialog, Zenity, Watch, Static, "STATIC"} {
		host, err := New(name, Options{})
		a.Nil(err)
		a.NotNil(host)
	}

	_, err := New("intent", Options{})
	a.NotNil(err)
}

func TestStaticHost_Present(t *testing.T) {
	a := require.New(t)

	t.Run("Selected file", func(t *testing.T) {
		receiver := newChannelReceiver()
		path := filepath.Join(t.TempDir(), "picked.png")

		a.Nil(NewStaticHost(path).Present(context.Background(), apitype.NewImagePickRequest("s1"), receiver))

		result := receiver.await(t)
		a.False(result.IsCanceled())
		a.Equal(path, result.Reference().Path())
	})
	t.Run("No file is a cancel", func(t *testing.T) {
		receiver := newChannelReceiver()

		a.Nil(NewStaticHost("").Present(context.Background(), apitype.NewImagePickRequest("s2"), receiver))

		a.True(receiver.await(t).IsCanceled())
	})
	t.Run("Done context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a.ErrorIs(NewStaticHost("x.png").Present(ctx, apitype.NewImagePickRequest("s3"), newChannelReceiver()), context.Canceled)
	})
}

func TestWatchHost_Present(t *testing.T) {
	a := require.New(t)

	t.Run("First dropped image is selected", func(t *testing.T) {
		dir := t.TempDir()
		receiver := newChannelReceiver()
		sut := NewWatchHost(dir, 10*time.Second)
		sut.settleTime = 20 * time.Millisecond

		a.Nil(sut.Present(context.Background(), apitype.NewImagePickRequest("w1"), receiver))

		a.Nil(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
		path := filepath.Join(dir, "dropped.PNG")
		a.Nil(os.WriteFile(path, []byte("png bytes"), 0o644))

		result := receiver.await(t)
		a.False(result.IsCanceled())
		a.Nil(result.Err())
		a.Equal(path, result.Reference().Path())
	})
	t.Run("Timeout is a cancel", func(t *testing.T) {
		receiver := newChannelReceiver()
		sut := NewWatchHost(t.TempDir(), 30*time.Millisecond)

		a.Nil(sut.Present(context.Background(), apitype.NewImagePickRequest("w2"), receiver))

		a.True(receiver.await(t).IsCanceled())
	})
	t.Run("Missing directory", func(t *testing.T) {
		sut := NewWatchHost(filepath.Join(t.TempDir(), "missing"), time.Second)
		a.NotNil(sut.Present(context.Background(), apitype.NewImagePickRequest("w3"), newChannelReceiver()))
	})
	t.Run("No directory", func(t *testing.T) {
		a.NotNil(NewWatchHost("", time.Second).Present(context.Background(), apitype.NewImagePickRequest("w4"), newChannelReceiver()))
	})
}

func TestAcceptedExtensions(t *testing.T) {
	a := require.New(t)

	request := apitype.NewImagePickRequest("session")
	request.Patterns = []string{"*.JPG", "*.png", "*.png", "image"}

	sut := acceptedExtensions(request)

	a.Equal(2, sut.Len())
	a.True(sut.Contains(".jpg"))
	a.True(sut.Contains(".png"))
	a.False(sut.Contains(".gif"))
	a.Equal([]string{"*.JPG", "*.png", "*.png", "image"}, request.Patterns)
}
