package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
	"vincit.fi/image-picker/common/util"
)

const defaultSettleTime = 250 * time.Millisecond

// WatchHost is a headless picker: the first image file dropped into the
// watched directory is the selection. Running out of time counts as a
// cancel.
type WatchHost struct {
	dir        string
	timeout    time.Duration
	settleTime time.Duration

	api.PickerHost
}

func NewWatchHost(dir string, timeout time.Duration) *WatchHost {
	return &WatchHost{
		dir:        dir,
		timeout:    timeout,
		settleTime: defaultSettleTime,
	}
}

func (s *WatchHost) Name() string {
	return Watch
}

func (s *WatchHost) Present(ctx context.Context, request *apitype.PickRequest, receiver api.PickResultReceiver) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dir == "" {
		return fmt.Errorf("no directory to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch '%s': %w", s.dir, err)
	}

	extensions := acceptedExtensions(request)
	logger.Info.Printf("Waiting for one of %d image types in '%s' for session %s", extensions.Len(), s.dir, request.SessionId)
	go s.eventLoop(ctx, watcher, extensions, receiver)
	return nil
}

func (s *WatchHost) eventLoop(ctx context.Context, watcher *fsnotify.Watcher, extensions *util.Set[string], receiver api.PickResultReceiver) {
	defer watcher.Close()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// A file is picked once it has not been written to for settleTime.
	settle := time.NewTimer(s.settleTime)
	settle.Stop()
	pending := ""
	watchErrors := watcher.Errors

	for {
		select {
		case <-ctx.Done():
			logger.Debug.Printf("Watching '%s' ended: %s", s.dir, ctx.Err())
			receiver.Deliver(apitype.NewCanceledResult())
			return

		case event, ok := <-watcher.Events:
			if !ok {
				receiver.Deliver(apitype.NewErrorResult(fmt.Errorf("watcher closed")))
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !extensions.Contains(strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}
			if pending != "" && pending != event.Name {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil || info.IsDir() {
				continue
			}
			pending = event.Name
			settle.Reset(s.settleTime)

		case <-settle.C:
			if info, err := os.Stat(pending); err != nil || info.Size() == 0 {
				logger.Debug.Printf("Ignoring empty or vanished file '%s'", pending)
				pending = ""
				continue
			}
			logger.Debug.Printf("Picked '%s' from watched directory", pending)
			receiver.Deliver(apitype.NewSelectedResult(apitype.NewFileReference(pending)))
			return

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logger.Error.Printf("Watching '%s' failed: %s", s.dir, err)
			receiver.Deliver(apitype.NewErrorResult(err))
			return
		}
	}
}

func acceptedExtensions(request *apitype.PickRequest) *util.Set[string] {
	extensions := request.Extensions()
	for i, extension := range extensions {
		extensions[i] = "." + strings.ToLower(extension)
	}
	return util.NewSetOf(extensions...)
}
