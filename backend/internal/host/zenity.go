package host

import (
	"context"
	"errors"

	"github.com/ncruces/zenity"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

// ZenityHost opens a file selection dialog through zenity. Unlike the
// native dialog it can be closed by canceling the context.
type ZenityHost struct {
	startDir string

	api.PickerHost
}

func NewZenityHost(startDir string) *ZenityHost {
	return &ZenityHost{startDir: startDir}
}

func (s *ZenityHost) Name() string {
	return Zenity
}

func (s *ZenityHost) Present(ctx context.Context, request *apitype.PickRequest, receiver api.PickResultReceiver) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	options := []zenity.Option{
		zenity.Title(request.Title),
		zenity.FileFilters{
			{Name: "Images", Patterns: request.Patterns},
		},
		zenity.Context(ctx),
	}
	if s.startDir != "" {
		options = append(options, zenity.Filename(s.startDir))
	}

	go func() {
		path, err := zenity.SelectFile(options...)
		switch {
		case errors.Is(err, zenity.ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			receiver.Deliver(apitype.NewCanceledResult())
		case err != nil:
			logger.Error.Printf("File picker failed: %s", err)
			receiver.Deliver(apitype.NewErrorResult(err))
		default:
			receiver.Deliver(apitype.NewSelectedResult(apitype.NewFileReference(path)))
		}
	}()
	return nil
}
