package host

import (
	"context"
	"errors"

	"github.com/OpenDiablo2/dialog"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

// DialogHost opens the platform's native open-file dialog.
type DialogHost struct {
	startDir string

	api.PickerHost
}

func NewDialogHost(startDir string) *DialogHost {
	return &DialogHost{startDir: startDir}
}

func (s *DialogHost) Name() string {
	return Dialog
}

func (s *DialogHost) Present(ctx context.Context, request *apitype.PickRequest, receiver api.PickResultReceiver) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	builder := dialog.File().
		Title(request.Title).
		Filter("Images", request.Extensions()...)
	if s.startDir != "" {
		builder = builder.SetStartDir(s.startDir)
	}

	go func() {
		path, err := builder.Load()
		switch {
		case errors.Is(err, dialog.ErrCancelled):
			receiver.Deliver(apitype.NewCanceledResult())
		case err != nil:
			logger.Error.Printf("File dialog failed: %s", err)
			receiver.Deliver(apitype.NewErrorResult(err))
		default:
			receiver.Deliver(apitype.NewSelectedResult(apitype.NewFileReference(path)))
		}
	}()
	return nil
}
