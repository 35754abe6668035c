package host

import (
	"context"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

// StaticHost selects a preconfigured file without user interaction. An
// empty file behaves like the user canceling.
type StaticHost struct {
	file string

	api.PickerHost
}

func NewStaticHost(file string) *StaticHost {
	return &StaticHost{file: file}
}

func (s *StaticHost) Name() string {
	return Static
}

func (s *StaticHost) Present(ctx context.Context, request *apitype.PickRequest, receiver api.PickResultReceiver) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.file == "" {
		logger.Debug.Printf("No file configured for session %s, canceling", request.SessionId)
		deliverAsync(receiver, apitype.NewCanceledResult())
	} else {
		deliverAsync(receiver, apitype.NewSelectedResult(apitype.NewFileReference(s.file)))
	}
	return nil
}
