package api

import (
	"context"
	"io"
	"vincit.fi/image-picker/api/apitype"
)

// PickResultReceiver is called by a host exactly once per presented request.
type PickResultReceiver interface {
	Deliver(result *apitype.PickResult)
}

// PickerHost presents a selection surface. Present must not block on the
// user; the outcome is delivered to the receiver later, from any goroutine.
type PickerHost interface {
	Name() string
	Present(ctx context.Context, request *apitype.PickRequest, receiver PickResultReceiver) error
}

type ContentResolver interface {
	Open(reference *apitype.ContentReference) (io.ReadCloser, error)
}

type Picker interface {
	PickResultReceiver
	LaunchPicker(ctx context.Context) error
	OnPictureSelected(reference *apitype.ContentReference)
	OnPickCanceled()
	ReadAllBytes(reference *apitype.ContentReference, maxLength int64) ([]byte, error)
}
