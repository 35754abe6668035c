package api

import "vincit.fi/image-picker/api/apitype"

// EventSink receives the terminal event of each picker session.
type EventSink interface {
	PostEvent(event *apitype.PickerEvent)
}
