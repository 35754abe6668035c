package apitype

import (
	"fmt"
	"strings"
)

// EventTypeImagePicker is the type tag of every event the picker posts.
const EventTypeImagePicker int32 = 46

type EventKind int32

const (
	PickerCanceled EventKind = 0
	PickerReady    EventKind = 1
	PickerFailed   EventKind = 2
)

func (s EventKind) String() string {
	switch s {
	case PickerCanceled:
		return "CANCELED"
	case PickerReady:
		return "READY"
	case PickerFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

type Encoding int32

const (
	EncodingUnknown Encoding = -1
	EncodingJPEG    Encoding = 0
	EncodingPNG     Encoding = 1
)

// EncodingFromMimeType maps a decoder mime type to the picker encoding.
func EncodingFromMimeType(mimeType string) Encoding {
	switch {
	case strings.EqualFold(mimeType, "image/jpeg"):
		return EncodingJPEG
	case strings.EqualFold(mimeType, "image/png"):
		return EncodingPNG
	}
	return EncodingUnknown
}

func (s Encoding) String() string {
	switch s {
	case EncodingJPEG:
		return "JPEG"
	case EncodingPNG:
		return "PNG"
	}
	return "UNKNOWN"
}

type FailureReason int32

const (
	NoFailure FailureReason = iota
	MissingReference
	DecodeFailed
	StreamOpenFailed
	StreamReadFailed
	HandleTableFailed
)

func (s FailureReason) String() string {
	switch s {
	case NoFailure:
		return "NONE"
	case MissingReference:
		return "MISSING_REFERENCE"
	case DecodeFailed:
		return "DECODE_FAILED"
	case StreamOpenFailed:
		return "STREAM_OPEN_FAILED"
	case StreamReadFailed:
		return "STREAM_READ_FAILED"
	case HandleTableFailed:
		return "HANDLE_TABLE_FAILED"
	}
	return "UNKNOWN"
}

// PickerEvent is the terminal result of one picker session. Values are
// immutable; construct them with the New*Event functions.
type PickerEvent struct {
	kind     EventKind
	handle   Handle
	encoding Encoding
	failure  FailureReason
}

func NewReadyEvent(handle Handle, encoding Encoding) *PickerEvent {
	return &PickerEvent{
		kind:     PickerReady,
		handle:   handle,
		encoding: encoding,
		failure:  NoFailure,
	}
}

func NewCanceledEvent() *PickerEvent {
	return &PickerEvent{
		kind:     PickerCanceled,
		handle:   NoHandle,
		encoding: EncodingUnknown,
		failure:  NoFailure,
	}
}

func NewFailedEvent(reason FailureReason) *PickerEvent {
	return &PickerEvent{
		kind:     PickerFailed,
		handle:   NoHandle,
		encoding: EncodingUnknown,
		failure:  reason,
	}
}

func (s *PickerEvent) Kind() EventKind {
	return s.kind
}

func (s *PickerEvent) Handle() Handle {
	return s.handle
}

func (s *PickerEvent) Encoding() Encoding {
	return s.encoding
}

func (s *PickerEvent) Failure() FailureReason {
	return s.failure
}

// Tuple returns the fixed shape wire form consumed by the runtime:
// Ready has four fields, Canceled three, Failed four with the reason
// code in place of the encoding.
func (s *PickerEvent) Tuple() []int32 {
	switch s.kind {
	case PickerReady:
		return []int32{EventTypeImagePicker, int32(PickerReady), s.handle.AsInt(), int32(s.encoding)}
	case PickerFailed:
		return []int32{EventTypeImagePicker, int32(PickerFailed), NoHandle.AsInt(), int32(s.failure)}
	default:
		return []int32{EventTypeImagePicker, int32(PickerCanceled), NoHandle.AsInt()}
	}
}

// EventFromTuple parses a wire tuple produced by Tuple.
func EventFromTuple(tuple []int32) (*PickerEvent, error) {
	if len(tuple) < 3 || tuple[0] != EventTypeImagePicker {
		return nil, fmt.Errorf("not an image picker event: %v", tuple)
	}
	switch EventKind(tuple[1]) {
	case PickerCanceled:
		return NewCanceledEvent(), nil
	case PickerReady:
		if len(tuple) != 4 {
			return nil, fmt.Errorf("ready event needs 4 fields, got %d", len(tuple))
		}
		return NewReadyEvent(Handle(tuple[2]), Encoding(tuple[3])), nil
	case PickerFailed:
		if len(tuple) != 4 {
			return nil, fmt.Errorf("failed event needs 4 fields, got %d", len(tuple))
		}
		return NewFailedEvent(FailureReason(tuple[3])), nil
	}
	return nil, fmt.Errorf("unknown picker status %d", tuple[1])
}

func (s *PickerEvent) String() string {
	if s == nil {
		return "PickerEvent<nil>"
	}
	switch s.kind {
	case PickerReady:
		return fmt.Sprintf("PickerEvent{%s, %s, %s}", s.kind, s.handle, s.encoding)
	case PickerFailed:
		return fmt.Sprintf("PickerEvent{%s, %s}", s.kind, s.failure)
	default:
		return fmt.Sprintf("PickerEvent{%s}", s.kind)
	}
}
