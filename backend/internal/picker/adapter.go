package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/imagereader"
	"vincit.fi/image-picker/common/logger"
)

var (
	ErrPickerBusy = errors.New("image picker session is already running")
	ErrStreamOpen = errors.New("cannot open image stream")
	ErrStreamRead = errors.New("cannot read image stream")
)

const readChunkSize int64 = 32 * 1024

type State int

const (
	Idle State = iota
	AwaitingResult
	// Processing is entered when the result arrives and lasts until the
	// session's event has been posted.
	Processing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingResult:
		return "AwaitingResult"
	case Processing:
		return "Processing"
	}
	return "Unknown"
}

type Config struct {
	Mode apitype.ReturnMode
	// SilentFailures suppresses the Failed event; failures are only logged.
	SilentFailures bool
}

type Dependencies struct {
	Host     api.PickerHost
	Resolver api.ContentResolver
	Reader   api.ImageReader
	Table    api.HandleTable
	Registry api.DataObjectRegistry
	Sink     api.EventSink
	// Journal is optional.
	Journal api.PickJournal
}

// pickError carries the reason reported to the runtime with the cause.
type pickError struct {
	reason apitype.FailureReason
	err    error
}

func (s *pickError) Error() string {
	return fmt.Sprintf("%s: %s", s.reason, s.err)
}

func (s *pickError) Unwrap() error {
	return s.err
}

// Adapter runs picker sessions: it asks the host for an image, turns the
// delivered reference into a table resource and posts the one terminal
// event of the session.
type Adapter struct {
	config    Config
	deps      Dependencies
	state     State
	sessionId string
	mux       sync.Mutex

	api.Picker
}

func NewAdapter(config Config, deps Dependencies) *Adapter {
	logger.Debug.Printf("Initializing image picker in %s mode", config.Mode)
	return &Adapter{
		config: config,
		deps:   deps,
		state:  Idle,
	}
}

func (s *Adapter) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

func (s *Adapter) Mode() apitype.ReturnMode {
	return s.config.Mode
}

// LaunchPicker asks the host to present the selection surface. The result
// arrives later through Deliver.
func (s *Adapter) LaunchPicker(ctx context.Context) error {
	s.mux.Lock()
	if s.state != Idle {
		s.mux.Unlock()
		return ErrPickerBusy
	}
	sessionId := newSessionId()
	s.state = AwaitingResult
	s.sessionId = sessionId
	s.mux.Unlock()

	logger.Info.Printf("Launching image picker '%s' for session %s", s.deps.Host.Name(), sessionId)
	if err := s.deps.Host.Present(ctx, apitype.NewImagePickRequest(sessionId), s); err != nil {
		s.mux.Lock()
		if s.sessionId == sessionId {
			s.state = Idle
			s.sessionId = ""
		}
		s.mux.Unlock()
		return fmt.Errorf("could not present image picker: %w", err)
	}
	return nil
}

// Deliver handles the host's result message. Results for which no session
// is waiting are dropped.
func (s *Adapter) Deliver(result *apitype.PickResult) {
	sessionId, awaiting := s.finishSession()
	if !awaiting {
		logger.Warn.Printf("Dropping picker result, no session is waiting for it")
		return
	}
	defer s.completeSession()

	switch {
	case result == nil:
		s.onSelected(sessionId, nil)
	case result.IsCanceled():
		s.onCanceled(sessionId)
	case result.Err() != nil:
		logger.Error.Printf("Image picker failed: %s", result.Err())
		s.fail(sessionId, nil, &pickError{reason: apitype.MissingReference, err: result.Err()})
	default:
		s.onSelected(sessionId, result.Reference())
	}
}

// OnPictureSelected completes the current session with the picked image.
func (s *Adapter) OnPictureSelected(reference *apitype.ContentReference) {
	sessionId, awaiting := s.finishSession()
	if awaiting {
		defer s.completeSession()
	}
	s.onSelected(sessionId, reference)
}

// OnPickCanceled completes the current session with a Canceled event.
func (s *Adapter) OnPickCanceled() {
	sessionId, awaiting := s.finishSession()
	if awaiting {
		defer s.completeSession()
	}
	s.onCanceled(sessionId)
}

// ReadAllBytes reads at most maxLength bytes of the referenced content.
func (s *Adapter) ReadAllBytes(reference *apitype.ContentReference, maxLength int64) ([]byte, error) {
	stream, err := s.deps.Resolver.Open(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamOpen, err)
	}
	defer stream.Close()

	if maxLength < 0 {
		maxLength = 0
	}
	buffer := bytes.NewBuffer(make([]byte, 0, min(maxLength, readChunkSize)))
	if _, err := io.Copy(buffer, io.LimitReader(stream, maxLength)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamRead, err)
	}
	return buffer.Bytes(), nil
}

// finishSession moves a waiting session to Processing. Without a waiting
// session the result gets a fresh session id of its own.
func (s *Adapter) finishSession() (string, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.state != AwaitingResult {
		return newSessionId(), false
	}
	s.state = Processing
	return s.sessionId, true
}

func (s *Adapter) completeSession() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.state = Idle
	s.sessionId = ""
}

func (s *Adapter) onSelected(sessionId string, reference *apitype.ContentReference) {
	if !reference.IsValid() {
		logger.Error.Printf("Cannot get image, the picker returned no reference")
		s.fail(sessionId, reference, &pickError{reason: apitype.MissingReference, err: errors.New("no content reference")})
		return
	}

	logger.Debug.Printf("Session %s picked %s", sessionId, reference)
	var event *apitype.PickerEvent
	var byteSize int64
	var err *pickError
	if s.config.Mode == apitype.DataMode {
		event, byteSize, err = s.pickData(reference)
	} else {
		event, byteSize, err = s.pickImage(reference)
	}

	if err != nil {
		logger.Error.Printf("Could not pick image %s: %s", reference, err)
		s.fail(sessionId, reference, err)
		return
	}
	s.emit(sessionId, reference, event, byteSize)
}

func (s *Adapter) onCanceled(sessionId string) {
	logger.Debug.Printf("Session %s canceled", sessionId)
	s.emit(sessionId, nil, apitype.NewCanceledEvent(), 0)
}

// pickImage decodes the image downsampled to fit MaxDecodedByteSize and
// stores it behind a new handle.
func (s *Adapter) pickImage(reference *apitype.ContentReference) (*apitype.PickerEvent, int64, *pickError) {
	info, err := s.decodeBounds(reference)
	if err != nil {
		return nil, 0, err
	}

	sampleSize := CalculateSampleSize(info.Size, MaxDecodedByteSize)
	logger.Debug.Printf("Image %s is %s, decoding with sample size %d", reference, info.Size, sampleSize)

	stream, openErr := s.deps.Resolver.Open(reference)
	if openErr != nil {
		return nil, 0, &pickError{reason: apitype.StreamOpenFailed, err: openErr}
	}
	defer stream.Close()

	decoded, _, decodeErr := s.deps.Reader.DecodeSampled(stream, sampleSize)
	if decodeErr != nil {
		return nil, 0, decodeFailure(decodeErr)
	}
	if decoded == nil {
		return nil, 0, &pickError{reason: apitype.DecodeFailed, err: errors.New("cannot decode bitmap")}
	}

	encoding := apitype.EncodingFromMimeType(info.MimeType)
	entry := apitype.NewImageCacheEntry(decoded, encoding, reference)
	handle := s.deps.Table.CreatePlaceholder()
	if err := s.deps.Table.PutImage(handle, entry); err != nil {
		s.deps.Table.Release(handle)
		return nil, 0, &pickError{reason: apitype.HandleTableFailed, err: err}
	}

	return apitype.NewReadyEvent(handle, encoding), int64(entry.ByteSize()), nil
}

// pickData registers the encoded bytes of the image as a data object. The
// read is capped at the size of the image decoded to four bytes per pixel.
func (s *Adapter) pickData(reference *apitype.ContentReference) (*apitype.PickerEvent, int64, *pickError) {
	stream, openErr := s.deps.Resolver.Open(reference)
	if openErr != nil {
		return nil, 0, &pickError{reason: apitype.StreamOpenFailed, err: openErr}
	}
	decoded, info, decodeErr := s.deps.Reader.DecodeFull(stream)
	_ = stream.Close()
	if decodeErr != nil {
		return nil, 0, decodeFailure(decodeErr)
	}
	if decoded == nil {
		return nil, 0, &pickError{reason: apitype.DecodeFailed, err: errors.New("cannot decode bitmap")}
	}

	maxLength := apitype.SizeFromRectangle(decoded.Bounds()).ByteSize(dataBytesPerPixel)
	data, err := s.ReadAllBytes(reference, maxLength)
	if err != nil {
		if errors.Is(err, ErrStreamOpen) {
			return nil, 0, &pickError{reason: apitype.StreamOpenFailed, err: err}
		}
		return nil, 0, &pickError{reason: apitype.StreamReadFailed, err: err}
	}

	handle, err := s.deps.Registry.CreateDataObject(data)
	if err != nil {
		return nil, 0, &pickError{reason: apitype.HandleTableFailed, err: err}
	}

	return apitype.NewReadyEvent(handle, apitype.EncodingFromMimeType(info.MimeType)), int64(len(data)), nil
}

func (s *Adapter) decodeBounds(reference *apitype.ContentReference) (*api.ImageInfo, *pickError) {
	stream, err := s.deps.Resolver.Open(reference)
	if err != nil {
		return nil, &pickError{reason: apitype.StreamOpenFailed, err: err}
	}
	defer stream.Close()

	info, err := s.deps.Reader.DecodeBounds(stream)
	if err != nil {
		return nil, &pickError{reason: apitype.DecodeFailed, err: err}
	}
	if info.Size.IsEmpty() {
		return nil, &pickError{reason: apitype.DecodeFailed, err: fmt.Errorf("image has no pixels: %s", info.Size)}
	}
	return info, nil
}

// decodeFailure tells a stream that broke while decoding apart from data
// that could not be decoded.
func decodeFailure(err error) *pickError {
	if errors.Is(err, imagereader.ErrRead) {
		return &pickError{reason: apitype.StreamReadFailed, err: err}
	}
	return &pickError{reason: apitype.DecodeFailed, err: err}
}

func (s *Adapter) emit(sessionId string, reference *apitype.ContentReference, event *apitype.PickerEvent, byteSize int64) {
	logger.Info.Printf("Session %s finished with %s", sessionId, event)
	s.record(sessionId, reference, event, byteSize)
	s.deps.Sink.PostEvent(event)
}

func (s *Adapter) fail(sessionId string, reference *apitype.ContentReference, err *pickError) {
	event := apitype.NewFailedEvent(err.reason)
	s.record(sessionId, reference, event, 0)
	if s.config.SilentFailures {
		logger.Warn.Printf("Session %s failed with %s, no event posted", sessionId, err.reason)
	} else {
		logger.Info.Printf("Session %s finished with %s", sessionId, event)
		s.deps.Sink.PostEvent(event)
	}
}

func (s *Adapter) record(sessionId string, reference *apitype.ContentReference, event *apitype.PickerEvent, byteSize int64) {
	if s.deps.Journal == nil {
		return
	}
	entry := apitype.NewJournalEntry(sessionId, reference, s.config.Mode, event, byteSize)
	if err := s.deps.Journal.Record(entry); err != nil {
		logger.Warn.Printf("Could not record session %s: %s", sessionId, err)
	}
}

func newSessionId() string {
	if id, err := uuid.NewRandom(); err != nil {
		logger.Warn.Printf("Could not create session id: %s", err)
		return "session-unknown"
	} else {
		return id.String()
	}
}
