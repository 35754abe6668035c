package apitype

import "time"

type JournalEntry struct {
	SessionId string
	Reference string
	Mode      ReturnMode
	Status    EventKind
	Handle    Handle
	Encoding  Encoding
	Failure   FailureReason
	ByteSize  int64
	Timestamp time.Time
}

func NewJournalEntry(sessionId string, reference *ContentReference, mode ReturnMode, event *PickerEvent, byteSize int64) *JournalEntry {
	return &JournalEntry{
		SessionId: sessionId,
		Reference: reference.URI(),
		Mode:      mode,
		Status:    event.Kind(),
		Handle:    event.Handle(),
		Encoding:  event.Encoding(),
		Failure:   event.Failure(),
		ByteSize:  byteSize,
		Timestamp: time.Now(),
	}
}
