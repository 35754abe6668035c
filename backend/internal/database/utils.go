package database

import "vincit.fi/image-picker/api/apitype"

func toDbJournalEntry(entry *apitype.JournalEntry) *JournalEntry {
	return &JournalEntry{
		SessionId:   entry.SessionId,
		Reference:   entry.Reference,
		Mode:        int32(entry.Mode),
		Status:      int32(entry.Status),
		Handle:      entry.Handle.AsInt(),
		Encoding:    int32(entry.Encoding),
		Failure:     int32(entry.Failure),
		ByteSize:    entry.ByteSize,
		CreatedTime: entry.Timestamp,
	}
}

func toApiJournalEntry(entry *JournalEntry) *apitype.JournalEntry {
	return &apitype.JournalEntry{
		SessionId: entry.SessionId,
		Reference: entry.Reference,
		Mode:      apitype.ReturnMode(entry.Mode),
		Status:    apitype.EventKind(entry.Status),
		Handle:    apitype.Handle(entry.Handle),
		Encoding:  apitype.Encoding(entry.Encoding),
		Failure:   apitype.FailureReason(entry.Failure),
		ByteSize:  entry.ByteSize,
		Timestamp: entry.CreatedTime,
	}
}

func toApiJournalEntries(entries []JournalEntry) []*apitype.JournalEntry {
	apiEntries := make([]*apitype.JournalEntry, len(entries))
	for i := range entries {
		apiEntries[i] = toApiJournalEntry(&entries[i])
	}
	return apiEntries
}
