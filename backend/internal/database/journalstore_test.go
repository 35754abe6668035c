package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"vincit.fi/image-picker/api/apitype"
)

func initJournalStoreTest(t *testing.T) *JournalStore {
	database, err := NewDatabase(filepath.Join(t.TempDir(), "journal.db"))
	require.Nil(t, err)
	_, err = database.Migrate()
	require.Nil(t, err)
	t.Cleanup(database.Close)
	return NewJournalStore(database)
}

func TestJournalStore_Record(t *testing.T) {
	a := require.New(t)
	sut := initJournalStoreTest(t)

	reference := apitype.NewFileReference("/tmp/photo.jpg")
	event := apitype.NewReadyEvent(3, apitype.EncodingJPEG)
	a.Nil(sut.Record(apitype.NewJournalEntry("session-1", reference, apitype.HandleMode, event, 1024)))

	entry, err := sut.FindBySession("session-1")
	a.Nil(err)
	a.Equal("session-1", entry.SessionId)
	a.Equal(reference.URI(), entry.Reference)
	a.Equal(apitype.HandleMode, entry.Mode)
	a.Equal(apitype.PickerReady, entry.Status)
	a.Equal(apitype.Handle(3), entry.Handle)
	a.Equal(apitype.EncodingJPEG, entry.Encoding)
	a.Equal(int64(1024), entry.ByteSize)
	a.False(entry.Timestamp.IsZero())
}

func TestJournalStore_Failed(t *testing.T) {
	a := require.New(t)
	sut := initJournalStoreTest(t)

	event := apitype.NewFailedEvent(apitype.DecodeFailed)
	a.Nil(sut.Record(apitype.NewJournalEntry("session-f", apitype.NewFileReference("/tmp/x.txt"), apitype.DataMode, event, 0)))

	entry, err := sut.FindBySession("session-f")
	a.Nil(err)
	a.Equal(apitype.PickerFailed, entry.Status)
	a.Equal(apitype.DecodeFailed, entry.Failure)
	a.Equal(apitype.NoHandle, entry.Handle)
}

func TestJournalStore_Latest(t *testing.T) {
	a := require.New(t)
	sut := initJournalStoreTest(t)

	for i := 0; i < 5; i++ {
		event := apitype.NewCanceledEvent()
		a.Nil(sut.Record(apitype.NewJournalEntry(fmt.Sprintf("session-%d", i), nil, apitype.HandleMode, event, 0)))
	}

	t.Run("Newest first", func(t *testing.T) {
		entries, err := sut.Latest(2)
		a.Nil(err)
		a.Equal(2, len(entries))
		a.Equal("session-4", entries[0].SessionId)
		a.Equal("session-3", entries[1].SessionId)
	})
	t.Run("No limit", func(t *testing.T) {
		entries, err := sut.Latest(0)
		a.Nil(err)
		a.Equal(5, len(entries))
	})
}
