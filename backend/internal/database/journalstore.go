package database

import (
	"github.com/upper/db/v4"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

// JournalStore keeps one row per finished picker session.
type JournalStore struct {
	database   *Database
	collection db.Collection

	api.PickJournal
}

func NewJournalStore(database *Database) *JournalStore {
	return &JournalStore{
		database: database,
	}
}

func (s *JournalStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("pick_journal")
	}
	return s.collection
}

func (s *JournalStore) Record(entry *apitype.JournalEntry) error {
	logger.Trace.Printf("Recording session %s", entry.SessionId)
	_, err := s.getCollection().Insert(toDbJournalEntry(entry))
	return err
}

// Latest returns up to limit entries, newest first.
func (s *JournalStore) Latest(limit int) ([]*apitype.JournalEntry, error) {
	var entries []JournalEntry
	res := s.getCollection().Find().OrderBy("-id")
	if limit > 0 {
		res = res.Limit(limit)
	}
	if err := res.All(&entries); err != nil {
		return nil, err
	}
	return toApiJournalEntries(entries), nil
}

func (s *JournalStore) FindBySession(sessionId string) (*apitype.JournalEntry, error) {
	var entry JournalEntry
	if err := s.getCollection().Find(db.Cond{"session_id": sessionId}).One(&entry); err != nil {
		return nil, err
	}
	return toApiJournalEntry(&entry), nil
}
