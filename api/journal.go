package api

import "vincit.fi/image-picker/api/apitype"

type PickJournal interface {
	Record(entry *apitype.JournalEntry) error
	Latest(limit int) ([]*apitype.JournalEntry, error)
}
