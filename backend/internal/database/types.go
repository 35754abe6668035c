package database

import "time"

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type JournalEntry struct {
	Id          int64     `db:"id,omitempty"`
	SessionId   string    `db:"session_id"`
	Reference   string    `db:"reference"`
	Mode        int32     `db:"mode"`
	Status      int32     `db:"status"`
	Handle      int32     `db:"handle"`
	Encoding    int32     `db:"encoding"`
	Failure     int32     `db:"failure"`
	ByteSize    int64     `db:"byte_size"`
	CreatedTime time.Time `db:"created_timestamp"`
}
