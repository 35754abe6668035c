package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Pick journal",
		query: `
			CREATE TABLE pick_journal (
			    id INTEGER PRIMARY KEY,
			    session_id TEXT,
			    reference TEXT,
			    mode INT,
			    status INT,
			    handle INT,
			    encoding INT,
			    failure INT,
			    byte_size INT,
			    created_timestamp DATETIME
			);

			CREATE INDEX pick_journal_session_idx ON pick_journal (session_id);
		`,
	},
}
