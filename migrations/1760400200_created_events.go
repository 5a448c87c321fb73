package migrations

import "github.com/pocketbase/dbx"

func init() {
	Register(func(db dbx.Builder) error {
		_, err := db.NewQuery(`
			CREATE TABLE events (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				title        TEXT    NOT NULL,
				description  TEXT    NOT NULL,
				organizer    TEXT    NOT NULL,
				date         TEXT    NOT NULL,
				location     TEXT    NOT NULL,
				price        TEXT    NOT NULL DEFAULT '0',
				image        TEXT    NOT NULL DEFAULT '',
				category     TEXT    NOT NULL,
				participants INTEGER NOT NULL DEFAULT 0 CHECK (participants >= 0),
				college_id   INTEGER NOT NULL REFERENCES colleges (id),
				approved     INTEGER NOT NULL DEFAULT 0,
				created_at   TEXT    NOT NULL
			);
			CREATE INDEX idx_events_college ON events (college_id, approved);
		`).Execute()
		return err
	}, func(db dbx.Builder) error {
		_, err := db.NewQuery(`DROP TABLE IF EXISTS events`).Execute()
		return err
	})
}
