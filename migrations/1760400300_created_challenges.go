package migrations

import "github.com/pocketbase/dbx"

func init() {
	Register(func(db dbx.Builder) error {
		// rules holds a JSON array of strings; order is significant.
		_, err := db.NewQuery(`
			CREATE TABLE challenges (
				id                INTEGER PRIMARY KEY AUTOINCREMENT,
				title             TEXT    NOT NULL,
				description       TEXT    NOT NULL,
				short_description TEXT    NOT NULL DEFAULT '',
				category          TEXT    NOT NULL,
				deadline          TEXT    NOT NULL,
				participants      INTEGER NOT NULL DEFAULT 0 CHECK (participants >= 0),
				status            TEXT    NOT NULL DEFAULT '',
				rules             TEXT    NOT NULL DEFAULT '[]',
				prizes            TEXT    NOT NULL DEFAULT '',
				price             TEXT    NOT NULL DEFAULT '0',
				college_id        INTEGER NOT NULL REFERENCES colleges (id),
				approved          INTEGER NOT NULL DEFAULT 0,
				created_at        TEXT    NOT NULL
			);
			CREATE INDEX idx_challenges_approved ON challenges (approved);
		`).Execute()
		return err
	}, func(db dbx.Builder) error {
		_, err := db.NewQuery(`DROP TABLE IF EXISTS challenges`).Execute()
		return err
	})
}
