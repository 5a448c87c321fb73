package migrations

import "github.com/pocketbase/dbx"

func init() {
	Register(func(db dbx.Builder) error {
		_, err := db.NewQuery(`
			CREATE TABLE colleges (
				id               INTEGER PRIMARY KEY AUTOINCREMENT,
				name             TEXT    NOT NULL,
				short_name       TEXT    NOT NULL,
				location         TEXT    NOT NULL,
				state            TEXT    NOT NULL,
				website          TEXT    NOT NULL DEFAULT '',
				email            TEXT    NOT NULL DEFAULT '',
				phone            TEXT    NOT NULL DEFAULT '',
				logo_url         TEXT    NOT NULL DEFAULT '',
				description      TEXT    NOT NULL DEFAULT '',
				established_year INTEGER NULL,
				college_type     TEXT    NOT NULL DEFAULT '',
				affiliation      TEXT    NOT NULL DEFAULT '',
				approved         INTEGER NOT NULL DEFAULT 0,
				created_at       TEXT    NOT NULL
			);
			CREATE INDEX idx_colleges_approved ON colleges (approved);
		`).Execute()
		return err
	}, func(db dbx.Builder) error {
		_, err := db.NewQuery(`DROP TABLE IF EXISTS colleges`).Execute()
		return err
	})
}
