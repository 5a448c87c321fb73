package migrations

import "github.com/pocketbase/dbx"

func init() {
	Register(func(db dbx.Builder) error {
		_, err := db.NewQuery(`
			CREATE TABLE users (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				email         TEXT    NOT NULL,
				username      TEXT    NOT NULL,
				password_hash TEXT    NOT NULL,
				college_id    INTEGER NULL REFERENCES colleges (id),
				created_at    TEXT    NOT NULL
			);
			CREATE UNIQUE INDEX idx_users_email ON users (email);
			CREATE UNIQUE INDEX idx_users_username ON users (username);
		`).Execute()
		return err
	}, func(db dbx.Builder) error {
		_, err := db.NewQuery(`DROP TABLE IF EXISTS users`).Execute()
		return err
	})
}
