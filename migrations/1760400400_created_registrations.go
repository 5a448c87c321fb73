package migrations

import "github.com/pocketbase/dbx"

func init() {
	Register(func(db dbx.Builder) error {
		_, err := db.NewQuery(`
			CREATE TABLE registrations (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id        INTEGER NOT NULL REFERENCES users (id),
				event_id       INTEGER NULL REFERENCES events (id),
				challenge_id   INTEGER NULL REFERENCES challenges (id),
				payment_status TEXT    NOT NULL DEFAULT 'pending'
					CHECK (payment_status IN ('pending', 'completed')),
				registered_at  TEXT    NOT NULL,
				CHECK ((event_id IS NULL) <> (challenge_id IS NULL))
			);
			CREATE INDEX idx_registrations_user ON registrations (user_id);
			CREATE INDEX idx_registrations_event ON registrations (event_id);
			CREATE INDEX idx_registrations_challenge ON registrations (challenge_id);
		`).Execute()
		return err
	}, func(db dbx.Builder) error {
		_, err := db.NewQuery(`DROP TABLE IF EXISTS registrations`).Execute()
		return err
	})
}
