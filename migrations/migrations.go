// Package migrations holds the schema history. Each file registers one
// up/down pair from its init function and is applied in file name order.
package migrations

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/pocketbase/dbx"
)

const tableName = "_migrations"

type Migration struct {
	File string
	Up   func(db dbx.Builder) error
	Down func(db dbx.Builder) error
}

var registry = map[string]*Migration{}

// Register adds a migration named after the calling file.
func Register(up, down func(db dbx.Builder) error, optFilename ...string) {
	var file string
	if len(optFilename) > 0 {
		file = optFilename[0]
	} else {
		_, path, _, _ := runtime.Caller(1)
		file = filepath.Base(path)
	}

	if _, exists := registry[file]; exists {
		panic(fmt.Sprintf("migrations: %s registered twice", file))
	}
	registry[file] = &Migration{File: file, Up: up, Down: down}
}

func sorted() []*Migration {
	list := make([]*Migration, 0, len(registry))
	for _, m := range registry {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].File < list[j].File })
	return list
}

func ensureTable(db dbx.Builder) error {
	_, err := db.NewQuery(`CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		file    TEXT PRIMARY KEY NOT NULL,
		applied INTEGER NOT NULL
	)`).Execute()
	return err
}

// Applied returns the files already recorded in the migrations table.
func Applied(db dbx.Builder) ([]string, error) {
	if err := ensureTable(db); err != nil {
		return nil, err
	}
	var files []string
	if err := db.Select("file").From(tableName).OrderBy("file ASC").Column(&files); err != nil {
		return nil, err
	}
	return files, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the files it applied.
func Up(db *dbx.DB) ([]string, error) {
	done, err := Applied(db)
	if err != nil {
		return nil, fmt.Errorf("migrations: read applied: %w", err)
	}
	seen := make(map[string]bool, len(done))
	for _, f := range done {
		seen[f] = true
	}

	var applied []string
	for _, m := range sorted() {
		if seen[m.File] {
			continue
		}
		err := db.Transactional(func(tx *dbx.Tx) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			_, err := tx.Insert(tableName, dbx.Params{
				"file":    m.File,
				"applied": time.Now().Unix(),
			}).Execute()
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migrations: apply %s: %w", m.File, err)
		}
		slog.Info("Applied migration", "file", m.File)
		applied = append(applied, m.File)
	}
	return applied, nil
}

// Down reverts the last steps applied migrations, newest first.
func Down(db *dbx.DB, steps int) ([]string, error) {
	done, err := Applied(db)
	if err != nil {
		return nil, fmt.Errorf("migrations: read applied: %w", err)
	}

	var reverted []string
	for i := len(done) - 1; i >= 0 && len(reverted) < steps; i-- {
		file := done[i]
		m, ok := registry[file]
		if !ok {
			return reverted, fmt.Errorf("migrations: %s is applied but not registered", file)
		}
		err := db.Transactional(func(tx *dbx.Tx) error {
			if m.Down != nil {
				if err := m.Down(tx); err != nil {
					return err
				}
			}
			_, err := tx.Delete(tableName, dbx.HashExp{"file": file}).Execute()
			return err
		})
		if err != nil {
			return reverted, fmt.Errorf("migrations: revert %s: %w", file, err)
		}
		slog.Info("Reverted migration", "file", file)
		reverted = append(reverted, file)
	}
	return reverted, nil
}
