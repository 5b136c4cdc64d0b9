/*
Package project persists editor state across sessions: the set of areas that
were open per ROM image, and the user's editor settings.
*/
package project

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the on-disk project database. Open areas are keyed by the CRC of
// the ROM image they belong to, so several ROMs can share one store.
type Store struct {
	db *sql.DB
}

// NewStore opens, creating if necessary, the project database at file.
func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS rom (crc INTEGER PRIMARY KEY NOT NULL, title STRING)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS open_area (rom_crc INTEGER NOT NULL, area INTEGER NOT NULL, UNIQUE(rom_crc, area), FOREIGN KEY(rom_crc) REFERENCES rom(crc))"); err != nil {
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RememberROM records a ROM image's identity so open areas can be attached
// to it. An upsert rather than INSERT OR REPLACE: replacing the row would
// delete it first and trip the open_area foreign key.
func (s *Store) RememberROM(crc uint32, title string) error {
	_, err := s.db.Exec("INSERT INTO rom (crc, title) VALUES (?, ?) ON CONFLICT(crc) DO UPDATE SET title = excluded.title", crc, title)
	return err
}

// ROMTitle returns the remembered title for a ROM. An unknown ROM, or one
// recorded without a title, yields the empty string.
func (s *Store) ROMTitle(crc uint32) (string, error) {
	var title sql.NullString
	switch err := s.db.QueryRow("SELECT title FROM rom WHERE crc = ?", crc).Scan(&title); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return title.String, nil
	default:
		return "", err
	}
}

// SaveOpenAreas replaces the remembered open area set for one ROM.
func (s *Store) SaveOpenAreas(crc uint32, areas []uint8) error {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO rom (crc, title) VALUES (?, NULL)", crc); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM open_area WHERE rom_crc = ?", crc); err != nil {
		return err
	}

	for _, area := range areas {
		if _, err := s.db.Exec("INSERT OR REPLACE INTO open_area (rom_crc, area) VALUES (?, ?)", crc, area); err != nil {
			return err
		}
	}

	return nil
}

// OpenAreas returns the remembered open area set for one ROM, in ascending
// order. An unknown ROM yields an empty set.
func (s *Store) OpenAreas(crc uint32) ([]uint8, error) {
	rows, err := s.db.Query("SELECT area FROM open_area WHERE rom_crc = ? ORDER BY area", crc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []uint8
	for rows.Next() {
		var area uint8
		if err := rows.Scan(&area); err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}

	return areas, rows.Err()
}
