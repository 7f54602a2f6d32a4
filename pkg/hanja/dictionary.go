// Package hanja loads hanja dictionaries, the Sino-Korean spellings of Hangul
// words, and imports them into a collection.
package hanja

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"
)

// Entry is one reading of a hanja word.
type Entry struct {
	Hanja  string `json:"hanja"`
	Hangul string `json:"hangul"`
}

// LoadFile reads a dictionary. Files ending in .sqlite, .sqlite3 or .db are
// SQLite databases with a hanjas(hanja, hangul) table; anything else is JSON,
// either {"entries": [...]} or a bare array. Entries keep file order and
// incomplete ones are dropped.
func LoadFile(path string) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		entries, err = loadSQLite(path)
	default:
		entries, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	return clean(entries), nil
}

func loadJSON(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Entries []Entry `json:"entries"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Entries) > 0 {
		return wrapper.Entries, nil
	}

	// Reset and try as array [...]
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []Entry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse %s as object or array: %w", path, err)
	}
	return entries, nil
}

func loadSQLite(path string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT hanja, hangul FROM hanjas ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Hanja, &e.Hangul); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func clean(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		e.Hanja = norm.NFC.String(strings.TrimSpace(e.Hanja))
		e.Hangul = norm.NFC.String(strings.TrimSpace(e.Hangul))
		if e.Hanja == "" || e.Hangul == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
