package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/txus/jjigae/pkg/prestudy"
	"github.com/txus/jjigae/pkg/wordset"
)

// Collection is an opened learner collection. It answers the study queries
// of the prestudy engine and the hanja lookups of the deck builder.
type Collection struct {
	DB *sql.DB
}

// Open opens (creating if needed) the collection at path and migrates it.
func Open(path string) (*Collection, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_busy_timeout=5000&_foreign_keys=on"
	}
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", path, err)
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		conn.SetMaxOpenConns(1)
	}
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate collection %s: %w", path, err)
	}
	return &Collection{DB: conn}, nil
}

// Close closes the underlying database.
func (c *Collection) Close() error { return c.DB.Close() }

// Words implements prestudy.StudyRecord.
func (c *Collection) Words(ctx context.Context, q prestudy.Query) (wordset.Set, error) {
	words, err := WordsForQuery(ctx, c.DB, string(q))
	if err != nil {
		return nil, err
	}
	return wordset.New(words...), nil
}

// LookupHanja returns the first hanja recorded for hangul.
func (c *Collection) LookupHanja(hangul string) (string, bool, error) {
	return LookupHanja(c.DB, hangul)
}

var _ prestudy.StudyRecord = (*Collection)(nil)
