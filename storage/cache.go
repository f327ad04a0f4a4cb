// Database stuff.
package storage

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
)

const create = (`
    pragma journal_mode = off;
    pragma synchronous = off;

    create table if not exists neighbourhoods (
        uri   text primary key not NULL,
        lines text not NULL
    );
`)

// Cache stores fetched entity neighbourhoods, keyed by entity URI.
// Neighbourhood fetches dominate reranking latency; entities recur across
// questions, so a hit skips two SPARQL round trips.
type Cache struct {
	db  *sql.DB
	get *sql.Stmt
	put *sql.Stmt
}

// Open a cache at path, creating the schema if needed. Use ":memory:"
// for a throwaway cache.
func Open(path string) (c *Cache, err error) {
	var db *sql.DB
	defer func() {
		if db != nil && err != nil {
			db.Close()
		}
	}()

	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	if _, err = db.Exec(create); err != nil {
		return
	}

	get, err := db.Prepare(`select lines from neighbourhoods where uri = ?`)
	if err != nil {
		return
	}
	put, err := db.Prepare(
		`insert or replace into neighbourhoods (uri, lines) values (?, ?)`)
	if err != nil {
		return
	}

	c = &Cache{db: db, get: get, put: put}
	return
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached neighbourhood for uri, if any. An empty cached
// neighbourhood is a valid hit.
func (c *Cache) Get(uri string) (lines []string, ok bool, err error) {
	var raw string
	err = c.get.QueryRow(uri).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err = json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

// Put stores the neighbourhood for uri, replacing any previous entry.
func (c *Cache) Put(uri string, lines []string) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = c.put.Exec(uri, string(raw))
	return err
}
