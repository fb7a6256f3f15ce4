package practice

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens (creating if needed) the SQLite database at
// filename, with foreign keys enforced and a busy timeout so concurrent
// handlers queue instead of failing.
func OpenDatabase(filename string) (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+filename+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
}
