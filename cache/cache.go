// Package cache keeps exported expressions in a sqlite database so repeated
// runs over the same sources do not have to compile and rasterize again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `CREATE TABLE IF NOT EXISTS results (
	key     TEXT PRIMARY KEY,
	format  TEXT NOT NULL,
	data    BLOB NOT NULL,
	created INTEGER NOT NULL
)`

// Store is a compile result cache.
// NOTE: single connection, not to be used concurrently.
type Store struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// Open opens (creating when necessary) cache database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare cache schema: %w", err)
	}
	log.Debug("Cache opened", zap.String("path", path))
	return &Store{conn: conn, log: log}, nil
}

// Key hashes everything which affects produced bytes into a cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		io.WriteString(h, p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns cached data for key, ok is false on a miss.
func (s *Store) Get(key string) (data []byte, ok bool, err error) {
	err = sqlitex.Execute(s.conn, `SELECT data FROM results WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data, err = io.ReadAll(stmt.ColumnReader(0))
				ok = err == nil
				return err
			}})
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	if ok {
		s.log.Debug("Cache hit", zap.String("key", key), zap.Int("size", len(data)))
	}
	return data, ok, nil
}

// Put stores data under key replacing previous entry if any.
func (s *Store) Put(key, format string, data []byte) error {
	err := sqlitex.Execute(s.conn, `INSERT OR REPLACE INTO results (key, format, data, created) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{key, format, data, time.Now().Unix()}})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Len returns number of cached entries, optionally limited to a single format.
func (s *Store) Len(format string) (int, error) {
	var (
		n    int
		q    = `SELECT count(*) FROM results`
		args []any
	)
	if format != "" {
		q += ` WHERE format = ?`
		args = append(args, format)
	}
	err := sqlitex.Execute(s.conn, q, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = int(stmt.ColumnInt64(0))
			return nil
		}})
	if err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}

// Entry is a single cached result.
type Entry struct {
	Key     string
	Format  string
	Data    []byte
	Created time.Time
}

// Entries calls fn for every cached result, oldest first.
func (s *Store) Entries(fn func(Entry) error) error {
	err := sqlitex.Execute(s.conn, `SELECT key, format, data, created FROM results ORDER BY created, key`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data, err := io.ReadAll(stmt.ColumnReader(2))
				if err != nil {
					return err
				}
				return fn(Entry{
					Key:     stmt.ColumnText(0),
					Format:  stmt.ColumnText(1),
					Data:    data,
					Created: time.Unix(stmt.ColumnInt64(3), 0),
				})
			}})
	if err != nil {
		return fmt.Errorf("list cache entries: %w", err)
	}
	return nil
}

// Close releases database.
func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
