package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS read_posts (
  short_id TEXT PRIMARY KEY,
  read_at TEXT NOT NULL
);
`,
}

// Repository is the durable read/unread store. A post is read when its short
// id has a row in read_posts.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Serializes the listing and persistence workers on one connection.
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		return fmt.Errorf("apply pragma journal_mode: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		return fmt.Errorf("apply pragma busy_timeout: %w", err)
	}
	return r.migrate(ctx)
}

func (r *Repository) migrate(ctx context.Context) error {
	version, err := r.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func (r *Repository) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := r.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (r *Repository) MarkRead(ctx context.Context, shortID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO read_posts (short_id, read_at)
VALUES (?, ?)
ON CONFLICT(short_id) DO NOTHING
`, shortID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("mark post %s read: %w", shortID, err)
	}
	return nil
}

func (r *Repository) MarkUnread(ctx context.Context, shortID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM read_posts WHERE short_id = ?`, shortID); err != nil {
		return fmt.Errorf("mark post %s unread: %w", shortID, err)
	}
	return nil
}

func (r *Repository) IsRead(ctx context.Context, shortID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM read_posts WHERE short_id = ?`, shortID).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query read state of post %s: %w", shortID, err)
	}
	return true, nil
}

// FlagRead sets IsRead on every post that has a stored read record. Posts
// without one are left untouched.
func (r *Repository) FlagRead(ctx context.Context, posts []lobsters.Post) error {
	if len(posts) == 0 {
		return nil
	}
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		args = append(args, p.ShortID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(posts)), ",")

	rows, err := r.db.QueryContext(ctx, `SELECT short_id FROM read_posts WHERE short_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("query read posts: %w", err)
	}
	defer rows.Close()

	read := make(map[string]struct{}, len(posts))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan read post: %w", err)
		}
		read[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate read posts: %w", err)
	}

	for i := range posts {
		if _, ok := read[posts[i].ShortID]; ok {
			posts[i].IsRead = true
		}
	}
	return nil
}

// CountRead reports how many posts are stored as read.
func (r *Repository) CountRead(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM read_posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count read posts: %w", err)
	}
	return n, nil
}
