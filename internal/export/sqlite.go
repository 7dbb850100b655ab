package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/patrickprogramme/ytaudience/internal/overlap"
)

// SQLiteSink écrit un rapport d'analyse dans une base SQLite. Le contenu
// précédent des tables est remplacé à chaque WriteReport.
type SQLiteSink struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	author_id      TEXT PRIMARY KEY,
	username       TEXT NOT NULL,
	total_comments INTEGER NOT NULL,
	total_likes    INTEGER NOT NULL,
	channel_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS user_channels (
	author_id TEXT NOT NULL,
	channel   TEXT NOT NULL,
	comments  INTEGER NOT NULL,
	likes     INTEGER NOT NULL,
	PRIMARY KEY (author_id, channel)
);
CREATE TABLE IF NOT EXISTS comments (
	comment_id   TEXT,
	author_id    TEXT NOT NULL,
	video_id     TEXT,
	channel      TEXT NOT NULL,
	text         TEXT,
	like_count   INTEGER NOT NULL,
	reply_count  INTEGER NOT NULL,
	published_at TEXT
);
CREATE TABLE IF NOT EXISTS jaccard (
	channel_1    TEXT NOT NULL,
	channel_2    TEXT NOT NULL,
	users_ch1    INTEGER NOT NULL,
	users_ch2    INTEGER NOT NULL,
	intersection INTEGER NOT NULL,
	union_size   INTEGER NOT NULL,
	ch1_only     INTEGER NOT NULL,
	ch2_only     INTEGER NOT NULL,
	jaccard      REAL NOT NULL,
	PRIMARY KEY (channel_1, channel_2)
);
CREATE INDEX IF NOT EXISTS comments_author ON comments(author_id);
`

// OpenSQLite ouvre (ou crée) la base path et initialise le schéma.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite : un seul writer

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLiteSink{db: db, path: path}, nil
}

func (s *SQLiteSink) Path() string {
	return s.path
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// WriteReport remplace le contenu des tables par rep, dans une transaction.
func (s *SQLiteSink) WriteReport(ctx context.Context, rep *overlap.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"users", "user_channels", "comments", "jaccard"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: purge %s: %w", table, err)
		}
	}

	insUser, err := tx.PrepareContext(ctx,
		`INSERT INTO users (author_id, username, total_comments, total_likes, channel_count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare users: %w", err)
	}
	defer insUser.Close()

	insChan, err := tx.PrepareContext(ctx,
		`INSERT INTO user_channels (author_id, channel, comments, likes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare user_channels: %w", err)
	}
	defer insChan.Close()

	insComment, err := tx.PrepareContext(ctx,
		`INSERT INTO comments (comment_id, author_id, video_id, channel, text, like_count, reply_count, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare comments: %w", err)
	}
	defer insComment.Close()

	for _, id := range rep.Users.IDs() {
		p := rep.Users[id]
		if _, err = insUser.ExecContext(ctx, id, p.DisplayName(), p.TotalComments, p.TotalLikes, p.ChannelCount()); err != nil {
			return fmt.Errorf("sqlite: insert user %s: %w", id, err)
		}
		for _, t := range p.PerChannel() {
			if _, err = insChan.ExecContext(ctx, id, string(t.Channel), t.Comments, t.Likes); err != nil {
				return fmt.Errorf("sqlite: insert user_channel %s: %w", id, err)
			}
		}
		for _, c := range p.Comments {
			if _, err = insComment.ExecContext(ctx, c.CommentID, id, c.VideoID, string(c.Channel),
				c.Text, c.LikeCount, c.ReplyCount, c.PublishedAt); err != nil {
				return fmt.Errorf("sqlite: insert comment %s: %w", c.CommentID, err)
			}
		}
	}

	for _, r := range rep.Jaccard {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO jaccard (channel_1, channel_2, users_ch1, users_ch2, intersection, union_size, ch1_only, ch2_only, jaccard)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(r.Channel1), string(r.Channel2), r.UsersCh1, r.UsersCh2,
			r.Intersection, r.Union, r.Ch1Only, r.Ch2Only, r.Index,
		); err != nil {
			return fmt.Errorf("sqlite: insert jaccard %s: %w", PairName(r), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Count retourne le nombre de lignes d'une table du schéma.
func (s *SQLiteSink) Count(ctx context.Context, table string) (int, error) {
	switch table {
	case "users", "user_channels", "comments", "jaccard":
	default:
		return 0, fmt.Errorf("sqlite: table inconnue %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", table, err)
	}
	return n, nil
}
