package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/gallery"
)

// Preferences are the browser settings that survive restarts.
type Preferences struct {
	PageSize   int
	LastStyle  string
	LastSearch string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS images (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  styles TEXT NOT NULL,
  src TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
  slug TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  published_at TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  body_html TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  image TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO preferences (key, value) VALUES ('__write_check', '1')`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SaveImages replaces the cached collection. Collection order is kept in the
// position column.
func (r *Repository) SaveImages(ctx context.Context, images []gallery.Image) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("clear images: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO images (id, position, title, styles, src, description, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, img := range images {
		styles, err := json.Marshal(img.Styles)
		if err != nil {
			return fmt.Errorf("encode styles for image %s: %w", img.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, img.ID, i, img.Title, string(styles), img.Src, img.Description, now); err != nil {
			return fmt.Errorf("save image %s: %w", img.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListImages(ctx context.Context) ([]gallery.Image, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, styles, src, description
FROM images
ORDER BY position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []gallery.Image
	for rows.Next() {
		var img gallery.Image
		var styles string
		if err := rows.Scan(&img.ID, &img.Title, &styles, &img.Src, &img.Description); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		if err := json.Unmarshal([]byte(styles), &img.Styles); err != nil {
			return nil, fmt.Errorf("decode styles for image %s: %w", img.ID, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return images, nil
}

// postDateLayout is fixed width so published_at sorts chronologically as
// text. RFC3339Nano trims trailing zeros and does not.
const postDateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SavePosts replaces the cached posts. Posts missing from the new set are
// dropped.
func (r *Repository) SavePosts(ctx context.Context, posts []blog.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO posts (slug, title, published_at, author, summary, body_html, tags, image)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
  title=excluded.title,
  published_at=excluded.published_at,
  author=excluded.author,
  summary=excluded.summary,
  body_html=excluded.body_html,
  tags=excluded.tags,
  image=excluded.image
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	for _, post := range posts {
		tags, err := json.Marshal(post.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for post %s: %w", post.Slug, err)
		}
		_, err = stmt.ExecContext(
			ctx,
			post.Slug,
			post.Title,
			post.Date.UTC().Format(postDateLayout),
			post.Author,
			post.Summary,
			post.BodyHTML,
			string(tags),
			post.Image,
		)
		if err != nil {
			return fmt.Errorf("save post %s: %w", post.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const selectPost = `
SELECT slug, title, published_at, author, summary, body_html, tags, image
FROM posts
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (blog.Post, error) {
	var post blog.Post
	var publishedAt, tags string
	if err := row.Scan(
		&post.Slug,
		&post.Title,
		&publishedAt,
		&post.Author,
		&post.Summary,
		&post.BodyHTML,
		&tags,
		&post.Image,
	); err != nil {
		return blog.Post{}, err
	}

	var err error
	post.Date, err = time.Parse(postDateLayout, publishedAt)
	if err != nil {
		// Caches written before the fixed-width layout hold RFC3339Nano.
		post.Date, err = time.Parse(time.RFC3339Nano, publishedAt)
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("parse post published_at %q: %w", publishedAt, err)
	}
	if err := json.Unmarshal([]byte(tags), &post.Tags); err != nil {
		return blog.Post{}, fmt.Errorf("decode tags for post %s: %w", post.Slug, err)
	}
	return post, nil
}

func (r *Repository) ListPosts(ctx context.Context, limit int) ([]blog.Post, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, selectPost+`
ORDER BY published_at DESC, slug ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]blog.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return posts, nil
}

// GetPost looks a post up by slug regardless of its age. ok is false when no
// cached post has that slug.
func (r *Repository) GetPost(ctx context.Context, slug string) (blog.Post, bool, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, selectPost+`WHERE slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, false, nil
	}
	if err != nil {
		return blog.Post{}, false, fmt.Errorf("get post %s: %w", slug, err)
	}
	return post, true, nil
}

func (r *Repository) LoadPreferences(ctx context.Context) (Preferences, error) {
	prefs := Preferences{LastStyle: gallery.AllStyles}
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return prefs, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return prefs, fmt.Errorf("scan preference: %w", err)
		}
		switch key {
		case "page_size":
			var n int
			if _, err := fmt.Sscanf(value, "%d", &n); err == nil && n > 0 {
				prefs.PageSize = n
			}
		case "last_style":
			if value != "" {
				prefs.LastStyle = value
			}
		case "last_search":
			prefs.LastSearch = value
		}
	}
	if err := rows.Err(); err != nil {
		return prefs, fmt.Errorf("rows iteration: %w", err)
	}
	return prefs, nil
}

func (r *Repository) SavePreferences(ctx context.Context, prefs Preferences) error {
	if prefs.PageSize < 0 {
		return errors.New("page size must not be negative")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		"page_size":   fmt.Sprintf("%d", prefs.PageSize),
		"last_style":  prefs.LastStyle,
		"last_search": prefs.LastSearch,
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value); err != nil {
			return fmt.Errorf("save preference %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
