package article

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
)

// newTestEngine creates an engine over an in-memory database and a fresh
// temporary content tree, with a deterministic clock.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Article{}, &models.User{})
	require.NoError(t, err, "failed to migrate test database")

	e := New(db, t.TempDir())

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return e
}

// doc composes a raw article document from front matter lines and a body.
func doc(fmLines []string, body string) []byte {
	out := "---\n"
	for _, line := range fmLines {
		out += line + "\n"
	}
	out += "---\n" + body

	return []byte(out)
}

// saveArticle persists a minimal published article under the given slug.
func saveArticle(t *testing.T, e *Engine, slug, title, date string, tags []string) {
	t.Helper()

	fmLines := []string{
		"title: " + title,
		"date: " + date,
		"published: true",
	}
	if len(tags) > 0 {
		line := "tags: ["
		for i, tag := range tags {
			if i > 0 {
				line += ", "
			}
			line += tag
		}
		line += "]"
		fmLines = append(fmLines, line)
	}

	err := e.SaveContent(slug, "", doc(fmLines, "body of "+slug+"\n"), 1)
	require.NoError(t, err, "failed to save article %s", slug)
}

// writeTree writes a raw document straight into the content tree, without
// touching the index. This is how unindexed drafts come to exist.
func writeTree(t *testing.T, e *Engine, slug string, raw []byte) {
	t.Helper()

	dir := filepath.Join(e.BasePath(), slug)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ContentFileName), raw, 0o640))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func seedMany(t *testing.T, e *Engine, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		saveArticle(t, e,
			fmt.Sprintf("post-%02d", i),
			fmt.Sprintf("Post %02d", i),
			fmt.Sprintf("2024-01-%02d", i%27+1),
			nil,
		)
	}
}
