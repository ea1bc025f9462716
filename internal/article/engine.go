// Package article implements the reconciliation engine between the
// filesystem article tree and the metadata index.
//
// The filesystem is the source of truth for content: a base directory holds
// one subdirectory per slug, each with an index.md (YAML front matter plus
// Markdown body). The database is a rebuildable secondary index over it.
// Save writes the filesystem first and the index second; the window between
// the two is an accepted inconsistency recovered by Rebuild, not masked by
// a transaction.
package article

import (
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
	"github.com/chao-eng/mdblog/internal/shortid"
)

// rowModel is the persisted index row.
type rowModel = models.Article

// ContentFileName is the article document inside each slug directory.
const ContentFileName = "index.md"

// Engine bridges the article tree and the metadata index. It is safe for
// concurrent reads; concurrent writers race with last-write-wins semantics
// (single-admin usage model, no cross-request coordination).
type Engine struct {
	db       *gorm.DB
	basePath string

	// now is stubbed in tests.
	now func() time.Time
}

// New creates an Engine over the given index connection and content base
// directory.
func New(db *gorm.DB, basePath string) *Engine {
	return &Engine{
		db:       db,
		basePath: basePath,
		now:      time.Now,
	}
}

// BasePath returns the content base directory.
func (e *Engine) BasePath() string {
	return e.basePath
}

// timestamp returns the server-assigned write instant as an ISO-8601 string.
func (e *Engine) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

// slugPath resolves a slug to its absolute directory path and guards against
// escaping the base directory.
func (e *Engine) slugPath(slug string) (string, error) {
	base, err := filepath.Abs(e.basePath)
	if err != nil {
		return "", err
	}

	p, err := filepath.Abs(filepath.Join(base, slug))
	if err != nil {
		return "", err
	}

	if p != base && !isWithin(base, p) {
		return "", ErrPathOutsideBase
	}

	return p, nil
}

func isWithin(base, p string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Article is the engine's view of one article, with storage encodings
// resolved: tags deserialized, booleans restored, derived fields attached.
type Article struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
	IsSticky    bool     `json:"isSticky"`
	UserID      uint64   `json:"userid"`
	Content     string   `json:"content"`
	ModifyTime  string   `json:"modifyTime"`

	// IsSaved is true iff a database row exists for the directory.
	IsSaved bool   `json:"isSaved"`
	ShortID string `json:"shortId,omitempty"`
}

// TagCount is one entry of the tag frequency aggregate.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Neighbor identifies an adjacent article on the (date, path) timeline.
type Neighbor struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Neighbors holds both directions of adjacency; either may be nil at the
// boundaries of the timeline.
type Neighbors struct {
	Prev *Neighbor `json:"prev"`
	Next *Neighbor `json:"next"`
}

// AuthorInfo is the joined author view of an article.
type AuthorInfo struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Page is one slice of a published-articles query plus the unpaginated total.
type Page struct {
	List  []Article `json:"list"`
	Total int64     `json:"total"`
}

// decorate converts an index row into the engine view.
func decorate(row rowModel) Article {
	content := ""
	if row.Content != nil {
		content = *row.Content
	}

	return Article{
		Path:        row.Path,
		Title:       row.Title,
		Date:        row.Date,
		Description: row.Description,
		Image:       row.Image,
		Tags:        row.TagList(),
		Published:   row.Published,
		IsSticky:    row.IsSticky,
		UserID:      row.UserID,
		Content:     content,
		ModifyTime:  row.ModifyTime,
		IsSaved:     true,
		ShortID:     shortid.FromSlug(row.Path),
	}
}
