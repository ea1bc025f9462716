package article

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/shortid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortColumns is the allow-list mapping of exposed sort keys to columns.
// Anything else falls back to date.
var sortColumns = map[string]string{
	"path":       "path",
	"title":      "title",
	"date":       "date",
	"modifyTime": "modify_time",
	"published":  "published",
}

// QueryOptions selects and orders a slice of the published articles.
// IsSticky filters only when explicitly provided (tri-state).
type QueryOptions struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
	Tag       string
	IsSticky  *bool
}

func (o *QueryOptions) normalize() {
	if o.Page < 1 {
		o.Page = 1
	}

	if o.PageSize < 1 {
		o.PageSize = defaultPageSize
	}
	if o.PageSize > maxPageSize {
		o.PageSize = maxPageSize
	}

	if _, ok := sortColumns[o.SortBy]; !ok {
		o.SortBy = "date"
	}

	if strings.EqualFold(o.SortOrder, "asc") {
		o.SortOrder = "asc"
	} else {
		o.SortOrder = "desc"
	}
}

// QueryPublished returns one page of published articles plus the total
// count matching the filter. Ordering is deterministic: the sort key is
// always tie-broken by path in the same direction, so pages partition the
// result set without duplicates or gaps.
func (e *Engine) QueryPublished(opts QueryOptions) (*Page, error) {
	opts.normalize()

	base := e.db.Model(&rowModel{}).Where("published = ?", true)

	if opts.Search != "" {
		needle := "%" + strings.ToLower(opts.Search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	if opts.Tag != "" {
		// tags are a serialized JSON array: anchoring the quotes matches the
		// exact token, never a substring of one
		base = base.Where("tags LIKE ?", `%"`+opts.Tag+`"%`)
	}

	if opts.IsSticky != nil {
		base = base.Where("is_sticky = ?", *opts.IsSticky)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	order := fmt.Sprintf("%s %s, path %s", sortColumns[opts.SortBy], opts.SortOrder, opts.SortOrder)

	var rows []rowModel
	err := base.Order(order).
		Limit(opts.PageSize).
		Offset((opts.Page - 1) * opts.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]Article, 0, len(rows))
	for _, row := range rows {
		list = append(list, decorate(row))
	}

	return &Page{List: list, Total: total}, nil
}

// ByPath returns the full article row for a slug.
func (e *Engine) ByPath(path string) (*Article, error) {
	if path == "" {
		return nil, ErrSlugEmpty
	}

	var row rowModel
	err := e.db.Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a := decorate(row)

	return &a, nil
}

// ByShortID resolves a short public identifier back to its article.
func (e *Engine) ByShortID(id string) (*Article, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	paths, err := e.AllPaths()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		if shortid.FromSlug(p) == id {
			return e.ByPath(p)
		}
	}

	return nil, ErrNotFound
}

// Content reads and parses the slug's document straight from the
// filesystem, bypassing the index.
func (e *Engine) Content(slug string) (FrontMatter, string, error) {
	if slug == "" {
		return FrontMatter{}, "", ErrSlugEmpty
	}

	dir, err := e.slugPath(slug)
	if err != nil {
		return FrontMatter{}, "", err
	}

	raw, err := os.ReadFile(filepath.Join(dir, ContentFileName))
	if os.IsNotExist(err) {
		return FrontMatter{}, "", ErrNotFound
	}
	if err != nil {
		return FrontMatter{}, "", err
	}

	return ParseDocument(raw)
}
