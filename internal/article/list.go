package article

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// epochTime is substituted when a directory cannot be stat'ed.
var epochTime = time.Unix(0, 0).UTC().Format(time.RFC3339)

// ListAdmin merges every immediate subdirectory of the base path with its
// index row, if any. Directories without a row appear with filesystem-only
// defaults and IsSaved false. The result is ordered by the directory's
// modification time, newest first (lexicographic comparison of uniform ISO
// strings equals chronological order).
func (e *Engine) ListAdmin() ([]Article, error) {
	entries, err := os.ReadDir(e.basePath)
	if err != nil {
		return nil, err
	}

	var rows []rowModel
	if err := e.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	byPath := make(map[string]rowModel, len(rows))
	for _, row := range rows {
		byPath[row.Path] = row
	}

	articles := make([]Article, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		slug := entry.Name()
		mtime := epochTime

		info, err := os.Stat(filepath.Join(e.basePath, slug))
		if err != nil {
			// one bad directory must not abort the listing
			log.Warn().Err(err).Str("path", slug).Msg("stat failed, using epoch modify time")
		} else {
			mtime = info.ModTime().UTC().Format(time.RFC3339)
		}

		if row, ok := byPath[slug]; ok {
			a := decorate(row)
			a.ModifyTime = mtime // filesystem freshness wins in the admin view
			a.Content = ""       // the listing never carries bodies
			articles = append(articles, a)

			continue
		}

		articles = append(articles, Article{
			Path:       slug,
			Title:      slug,
			Date:       mtime,
			Tags:       []string{},
			ModifyTime: mtime,
			IsSaved:    false,
		})
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return strings.Compare(articles[j].ModifyTime, articles[i].ModifyTime) < 0
	})

	return articles, nil
}
