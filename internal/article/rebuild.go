package article

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/chao-eng/mdblog/internal/db/models"
)

// Rebuild re-derives the whole index from the article tree: it wipes every
// row, walks the immediate subdirectories of the base path and inserts one
// row per directory whose index.md carries at least a title and a date.
// Directories without index.md, with unparseable front matter or missing
// required fields are skipped; one bad directory never aborts the walk.
// Returns how many directories were indexed.
func (e *Engine) Rebuild(userID uint64) (int, error) {
	if err := e.DeleteAll(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(e.basePath)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if e.indexDirectory(entry.Name(), userID) {
			count++
		}
	}

	log.Info().Int("count", count).Msg("article index rebuilt")

	return count, nil
}

// indexDirectory inserts one directory into the index. Reports whether the
// directory was indexed; all failures are logged and swallowed.
func (e *Engine) indexDirectory(slug string, userID uint64) bool {
	raw, err := os.ReadFile(filepath.Join(e.basePath, slug, ContentFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", slug).Msg("skipping unreadable article")
		}

		return false
	}

	fm, body, err := ParseDocument(raw)
	if err != nil {
		log.Warn().Err(err).Str("path", slug).Msg("skipping article with malformed front matter")
		return false
	}

	if fm.Title == nil || *fm.Title == "" || fm.Date == nil || *fm.Date == "" {
		log.Debug().Str("path", slug).Msg("skipping article without title or date")
		return false
	}

	row := rowModel{
		Path:        slug,
		Title:       *fm.Title,
		Date:        *fm.Date,
		Description: fm.Description,
		Image:       fm.Image,
		Tags:        models.EncodeTags(fm.Tags),
		UserID:      userID,
		Content:     &body,
		ModifyTime:  e.timestamp(),
	}

	// drafts enter the index as unpublished rather than being rejected
	if fm.Published != nil {
		row.Published = *fm.Published
	}
	if fm.IsSticky != nil {
		row.IsSticky = *fm.IsSticky
	}

	if err := e.db.Create(&row).Error; err != nil {
		log.Warn().Err(err).Str("path", slug).Msg("failed to index article")
		return false
	}

	return true
}
