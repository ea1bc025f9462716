package article

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
)

// SaveParams carries one save operation. Slug is the target directory name;
// OriginalSlug is empty for a plain save and holds the previous slug when
// the save is an edit under a new name (rename). Raw is the full document
// written to index.md. Content, when present, is the Markdown body stored on
// the row (the rebuild path sets it; the admin save path leaves it to the
// filesystem).
type SaveParams struct {
	Slug         string
	OriginalSlug string
	FrontMatter  FrontMatter
	Raw          []byte
	Content      *string
	UserID       uint64
}

// Save persists one article into both stores: directory tree first, index
// row second. A failure between the two leaves the stores divergent until
// the next Rebuild; that window is accepted, not masked by a transaction.
func (e *Engine) Save(p SaveParams) error {
	if p.Slug == "" {
		return ErrSlugEmpty
	}

	targetDir, err := e.slugPath(p.Slug)
	if err != nil {
		return err
	}

	renamed, err := e.renameIfNeeded(p.OriginalSlug, targetDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(targetDir, ContentFileName), p.Raw, 0o640); err != nil {
		return err
	}

	// the old key is replaced by the upsert below keyed on the new slug
	if renamed {
		if err := e.DeleteByPath(p.OriginalSlug); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	return e.upsertRow(p)
}

// renameIfNeeded moves the original slug directory onto the target path.
// A pre-existing target is removed first: last-write-wins on collision.
func (e *Engine) renameIfNeeded(originalSlug, targetDir string) (bool, error) {
	if originalSlug == "" {
		return false, nil
	}

	originalDir, err := e.slugPath(originalSlug)
	if err != nil {
		return false, err
	}

	if originalDir == targetDir {
		return false, nil
	}

	info, err := os.Stat(originalDir)
	if os.IsNotExist(err) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	if !info.IsDir() {
		return false, ErrNotDirectory
	}

	if _, err := os.Stat(targetDir); err == nil {
		log.Warn().Str("path", targetDir).Msg("rename target already exists, replacing")

		if err := os.RemoveAll(targetDir); err != nil {
			return false, err
		}
	}

	if err := os.Rename(originalDir, targetDir); err != nil {
		return false, err
	}

	return true, nil
}

// upsertRow inserts or partially updates the index row keyed by the slug.
func (e *Engine) upsertRow(p SaveParams) error {
	var existing rowModel

	err := e.db.Select("path").Where("path = ?", p.Slug).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return e.insertRow(p)
	case err != nil:
		return err
	default:
		return e.updateRow(p)
	}
}

func (e *Engine) insertRow(p SaveParams) error {
	fm := p.FrontMatter

	// an insert needs the core fields; drafts enter the index via Rebuild
	if fm.Title == nil || *fm.Title == "" ||
		fm.Date == nil || *fm.Date == "" ||
		fm.Published == nil || !*fm.Published {
		return ErrMissingRequiredFields
	}

	row := rowModel{
		Path:        p.Slug,
		Title:       *fm.Title,
		Date:        *fm.Date,
		Description: fm.Description,
		Image:       fm.Image,
		Tags:        models.EncodeTags(fm.Tags),
		Published:   *fm.Published,
		UserID:      p.UserID,
		Content:     p.Content,
		ModifyTime:  e.timestamp(),
	}

	if fm.IsSticky != nil {
		row.IsSticky = *fm.IsSticky
	}

	return e.db.Create(&row).Error
}

func (e *Engine) updateRow(p SaveParams) error {
	fm := p.FrontMatter
	fields := map[string]interface{}{}

	if fm.Title != nil {
		fields["title"] = *fm.Title
	}
	if fm.Date != nil {
		fields["date"] = *fm.Date
	}
	if fm.Description != nil {
		fields["description"] = *fm.Description
	}
	if fm.Image != nil {
		fields["image"] = *fm.Image
	}
	if fm.Tags != nil {
		fields["tags"] = models.EncodeTags(fm.Tags)
	}
	if fm.Published != nil {
		fields["published"] = *fm.Published
	}
	if fm.IsSticky != nil {
		fields["is_sticky"] = *fm.IsSticky
	}
	if p.Content != nil {
		fields["content"] = *p.Content
	}

	if len(fields) == 0 {
		return ErrNoChanges
	}

	// refreshed on every write regardless of which fields changed
	fields["modify_time"] = e.timestamp()

	return e.db.Model(&rowModel{}).Where("path = ?", p.Slug).Updates(fields).Error
}

// SaveContent parses a raw article document and saves it under the given
// slug. This is the handler-facing entry point of a save or rename.
func (e *Engine) SaveContent(slug, originalSlug string, raw []byte, userID uint64) error {
	fm, _, err := ParseDocument(raw)
	if err != nil {
		return err
	}

	return e.Save(SaveParams{
		Slug:         slug,
		OriginalSlug: originalSlug,
		FrontMatter:  fm,
		Raw:          raw,
		UserID:       userID,
	})
}

// DeleteByPath removes the index row for a slug. The filesystem directory is
// not touched; callers remove it separately via DeleteTree.
func (e *Engine) DeleteByPath(path string) error {
	if path == "" {
		return ErrSlugEmpty
	}

	result := e.db.Where("path = ?", path).Delete(&rowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll wipes every index row. Used by Rebuild.
func (e *Engine) DeleteAll() error {
	return e.db.Where("1 = 1").Delete(&rowModel{}).Error
}

// DeleteTree removes the slug's directory recursively, after verifying the
// resolved path stays inside the base directory.
func (e *Engine) DeleteTree(slug string) error {
	if slug == "" {
		return ErrSlugEmpty
	}

	dir, err := e.slugPath(slug)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	return os.RemoveAll(dir)
}

// AllPaths returns every slug present in the index.
func (e *Engine) AllPaths() ([]string, error) {
	var paths []string
	if err := e.db.Model(&rowModel{}).Pluck("path", &paths).Error; err != nil {
		return nil, err
	}

	return paths, nil
}
