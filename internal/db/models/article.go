package models

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Article is the metadata index row for one article directory.
//
// The slug (filesystem directory name) is the primary key and the sole join
// key between the directory tree and this table; there is no surrogate id.
// A directory may exist without a row (unindexed draft), a row must only
// ever be derived from a save or rebuild against a real directory.
type Article struct {
	// Path is the article slug, equal to the directory name under the content base path.
	Path string `gorm:"primaryKey;size:255;not null"`
	// Title is the article title from front matter.
	Title string `gorm:"size:500;not null"`
	// Date is the nominal publication date as an ISO-8601 string, independent
	// of filesystem timestamps. Uniform ISO strings sort lexicographically in
	// chronological order, which the query layer relies on.
	Date string `gorm:"size:64;not null"`
	// Description is an optional short text.
	Description *string `gorm:"size:1000"`
	// Image is an optional cover image URL or relative path.
	Image *string `gorm:"size:500"`
	// Tags is the tag list serialized as a JSON array string.
	// Use TagList to read it; malformed content degrades to an empty list.
	Tags string `gorm:"size:1000;not null;default:'[]'"`
	// Published gates visibility in all public queries.
	Published bool `gorm:"not null;default:false"`
	// IsSticky marks the article for pinned placement, independent of Published.
	IsSticky bool `gorm:"not null;default:false"`
	// UserID references the author row.
	UserID uint64 `gorm:"not null"`
	// Content is the Markdown body. Nullable: it may live only in the
	// filesystem file and be read lazily.
	Content *string
	// ModifyTime is server-assigned on every write, as an ISO-8601 string.
	ModifyTime string `gorm:"size:64;not null"`
}

// TagList deserializes the Tags column. Malformed JSON is logged and treated
// as an empty tag list, never as an error.
func (a *Article) TagList() []string {
	if a.Tags == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(a.Tags), &tags); err != nil {
		log.Warn().Str("path", a.Path).Msg("malformed tags column, treating as empty")
		return []string{}
	}

	if tags == nil {
		return []string{}
	}

	return tags
}

// EncodeTags serializes a tag list for the Tags column. A nil list encodes
// as the empty array representation.
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}

	out, err := json.Marshal(tags)
	if err != nil {
		// a []string cannot fail to marshal; keep the column valid regardless
		return "[]"
	}

	return string(out)
}
